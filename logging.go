package yang

import (
	"errors"
	"log"
	"sync"

	"github.com/holo-routing/yang-go/internal/ffi"
)

// LogLevel controls the verbosity of libyang messages.
type LogLevel int

const (
	LogError   LogLevel = LogLevel(ffi.LevelError)
	LogWarning LogLevel = LogLevel(ffi.LevelWarning)
	LogVerbose LogLevel = LogLevel(ffi.LevelVerbose)
	LogDebug   LogLevel = LogLevel(ffi.LevelDebug)
)

func (l LogLevel) String() string {
	switch l {
	case LogError:
		return "error"
	case LogWarning:
		return "warning"
	case LogVerbose:
		return "verbose"
	default:
		return "debug"
	}
}

// LogCallback receives libyang log messages. The paths identify where
// in the data or schema tree the message originated, either may be
// empty.
type LogCallback func(level LogLevel, msg, dataPath, schemaPath string, line uint64)

// SetLogLevel sets the global verbosity of libyang messages.
// Messages are global library state, not per context.
func SetLogLevel(level LogLevel) {
	ffi.SetLogLevel(int(level))
}

var (
	logCbMu  sync.Mutex
	logCbSet bool
)

// SetLogCallback routes libyang messages to the given function. The
// callback is global and can be installed only once for the lifetime
// of the process.
func SetLogCallback(cb LogCallback) error {
	logCbMu.Lock()
	defer logCbMu.Unlock()
	if logCbSet {
		return errors.New("yang: log callback already set")
	}
	logCbSet = true
	ffi.SetLogCallback(func(level int, msg, dataPath, schemaPath string, line uint64) {
		cb(LogLevel(level), msg, dataPath, schemaPath, line)
	})
	return nil
}

// DefaultLogCallback writes messages through the standard library
// logger, one line per message with the originating path appended
// when known. Pass it to SetLogCallback to get plain stderr logging.
func DefaultLogCallback(level LogLevel, msg, dataPath, schemaPath string, line uint64) {
	path := dataPath
	if path == "" {
		path = schemaPath
	}
	if path != "" {
		log.Printf("libyang: %s: %s (%s)", level, msg, path)
		return
	}
	log.Printf("libyang: %s: %s", level, msg)
}
