package yang

import (
	"errors"
	"fmt"

	"github.com/holo-routing/yang-go/internal/ffi"
)

// ErrorCode identifies the class of a libyang failure.
type ErrorCode int

const (
	CodeSuccess    ErrorCode = ErrorCode(ffi.CodeSuccess)
	CodeMemory     ErrorCode = ErrorCode(ffi.CodeMemory)
	CodeSyscall    ErrorCode = ErrorCode(ffi.CodeSyscall)
	CodeInvalid    ErrorCode = ErrorCode(ffi.CodeInvalid)
	CodeExists     ErrorCode = ErrorCode(ffi.CodeExists)
	CodeNotFound   ErrorCode = ErrorCode(ffi.CodeNotFound)
	CodeInternal   ErrorCode = ErrorCode(ffi.CodeInternal)
	CodeValidation ErrorCode = ErrorCode(ffi.CodeValidation)
	CodeDenied     ErrorCode = ErrorCode(ffi.CodeDenied)
	CodeIncomplete ErrorCode = ErrorCode(ffi.CodeIncomplete)
	CodeRecompile  ErrorCode = ErrorCode(ffi.CodeRecompile)
	CodeNot        ErrorCode = ErrorCode(ffi.CodeNot)
	CodeOther      ErrorCode = ErrorCode(ffi.CodeOther)
)

func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeMemory:
		return "out of memory"
	case CodeSyscall:
		return "system call failed"
	case CodeInvalid:
		return "invalid value"
	case CodeExists:
		return "item already exists"
	case CodeNotFound:
		return "item not found"
	case CodeInternal:
		return "internal error"
	case CodeValidation:
		return "validation failed"
	case CodeDenied:
		return "operation denied"
	case CodeIncomplete:
		return "operation incomplete"
	case CodeRecompile:
		return "recompilation required"
	case CodeNot:
		return "negative result"
	default:
		return "unknown error"
	}
}

// Sentinel errors for matching with errors.Is. They compare against
// the code of a *Error, so the detailed diagnostic is preserved while
// callers can still branch on the class.
var (
	ErrNotFound   = errors.New("yang: item not found")
	ErrValidation = errors.New("yang: validation failed")
	ErrInvalid    = errors.New("yang: invalid value")
	ErrExists     = errors.New("yang: item already exists")
)

// Error is a failure reported by libyang, carrying the native
// diagnostic recorded on the originating context.
type Error struct {
	Code     ErrorCode
	Msg      string
	DataPath string
	AppTag   string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("yang: %s", e.Code)
	}
	if e.DataPath != "" {
		return fmt.Sprintf("yang: %s: %s (path: %s)", e.Code, e.Msg, e.DataPath)
	}
	return fmt.Sprintf("yang: %s: %s", e.Code, e.Msg)
}

// Is reports whether the error matches one of the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == CodeNotFound
	case ErrValidation:
		return e.Code == CodeValidation
	case ErrInvalid:
		return e.Code == CodeInvalid
	case ErrExists:
		return e.Code == CodeExists
	}
	return false
}

// newError builds a *Error from a native status code, pulling the last
// diagnostic recorded on the context. The stored diagnostic wins over
// the returned code when both are set, since it is more specific.
func newError(ctx ffi.Ctx, code int) *Error {
	e := &Error{Code: ErrorCode(code)}
	if !ctx.Valid() {
		return e
	}
	info := ffi.LastError(ctx)
	if info.Code != ffi.CodeSuccess {
		e.Code = ErrorCode(info.Code)
		e.Msg = info.Msg
		e.DataPath = info.DataPath
		e.AppTag = info.AppTag
	}
	return e
}
