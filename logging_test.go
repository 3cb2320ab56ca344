package yang

import "testing"

// TestSetLogLevel verifies level changes are accepted.
func TestSetLogLevel(t *testing.T) {
	SetLogLevel(LogVerbose)
	SetLogLevel(LogError)
}

// TestSetLogCallbackOnce verifies the callback can be installed only
// once per process.
func TestSetLogCallbackOnce(t *testing.T) {
	cb := func(level LogLevel, msg, dataPath, schemaPath string, line uint64) {}
	if err := SetLogCallback(cb); err != nil {
		t.Fatalf("SetLogCallback: %v", err)
	}
	if err := SetLogCallback(cb); err == nil {
		t.Error("second SetLogCallback succeeded")
	}
}
