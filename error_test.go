package yang

import (
	"errors"
	"testing"
)

// TestErrorFormatting verifies the rendered error strings.
func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: CodeNotFound}, "yang: item not found"},
		{&Error{Code: CodeValidation, Msg: "missing hostname"},
			"yang: validation failed: missing hostname"},
		{&Error{Code: CodeValidation, Msg: "bad value", DataPath: "/a/b"},
			"yang: validation failed: bad value (path: /a/b)"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

// TestErrorSentinels verifies errors.Is matching on the code.
func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		sentinel error
	}{
		{CodeNotFound, ErrNotFound},
		{CodeValidation, ErrValidation},
		{CodeInvalid, ErrInvalid},
		{CodeExists, ErrExists},
	}
	for _, tt := range tests {
		err := &Error{Code: tt.code}
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("errors.Is(%v, %v) = false", tt.code, tt.sentinel)
		}
	}
	if errors.Is(&Error{Code: CodeNotFound}, ErrValidation) {
		t.Error("ErrValidation matched a not-found error")
	}
}
