package gensvm

import (
	"errors"
	"strings"
	"testing"
)

func TestNewValidationErrorMessage(t *testing.T) {
	err := NewValidationError("p must be in [1, 2]", nil)
	if err.Kind != KindValidation {
		t.Errorf("got kind %v, want %v", err.Kind, KindValidation)
	}
	if !strings.Contains(err.Error(), "p must be in [1, 2]") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
}

func TestGenSVMErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewNumericalError("solve failed", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through GenSVMError.Unwrap to the cause")
	}
	if !strings.Contains(err.Error(), "caused by") {
		t.Errorf("Error() = %q, expected it to mention the cause", err.Error())
	}
}

func TestNewDimensionErrorContext(t *testing.T) {
	err := NewDimensionError("label count mismatch", 10, 8)
	if err.Context["expected"] != 10 || err.Context["actual"] != 8 {
		t.Errorf("Context = %v, want expected=10 actual=8", err.Context)
	}
}

func TestNewIOErrorKind(t *testing.T) {
	err := NewIOError("failed to open file", errors.New("no such file"))
	if err.Kind != KindIO {
		t.Errorf("got kind %v, want %v", err.Kind, KindIO)
	}
}
