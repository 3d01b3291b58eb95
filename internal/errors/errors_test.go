package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(ParseError, "cannot parse file", nil)
	if got := err.Error(); got != "[PARSE_ERROR] cannot parse file" {
		t.Errorf("unexpected message: %q", got)
	}

	withPath := NewPath(ReadError, "cannot read file", "main.c", nil)
	if got := withPath.Error(); got != "[READ_ERROR] main.c: cannot read file" {
		t.Errorf("unexpected message: %q", got)
	}

	cause := stderrors.New("permission denied")
	withCause := NewPath(ReadError, "cannot read file", "main.c", cause)
	if got := withCause.Error(); !strings.Contains(got, "permission denied") {
		t.Errorf("expected cause in message, got %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New(PreprocessError, "subprocess failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is must reach the cause")
	}
}

func TestIsFatal(t *testing.T) {
	fatal := []ErrorCode{ReadError, CircularInclude}
	for _, code := range fatal {
		if !New(code, "x", nil).IsFatal() {
			t.Errorf("%s must be fatal", code)
		}
	}

	isolated := []ErrorCode{ParseError, PreprocessError, PreprocessTimeout, MalformedDirective, CacheError}
	for _, code := range isolated {
		if New(code, "x", nil).IsFatal() {
			t.Errorf("%s must not be fatal", code)
		}
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ParseError, "x", nil)); got != ParseError {
		t.Errorf("got %s, want PARSE_ERROR", got)
	}

	wrapped := fmt.Errorf("context: %w", New(PreprocessTimeout, "x", nil))
	if got := CodeOf(wrapped); got != PreprocessTimeout {
		t.Errorf("wrapped: got %s, want PREPROCESS_TIMEOUT", got)
	}

	if got := CodeOf(stderrors.New("plain")); got != InternalError {
		t.Errorf("plain error: got %s, want INTERNAL_ERROR", got)
	}
}
