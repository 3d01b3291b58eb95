// Package preproc macro-expands C source through an external
// preprocessor and reconstructs a virtual source that keeps only the
// lines authored in the target file, at their original line numbers.
package preproc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/mbund/cse2331-linter/internal/errors"
)

// StdinPath is the pseudo-file the preprocessor attributes to source
// fed on standard input. Matching is exact and case-sensitive.
const StdinPath = "<stdin>"

// Expander macro-expands one file's content and returns the raw
// preprocessor output: expanded source interleaved with line-marker
// directives. debug toggles predefining a DEBUG macro, modeling the
// release/debug dual-pass build.
type Expander interface {
	Expand(ctx context.Context, source []byte, debug bool) ([]byte, error)
}

// CommandExpander shells out to an external preprocessor as a text
// filter. Source is written to the subprocess's stdin and stdout is
// fully drained; a bounded wait guards against a hung preprocessor.
type CommandExpander struct {
	// Command is the preprocessor binary, e.g. "gcc".
	Command string
	// Args are the expansion arguments, e.g. ["-E", "-"].
	Args []string
	// DebugArgs are appended when debug is set, e.g. ["-DDEBUG"].
	DebugArgs []string
	// Dir is the working directory for the subprocess, so relative
	// includes resolve against the translation unit's directory.
	Dir string
	// Timeout bounds the subprocess; zero means no bound.
	Timeout time.Duration
}

// NewCommandExpander returns an expander invoking gcc -E on stdin.
func NewCommandExpander(dir string) *CommandExpander {
	return &CommandExpander{
		Command:   "gcc",
		Args:      []string{"-E", "-"},
		DebugArgs: []string{"-DDEBUG"},
		Dir:       dir,
		Timeout:   30 * time.Second,
	}
}

// Expand runs the preprocessor over source and captures its stdout.
func (e *CommandExpander) Expand(ctx context.Context, source []byte, debug bool) ([]byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(e.Args)+len(e.DebugArgs))
	args = append(args, e.Args...)
	if debug {
		args = append(args, e.DebugArgs...)
	}

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.New(errors.PreprocessTimeout,
				"preprocessor exceeded "+e.Timeout.String(), err)
		}
		msg := "preprocessor failed"
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += ": " + firstLine(s)
		}
		return nil, errors.New(errors.PreprocessError, msg, err)
	}

	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
