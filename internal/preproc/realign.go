package preproc

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// markerRe matches GCC-style line-marker directives:
// `# <line> "<path>" [flags...]`. Trailing numeric flags are tolerated
// and ignored.
var markerRe = regexp.MustCompile(`^#\s+(\d+)\s+"((?:[^"\\]|\\.)*)"((?:\s+\d+)*)\s*$`)

// Realign reconstructs a virtual source from raw preprocessor output.
// Only segments the line markers attribute to targetPath are kept;
// expanded include content is dropped entirely. Each kept segment is
// placed at the line number the marker declares, padding skipped lines
// with blank lines, so the virtual text's line N contains exactly what
// the original file's line N expands to. Ranges computed against the
// virtual text are therefore valid, correctly-numbered ranges against
// the original file.
//
// Malformed directives are skipped (best-effort reconstruction); the
// count of skipped directives is returned so callers can surface it.
// Output is empty, not an error, when no segment belongs to targetPath.
func Realign(raw []byte, targetPath string) (string, int) {
	var out []string
	keeping := false
	malformed := 0

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if isDirective(line) {
			m := markerRe.FindStringSubmatch(line)
			if m == nil {
				// a directive we cannot parse degrades the output but
				// does not invalidate the rest
				malformed++
				keeping = false
				continue
			}
			declared, err := strconv.Atoi(m[1])
			if err != nil || declared < 1 {
				malformed++
				keeping = false
				continue
			}
			keeping = m[2] == targetPath
			if keeping {
				for len(out) < declared-1 {
					out = append(out, "")
				}
			}
			continue
		}

		if keeping {
			out = append(out, line)
		}
	}

	if len(out) == 0 {
		return "", malformed
	}
	return strings.Join(out, "\n"), malformed
}

// isDirective reports whether a line is a line-marker directive rather
// than passed-through content such as `#pragma`. Markers are `#`
// followed by whitespace; `#pragma` keeps the keyword flush against
// the hash and stays content.
func isDirective(line string) bool {
	if !strings.HasPrefix(line, "#") || len(line) < 2 {
		return false
	}
	return line[1] == ' ' || line[1] == '\t'
}
