package engine

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// globRoots expands one doublestar pattern against the filesystem.
func globRoots(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pattern %q matched no files", pattern)
	}
	return matches, nil
}
