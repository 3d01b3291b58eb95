// Package includes discovers the closed set of files belonging to a
// translation unit by following quoted #include paths. Angle-bracket
// (system) includes are ignored: only locally-authored headers are
// linted.
package includes

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/errors"
)

// FileSet is the set of unique file paths reachable from one or more
// root files via local includes. Immutable once built.
type FileSet map[string]struct{}

// Contains reports whether the set holds the given canonical path.
func (fs FileSet) Contains(path string) bool {
	_, ok := fs[filepath.Clean(path)]
	return ok
}

// Merge adds every path of other into the set.
func (fs FileSet) Merge(other FileSet) {
	for p := range other {
		fs[p] = struct{}{}
	}
}

// Paths returns the set's members in sorted order.
func (fs FileSet) Paths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Resolver builds FileSets by recursively scanning include directives.
// Include paths resolve relative to the directory of the including
// file; no process-wide working-directory change is involved.
type Resolver struct {
	parser *cparse.Parser
}

// NewResolver creates a Resolver with its own parser.
func NewResolver() *Resolver {
	return &Resolver{parser: cparse.NewParser()}
}

// Resolve discovers every file reachable from rootPath via quoted
// includes. A file that cannot be read or parsed is fatal for the run,
// since complexity results would otherwise be silently incomplete. An
// include cycle yields a CIRCULAR_INCLUDE error instead of recursing
// forever.
func (r *Resolver) Resolve(ctx context.Context, rootPath string) (FileSet, error) {
	fileset := make(FileSet)
	visiting := make(map[string]bool)
	if err := r.resolve(ctx, filepath.Clean(rootPath), fileset, visiting); err != nil {
		return nil, err
	}
	return fileset, nil
}

func (r *Resolver) resolve(ctx context.Context, path string, fileset FileSet, visiting map[string]bool) error {
	fileset[path] = struct{}{}
	visiting[path] = true
	defer delete(visiting, path)

	source, err := os.ReadFile(path)
	if err != nil {
		return errors.NewPath(errors.ReadError, "cannot read file in translation unit", path, err)
	}

	tree, err := r.parser.Parse(ctx, source)
	if err != nil {
		return errors.NewPath(errors.ParseError, "cannot parse file in translation unit", path, err)
	}

	root := tree.RootNode()
	parent := filepath.Dir(path)
	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		if node == nil || node.Type() != "preproc_include" {
			continue
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil || pathNode.Type() != "string_literal" {
			// system_lib_string: angle-bracket include, not ours to lint
			continue
		}
		// strip the surrounding quotes
		include := string(source[pathNode.StartByte()+1 : pathNode.EndByte()-1])
		target := filepath.Clean(filepath.Join(parent, include))

		if visiting[target] {
			return errors.NewPath(errors.CircularInclude, "circular include of "+include, path, nil)
		}
		if _, seen := fileset[target]; seen {
			continue
		}
		if err := r.resolve(ctx, target, fileset, visiting); err != nil {
			return err
		}
	}

	return nil
}
