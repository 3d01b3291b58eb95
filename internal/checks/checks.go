// Package checks holds the single-pattern style checks that run over a
// file's raw (unexpanded) syntax tree: global variables at top level
// and functions missing a directly preceding comment.
package checks

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/lint"
)

// CheckFile runs both top-level checks and returns their findings.
func CheckFile(root *sitter.Node, source []byte, file string) []lint.Finding {
	var findings []lint.Finding

	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		if node == nil {
			continue
		}
		switch node.Type() {
		case "declaration":
			if f := checkGlobal(node, source, file); f != nil {
				findings = append(findings, *f)
			}
		case "function_definition":
			if f := checkComment(node, source, file); f != nil {
				findings = append(findings, *f)
			}
		}
	}

	return findings
}

// checkGlobal flags top-level declarations that declare variables.
// Function prototypes at top level have a function_declarator and are
// allowed.
func checkGlobal(node *sitter.Node, source []byte, file string) *lint.Finding {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	if declarator.Type() != "init_declarator" && declarator.Type() != "identifier" {
		return nil
	}
	r := cparse.NodeRange(node)
	return &lint.Finding{
		Message: "Global variable",
		Snippet: lint.SourceLine(source, r.StartLine),
		File:    file,
		Range:   r,
	}
}

// checkComment flags function definitions that do not have a comment on
// the line immediately above them.
func checkComment(node *sitter.Node, source []byte, file string) *lint.Finding {
	prev := node.PrevSibling()
	documented := prev != nil &&
		prev.Type() == "comment" &&
		int(node.StartPoint().Row)-1 == int(prev.EndPoint().Row)
	if documented {
		return nil
	}

	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	r := cparse.NodeRange(declarator)
	return &lint.Finding{
		Message: "Missing comment directly above function",
		Snippet: lint.SourceLine(source, r.StartLine),
		File:    file,
		Range:   r,
	}
}
