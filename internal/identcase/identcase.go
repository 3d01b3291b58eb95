// Package identcase classifies identifier naming styles and checks
// macro names. Classification feeds a whole-project consistency check:
// mixing snake_case and camelCase anywhere in the linted set flags
// every classified identifier.
package identcase

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/lint"
)

// identifierQuery captures bare identifiers in declarations,
// initialized declarations, and function parameters, plus macro
// definitions of both the object-like and function-like forms.
const identifierQuery = `
(declaration (identifier) @identifier)
(declaration (init_declarator (identifier) @identifier))
(parameter_list (parameter_declaration (identifier) @identifier))
(preproc_def) @preproc
(preproc_function_def) @preproc
`

var (
	screamingSnakeCaseRe = regexp.MustCompile(`^[A-Z0-9_]+$`)
	lowerSnakeCaseRe     = regexp.MustCompile(`^[a-z0-9_]+_[a-z0-9_]+$`)
	camelCaseRe          = regexp.MustCompile(`^[a-z]+(?:[A-Z][a-z0-9]*)+$`)
)

// Classify runs the structural query over a file's tree, flags macros
// that are not SCREAMING_SNAKE_CASE, and returns every identifier that
// matches one of the two mutually exclusive styles. Text matching
// neither is dropped.
func Classify(root *sitter.Node, source []byte, file string) ([]lint.Finding, []lint.Identifier, error) {
	captures, err := cparse.QueryCaptures(identifierQuery, root, source)
	if err != nil {
		return nil, nil, err
	}

	var findings []lint.Finding
	var identifiers []lint.Identifier

	for _, capture := range captures {
		switch capture.Node.Type() {
		case "preproc_def", "preproc_function_def":
			name := capture.Node.ChildByFieldName("name")
			if name == nil {
				continue
			}
			text := string(source[name.StartByte():name.EndByte()])
			if !screamingSnakeCaseRe.MatchString(text) {
				r := cparse.NodeRange(name)
				findings = append(findings, lint.Finding{
					Message: "Macro is not SCREAMING_SNAKE_CASE",
					Snippet: lint.SourceLine(source, r.StartLine),
					File:    file,
					Range:   r,
				})
			}
		case "identifier":
			r := cparse.NodeRange(capture.Node)
			text := string(source[capture.Node.StartByte():capture.Node.EndByte()])
			if c := classifyText(text); c != lint.Unclassified {
				identifiers = append(identifiers, lint.Identifier{
					File:  file,
					Range: r,
					Case:  c,
					Text:  text,
				})
			}
		}
	}

	return findings, identifiers, nil
}

func classifyText(text string) lint.IdentifierCase {
	if lowerSnakeCaseRe.MatchString(text) {
		return lint.LowerSnake
	}
	if camelCaseRe.MatchString(text) {
		return lint.Camel
	}
	return lint.Unclassified
}

// ConsistencyFindings emits one finding per classified identifier,
// labeled with its style, but only when both styles occur somewhere in
// the linted set. A project uniformly using either style produces
// nothing.
func ConsistencyFindings(identifiers []lint.Identifier) []lint.Finding {
	haveSnake := false
	haveCamel := false
	for _, id := range identifiers {
		switch id.Case {
		case lint.LowerSnake:
			haveSnake = true
		case lint.Camel:
			haveCamel = true
		}
	}
	if !haveSnake || !haveCamel {
		return nil
	}

	findings := make([]lint.Finding, 0, len(identifiers))
	for _, id := range identifiers {
		var message string
		switch id.Case {
		case lint.LowerSnake:
			message = "Snake case identifier contributes to case inconsistency"
		case lint.Camel:
			message = "Camel case identifier contributes to case inconsistency"
		default:
			continue
		}
		findings = append(findings, lint.Finding{
			Message: message,
			Snippet: id.Text,
			File:    id.File,
			Range:   id.Range,
		})
	}
	return findings
}
