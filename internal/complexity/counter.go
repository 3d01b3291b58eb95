// Package complexity computes a logical line count for every function
// body by walking its macro-expanded syntax tree. The metric is not a
// literal line count but a weighted sum over control-flow constructs,
// so functions whose true post-expansion complexity exceeds the
// threshold are flagged even when macros hide it from a naive count.
package complexity

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/lint"
)

// MaxFunctionLines is the logical-line threshold above which a function
// is flagged. Fixed policy.
const MaxFunctionLines = 10

// debugGuard names the conditional-compilation guard whose blocks are
// excluded from the count: debug-only code does not count against
// release complexity.
const debugGuard = "DEBUG"

// CheckFile walks every top-level function definition in the realigned
// virtual source and flags those whose logical line count exceeds
// MaxFunctionLines. The returned findings carry the itemized
// contributions as sub-findings, so each aggregate is auditable as the
// sum of its parts.
func CheckFile(root *sitter.Node, source []byte, file string) []lint.Finding {
	var findings []lint.Finding

	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		if node == nil || node.Type() != "function_definition" {
			continue
		}
		body := node.ChildByFieldName("body")
		declarator := node.ChildByFieldName("declarator")
		if body == nil || declarator == nil {
			continue
		}

		score, contributions := CountFunctionBody(body, source, file)
		if score > MaxFunctionLines {
			declRange := cparse.NodeRange(declarator)
			findings = append(findings, lint.Finding{
				Message:     fmt.Sprintf("Function has more than %d lines (%d)", MaxFunctionLines, score),
				Snippet:     lint.SourceLine(source, declRange.StartLine),
				File:        file,
				Range:       declRange,
				Lines:       score,
				SubFindings: contributions,
			})
		}
	}

	return findings
}

// CountFunctionBody computes the logical line count of a compound
// statement together with the ordered contribution trail. The sum of
// the contributions' line values always equals the returned score.
func CountFunctionBody(body *sitter.Node, source []byte, file string) (int, []lint.Finding) {
	c := &counter{source: source, file: file}
	score := c.countCompound(body)
	return score, c.contributions
}

// counter carries the walk's context; one handler per statement kind
// keeps the dispatch exhaustive and each cost rule in one place.
type counter struct {
	source        []byte
	file          string
	contributions []lint.Finding
}

// countStatement dispatches on statement kind. Kinds without a handler
// are not complexity contributors and cost 0.
func (c *counter) countStatement(node *sitter.Node) int {
	switch node.Type() {
	case "declaration":
		return c.countDeclaration(node)
	case "expression_statement":
		return c.countExpression(node)
	case "if_statement":
		return c.countIf(node)
	case "else_clause":
		return c.countElse(node)
	case "while_statement":
		return c.countWhile(node)
	case "do_statement":
		return c.countDoWhile(node)
	case "for_statement":
		return c.countFor(node)
	case "switch_statement":
		return c.countSwitch(node)
	case "case_statement":
		return c.countCase(node)
	case "break_statement":
		return c.countFixed(node, "break statement")
	case "continue_statement":
		return c.countFixed(node, "continue statement")
	case "return_statement":
		return c.countReturn(node)
	case "compound_statement":
		return c.countCompound(node)
	case "preproc_ifdef":
		return c.countIfdef(node)
	}
	return 0
}

// countCompound sums the costs of each child statement of a block.
func (c *counter) countCompound(node *sitter.Node) int {
	count := 0
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil {
			count += c.countStatement(child)
		}
	}
	return count
}

// countDeclaration costs the initializer's line span; uninitialized
// declarations cost nothing.
func (c *counter) countDeclaration(node *sitter.Node) int {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil || declarator.Type() != "init_declarator" {
		return 0
	}
	return c.countSpan(declarator, "definition")
}

// countExpression costs the expression's line span.
func (c *counter) countExpression(node *sitter.Node) int {
	expr := node.Child(0)
	if expr == nil {
		return 0
	}
	return c.countSpan(expr, "expression")
}

// countIf costs the condition's span plus the consequence and, when
// present, the alternative.
func (c *counter) countIf(node *sitter.Node) int {
	count := 0
	if condition := node.ChildByFieldName("condition"); condition != nil {
		count += c.countSpan(condition, "if condition")
	}
	if consequence := node.ChildByFieldName("consequence"); consequence != nil {
		count += c.countStatement(consequence)
	}
	if alternative := node.ChildByFieldName("alternative"); alternative != nil {
		count += c.countStatement(alternative)
	}
	return count
}

// countElse recurses into the else branch, which is either a block or
// a chained if.
func (c *counter) countElse(node *sitter.Node) int {
	branch := node.Child(1)
	if branch == nil {
		return 0
	}
	return c.countStatement(branch)
}

func (c *counter) countWhile(node *sitter.Node) int {
	count := 0
	if condition := node.ChildByFieldName("condition"); condition != nil {
		count += c.countSpan(condition, "while condition")
	}
	if body := node.ChildByFieldName("body"); body != nil {
		count += c.countStatement(body)
	}
	return count
}

// countDoWhile costs the body first, then the trailing condition.
func (c *counter) countDoWhile(node *sitter.Node) int {
	count := 0
	if body := node.ChildByFieldName("body"); body != nil {
		count += c.countStatement(body)
	}
	if condition := node.ChildByFieldName("condition"); condition != nil {
		count += c.countSpan(condition, "do/while condition")
	}
	return count
}

// countFor costs the span from the `for` keyword through the closing
// parenthesis of its clauses, plus the body.
func (c *counter) countFor(node *sitter.Node) int {
	children := int(node.ChildCount())
	if children < 2 {
		return 0
	}
	first := node.Child(0)
	closeParen := node.Child(children - 2)
	body := node.Child(children - 1)
	if first == nil || closeParen == nil {
		return 0
	}

	span := lint.Range{
		StartLine: int(first.StartPoint().Row),
		StartCol:  int(first.StartPoint().Column),
		EndLine:   int(closeParen.EndPoint().Row),
		EndCol:    int(closeParen.EndPoint().Column),
		StartByte: int(first.StartByte()),
		EndByte:   int(closeParen.EndByte()),
	}
	count := c.record(span, span.LineSpan(), "for condition")

	if body != nil {
		count += c.countStatement(body)
	}
	return count
}

func (c *counter) countSwitch(node *sitter.Node) int {
	count := 0
	if condition := node.ChildByFieldName("condition"); condition != nil {
		count += c.countSpan(condition, "switch expression")
	}
	if body := node.ChildByFieldName("body"); body != nil {
		count += c.countStatement(body)
	}
	return count
}

// countCase costs every statement inside the case except a break,
// which is explicitly excluded: fallthrough-free cases are not
// penalized for the mandatory break.
func (c *counter) countCase(node *sitter.Node) int {
	count := 0
	countChildren := func(parent *sitter.Node) {
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			if child == nil || child.Type() == "break_statement" {
				continue
			}
			count += c.countStatement(child)
		}
	}

	last := node.Child(int(node.ChildCount()) - 1)
	if last != nil && last.Type() == "compound_statement" {
		countChildren(last)
	} else {
		countChildren(node)
	}
	return count
}

// countReturn costs 1 for a value-returning return, attributed to the
// returned expression. A bare `return;` costs nothing.
func (c *counter) countReturn(node *sitter.Node) int {
	value := node.Child(1)
	if value == nil || value.Type() == ";" {
		return 0
	}
	return c.record(cparse.NodeRange(value), 1, "return statement")
}

// countIfdef treats a conditional-compilation block as unconditionally
// present, unless it is guarded by DEBUG, in which case the whole block
// is excluded from the count.
func (c *counter) countIfdef(node *sitter.Node) int {
	name := node.ChildByFieldName("name")
	if name == nil {
		return 0
	}
	if string(c.source[name.StartByte():name.EndByte()]) == debugGuard {
		return 0
	}
	count := 0
	// children 0 and 1 are the #ifdef keyword and the guard name
	for i := 2; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil {
			count += c.countStatement(child)
		}
	}
	return count
}

// countFixed records a fixed cost of 1 at the statement's own range.
func (c *counter) countFixed(node *sitter.Node, what string) int {
	return c.record(cparse.NodeRange(node), 1, what)
}

// countSpan records the node's true line span as its cost.
func (c *counter) countSpan(node *sitter.Node, what string) int {
	r := cparse.NodeRange(node)
	return c.record(r, r.LineSpan(), what)
}

// record appends a contribution finding and returns its value.
func (c *counter) record(r lint.Range, value int, what string) int {
	plural := "s"
	if value == 1 {
		plural = ""
	}
	c.contributions = append(c.contributions, lint.Finding{
		Message: fmt.Sprintf("Counted %s for %d line%s", what, value, plural),
		Snippet: lint.SourceLine(c.source, r.StartLine),
		File:    c.file,
		Range:   r,
		Lines:   value,
	})
	return value
}
