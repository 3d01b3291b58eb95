// Package cparse wraps tree-sitter configured for the C grammar. It is
// the only package that talks to the parser directly; everything else
// consumes syntax trees and query capture streams through it.
package cparse

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/mbund/cse2331-linter/internal/errors"
	"github.com/mbund/cse2331-linter/internal/lint"
)

// Parser wraps a tree-sitter parser for C source.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new C parser.
func NewParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	return &Parser{parser: parser}
}

// Parse parses C source and returns the syntax tree. The returned tree
// owns the underlying nodes; keep it reachable while nodes are in use.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, errors.New(errors.ParseError, "failed to parse C source", err)
	}
	return tree, nil
}

// Language returns the tree-sitter C language, for building queries.
func Language() *sitter.Language {
	return c.GetLanguage()
}

// Capture is one named capture produced by a query.
type Capture struct {
	Name string
	Node *sitter.Node
}

// QueryCaptures runs a declarative pattern query against root and
// returns every capture in match order.
func QueryCaptures(pattern string, root *sitter.Node, source []byte) ([]Capture, error) {
	query, err := sitter.NewQuery([]byte(pattern), c.GetLanguage())
	if err != nil {
		return nil, errors.New(errors.InternalError, "invalid structural query", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, root)

	var captures []Capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			captures = append(captures, Capture{
				Name: query.CaptureNameForId(capture.Index),
				Node: capture.Node,
			})
		}
	}
	return captures, nil
}

// NodeRange converts a node's position to a lint.Range in the buffer
// the node was parsed from.
func NodeRange(n *sitter.Node) lint.Range {
	return lint.Range{
		StartLine: int(n.StartPoint().Row),
		StartCol:  int(n.StartPoint().Column),
		EndLine:   int(n.EndPoint().Row),
		EndCol:    int(n.EndPoint().Column),
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
	}
}
