// Package lint defines the finding data model shared by every check:
// source ranges, findings with itemized sub-findings, classified
// identifiers, and the ordered collector the reporter consumes.
package lint

import (
	"sort"
	"strings"
	"sync"
)

// Range locates a construct within a specific text buffer. Rows and
// columns are 0-based, matching the parser; the reporter converts to
// 1-based on output. A Range is only meaningful relative to the exact
// text it was computed against.
type Range struct {
	StartLine int `json:"startLine" yaml:"startLine"`
	StartCol  int `json:"startCol" yaml:"startCol"`
	EndLine   int `json:"endLine" yaml:"endLine"`
	EndCol    int `json:"endCol" yaml:"endCol"`
	StartByte int `json:"startByte" yaml:"startByte"`
	EndByte   int `json:"endByte" yaml:"endByte"`
}

// LineSpan returns the number of source lines the range covers.
func (r Range) LineSpan() int {
	return r.EndLine - r.StartLine + 1
}

// Finding is one reported lint. A Finding with sub-findings represents
// an aggregate judgement whose sub-findings itemize the contributions
// that sum to the reported count. Immutable after creation.
type Finding struct {
	Message     string    `json:"message" yaml:"message"`
	Snippet     string    `json:"snippet" yaml:"snippet"`
	File        string    `json:"file" yaml:"file"`
	Range       Range     `json:"range" yaml:"range"`
	Lines       int       `json:"lines,omitempty" yaml:"lines,omitempty"`
	SubFindings []Finding `json:"subFindings,omitempty" yaml:"subFindings,omitempty"`
}

// IdentifierCase classifies an identifier's naming style.
type IdentifierCase int

const (
	// Unclassified identifiers match neither style and are dropped.
	Unclassified IdentifierCase = iota
	// LowerSnake is a lowercase run interrupted by at least one underscore.
	LowerSnake
	// Camel is a lowercase run followed by one or more capitalized humps.
	Camel
)

// String returns the human label used in consistency findings.
func (c IdentifierCase) String() string {
	switch c {
	case LowerSnake:
		return "snake case"
	case Camel:
		return "camel case"
	}
	return "unclassified"
}

// Identifier is a classified identifier occurrence, consumed read-only
// by the whole-project consistency check.
type Identifier struct {
	File  string         `json:"file" yaml:"file"`
	Range Range          `json:"range" yaml:"range"`
	Case  IdentifierCase `json:"case" yaml:"case"`
	Text  string         `json:"text" yaml:"text"`
}

// SourceLine returns line row (0-based) of source, used for finding
// snippets. Out-of-range rows yield an empty string.
func SourceLine(source []byte, row int) string {
	lines := strings.Split(string(source), "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[row], "\r")
}

// Collector accumulates findings and identifiers from concurrent
// per-file passes. Append-only; the final ordered view is produced
// once, after all files are finalized.
type Collector struct {
	mu          sync.Mutex
	findings    []Finding
	identifiers []Identifier
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends findings.
func (c *Collector) Add(findings ...Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = append(c.findings, findings...)
}

// AddIdentifiers appends classified identifiers.
func (c *Collector) AddIdentifiers(ids ...Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identifiers = append(c.identifiers, ids...)
}

// Identifiers returns the accumulated identifiers.
func (c *Collector) Identifiers() []Identifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Identifier, len(c.identifiers))
	copy(out, c.identifiers)
	return out
}

// Findings returns all findings sorted by file, then start line, then
// start column.
func (c *Collector) Findings() []Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	Sort(out)
	return out
}

// Sort orders findings by file path, then start line, then start column.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Range.StartLine != findings[j].Range.StartLine {
			return findings[i].Range.StartLine < findings[j].Range.StartLine
		}
		return findings[i].Range.StartCol < findings[j].Range.StartCol
	})
}
