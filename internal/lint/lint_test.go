package lint

import (
	"sync"
	"testing"
)

func TestSort_ByFileThenPosition(t *testing.T) {
	findings := []Finding{
		{File: "b.c", Range: Range{StartLine: 1}},
		{File: "a.c", Range: Range{StartLine: 9}},
		{File: "a.c", Range: Range{StartLine: 2, StartCol: 8}},
		{File: "a.c", Range: Range{StartLine: 2, StartCol: 1}},
	}

	Sort(findings)

	want := []struct {
		file string
		line int
		col  int
	}{
		{"a.c", 2, 1},
		{"a.c", 2, 8},
		{"a.c", 9, 0},
		{"b.c", 1, 0},
	}
	for i, w := range want {
		f := findings[i]
		if f.File != w.file || f.Range.StartLine != w.line || f.Range.StartCol != w.col {
			t.Errorf("index %d: got %s:%d:%d, want %s:%d:%d",
				i, f.File, f.Range.StartLine, f.Range.StartCol, w.file, w.line, w.col)
		}
	}
}

func TestSort_IsStable(t *testing.T) {
	findings := []Finding{
		{File: "a.c", Range: Range{StartLine: 3}, Message: "first"},
		{File: "a.c", Range: Range{StartLine: 3}, Message: "second"},
	}

	Sort(findings)

	if findings[0].Message != "first" || findings[1].Message != "second" {
		t.Errorf("equal positions must keep insertion order, got %q then %q",
			findings[0].Message, findings[1].Message)
	}
}

func TestRange_LineSpan(t *testing.T) {
	if got := (Range{StartLine: 4, EndLine: 4}).LineSpan(); got != 1 {
		t.Errorf("single line span: got %d, want 1", got)
	}
	if got := (Range{StartLine: 2, EndLine: 5}).LineSpan(); got != 4 {
		t.Errorf("multi line span: got %d, want 4", got)
	}
}

func TestSourceLine(t *testing.T) {
	source := []byte("first\nsecond\r\nthird")
	if got := SourceLine(source, 0); got != "first" {
		t.Errorf("row 0: got %q", got)
	}
	if got := SourceLine(source, 1); got != "second" {
		t.Errorf("row 1: got %q, carriage return must be trimmed", got)
	}
	if got := SourceLine(source, 2); got != "third" {
		t.Errorf("row 2: got %q", got)
	}
	if got := SourceLine(source, 5); got != "" {
		t.Errorf("out of range row: got %q, want empty", got)
	}
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Add(Finding{File: "a.c", Range: Range{StartLine: n}})
			c.AddIdentifiers(Identifier{File: "a.c", Case: LowerSnake, Text: "a_b"})
		}(i)
	}
	wg.Wait()

	if got := len(c.Findings()); got != 8 {
		t.Errorf("expected 8 findings, got %d", got)
	}
	if got := len(c.Identifiers()); got != 8 {
		t.Errorf("expected 8 identifiers, got %d", got)
	}
}

func TestCollector_FindingsAreSorted(t *testing.T) {
	c := NewCollector()
	c.Add(Finding{File: "b.c", Range: Range{StartLine: 1}})
	c.Add(Finding{File: "a.c", Range: Range{StartLine: 7}})
	c.Add(Finding{File: "a.c", Range: Range{StartLine: 3}})

	findings := c.Findings()
	if findings[0].File != "a.c" || findings[0].Range.StartLine != 3 {
		t.Errorf("first finding: got %s:%d", findings[0].File, findings[0].Range.StartLine)
	}
	if findings[2].File != "b.c" {
		t.Errorf("last finding: got %s", findings[2].File)
	}
}
