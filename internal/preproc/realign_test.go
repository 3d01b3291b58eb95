package preproc

import (
	"strings"
	"testing"
)

func TestRealign_KeepsOnlyStdinSegments(t *testing.T) {
	raw := strings.Join([]string{
		`# 1 "<stdin>"`,
		`int x;`,
		`# 1 "/usr/include/stdio.h" 1 3 4`,
		`extern int printf(const char *, ...);`,
		`typedef long size_t;`,
		`# 4 "<stdin>" 2`,
		`int y;`,
	}, "\n")

	virtual, malformed := Realign([]byte(raw), StdinPath)
	if malformed != 0 {
		t.Errorf("expected 0 malformed directives, got %d", malformed)
	}

	want := "int x;\n\n\nint y;"
	if virtual != want {
		t.Errorf("unexpected virtual text:\ngot:  %q\nwant: %q", virtual, want)
	}
}

func TestRealign_PreservesOriginalLineNumbers(t *testing.T) {
	// the segment declared at line 10 must land on line 10
	raw := strings.Join([]string{
		`# 10 "<stdin>"`,
		`int late;`,
	}, "\n")

	virtual, _ := Realign([]byte(raw), StdinPath)
	lines := strings.Split(virtual, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for i := 0; i < 9; i++ {
		if lines[i] != "" {
			t.Errorf("line %d: expected padding, got %q", i+1, lines[i])
		}
	}
	if lines[9] != "int late;" {
		t.Errorf("line 10: got %q", lines[9])
	}
}

func TestRealign_OnlyIncludesYieldsEmpty(t *testing.T) {
	raw := strings.Join([]string{
		`# 1 "lib.h" 1`,
		`void helper(void);`,
		`# 2 "lib.h"`,
		`void other(void);`,
	}, "\n")

	virtual, malformed := Realign([]byte(raw), StdinPath)
	if virtual != "" {
		t.Errorf("expected empty virtual text, got %q", virtual)
	}
	if malformed != 0 {
		t.Errorf("expected 0 malformed directives, got %d", malformed)
	}
}

func TestRealign_SkipsMalformedDirectives(t *testing.T) {
	raw := strings.Join([]string{
		`# 1 "<stdin>"`,
		`int a;`,
		`# notanumber "whatever"`,
		`# 3 "<stdin>"`,
		`int b;`,
	}, "\n")

	virtual, malformed := Realign([]byte(raw), StdinPath)
	if malformed != 1 {
		t.Errorf("expected 1 malformed directive, got %d", malformed)
	}
	want := "int a;\n\nint b;"
	if virtual != want {
		t.Errorf("unexpected virtual text:\ngot:  %q\nwant: %q", virtual, want)
	}
}

func TestRealign_PragmaIsContentNotDirective(t *testing.T) {
	raw := strings.Join([]string{
		`# 1 "<stdin>"`,
		`#pragma pack(1)`,
		`int a;`,
	}, "\n")

	virtual, malformed := Realign([]byte(raw), StdinPath)
	if malformed != 0 {
		t.Errorf("expected 0 malformed directives, got %d", malformed)
	}
	want := "#pragma pack(1)\nint a;"
	if virtual != want {
		t.Errorf("unexpected virtual text:\ngot:  %q\nwant: %q", virtual, want)
	}
}

func TestRealign_ExactPathMatchIsCaseSensitive(t *testing.T) {
	raw := strings.Join([]string{
		`# 1 "<STDIN>"`,
		`int a;`,
	}, "\n")

	virtual, _ := Realign([]byte(raw), StdinPath)
	if virtual != "" {
		t.Errorf("expected case-sensitive path mismatch to drop segment, got %q", virtual)
	}
}

func TestRealign_RoundTrip(t *testing.T) {
	// a file with no macros and no includes expands to itself: the
	// virtual source must reproduce it line-for-line
	source := strings.Join([]string{
		`int add(int a, int b) {`,
		`  return a + b;`,
		`}`,
		``,
		`int counter;`,
	}, "\n")
	raw := "# 1 \"<stdin>\"\n" + source

	virtual, malformed := Realign([]byte(raw), StdinPath)
	if malformed != 0 {
		t.Errorf("expected 0 malformed directives, got %d", malformed)
	}
	if virtual != source {
		t.Errorf("round trip failed:\ngot:  %q\nwant: %q", virtual, source)
	}
}
