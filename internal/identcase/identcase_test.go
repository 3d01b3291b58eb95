package identcase

import (
	"context"
	"testing"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/lint"
)

func classify(t *testing.T, src string) ([]lint.Finding, []lint.Identifier) {
	t.Helper()
	source := []byte(src)
	tree, err := cparse.NewParser().Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	defer tree.Close()

	findings, identifiers, err := Classify(tree.RootNode(), source, "test.c")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	return findings, identifiers
}

func TestClassify_MacroCase(t *testing.T) {
	findings, _ := classify(t, `
#define MAX_SIZE 100
#define myMacro 1
#define lower_macro(x) ((x) + 1)
`)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Message != "Macro is not SCREAMING_SNAKE_CASE" {
			t.Errorf("unexpected message: %q", f.Message)
		}
	}
	if findings[0].Snippet != "#define myMacro 1" {
		t.Errorf("unexpected snippet: %q", findings[0].Snippet)
	}
}

func TestClassify_IdentifierStyles(t *testing.T) {
	_, identifiers := classify(t, `
void f(int someParam) {
  int my_count = 0;
  int plain;
  int x;
}
`)
	byText := map[string]lint.IdentifierCase{}
	for _, id := range identifiers {
		byText[id.Text] = id.Case
	}

	if got := byText["my_count"]; got != lint.LowerSnake {
		t.Errorf("my_count: expected LowerSnake, got %v", got)
	}
	if got := byText["someParam"]; got != lint.Camel {
		t.Errorf("someParam: expected Camel, got %v", got)
	}
	if _, ok := byText["plain"]; ok {
		t.Error("plain: single word must not be classified")
	}
	if _, ok := byText["x"]; ok {
		t.Error("x: single letter must not be classified")
	}
}

func TestClassify_ScreamingIsNotSnake(t *testing.T) {
	_, identifiers := classify(t, `
void f() {
  int SOME_CONST = 1;
}
`)
	for _, id := range identifiers {
		if id.Text == "SOME_CONST" {
			t.Errorf("SOME_CONST classified as %v, expected unclassified", id.Case)
		}
	}
}

func TestConsistencyFindings_MixedStyles(t *testing.T) {
	identifiers := []lint.Identifier{
		{File: "a.c", Case: lint.LowerSnake, Text: "my_count"},
		{File: "b.c", Case: lint.Camel, Text: "someValue"},
	}

	findings := ConsistencyFindings(identifiers)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Message != "Snake case identifier contributes to case inconsistency" {
		t.Errorf("unexpected message: %q", findings[0].Message)
	}
	if findings[1].Message != "Camel case identifier contributes to case inconsistency" {
		t.Errorf("unexpected message: %q", findings[1].Message)
	}
	if findings[1].Snippet != "someValue" {
		t.Errorf("unexpected snippet: %q", findings[1].Snippet)
	}
}

func TestConsistencyFindings_UniformStyleIsSilent(t *testing.T) {
	snakeOnly := []lint.Identifier{
		{File: "a.c", Case: lint.LowerSnake, Text: "my_count"},
		{File: "a.c", Case: lint.LowerSnake, Text: "other_count"},
	}
	if findings := ConsistencyFindings(snakeOnly); len(findings) != 0 {
		t.Errorf("uniform snake case: expected no findings, got %d", len(findings))
	}

	camelOnly := []lint.Identifier{
		{File: "a.c", Case: lint.Camel, Text: "someValue"},
	}
	if findings := ConsistencyFindings(camelOnly); len(findings) != 0 {
		t.Errorf("uniform camel case: expected no findings, got %d", len(findings))
	}

	if findings := ConsistencyFindings(nil); len(findings) != 0 {
		t.Errorf("no identifiers: expected no findings, got %d", len(findings))
	}
}
