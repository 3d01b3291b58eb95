package checks

import (
	"context"
	"testing"

	"github.com/mbund/cse2331-linter/internal/cparse"
	"github.com/mbund/cse2331-linter/internal/lint"
)

func check(t *testing.T, src string) []lint.Finding {
	t.Helper()
	source := []byte(src)
	tree, err := cparse.NewParser().Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	defer tree.Close()
	return CheckFile(tree.RootNode(), source, "test.c")
}

func messages(findings []lint.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func TestCheckFile_GlobalVariable(t *testing.T) {
	findings := check(t, `
int counter;
int initialized = 42;
`)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(findings), messages(findings))
	}
	for _, f := range findings {
		if f.Message != "Global variable" {
			t.Errorf("unexpected message: %q", f.Message)
		}
	}
	if findings[1].Snippet != "int initialized = 42;" {
		t.Errorf("unexpected snippet: %q", findings[1].Snippet)
	}
}

func TestCheckFile_PrototypeIsNotGlobal(t *testing.T) {
	findings := check(t, `
int helper(int x);
void other(void);
`)
	if len(findings) != 0 {
		t.Errorf("prototypes must not be flagged, got %v", messages(findings))
	}
}

func TestCheckFile_LocalVariableIsNotGlobal(t *testing.T) {
	findings := check(t, `
// documented
void f() {
  int local = 0;
}
`)
	for _, f := range findings {
		if f.Message == "Global variable" {
			t.Errorf("local declaration flagged as global: %q", f.Snippet)
		}
	}
}

func TestCheckFile_MissingFunctionComment(t *testing.T) {
	findings := check(t, `
void undocumented(void) {
}
`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(findings), messages(findings))
	}
	f := findings[0]
	if f.Message != "Missing comment directly above function" {
		t.Errorf("unexpected message: %q", f.Message)
	}
	if f.Snippet != "void undocumented(void) {" {
		t.Errorf("unexpected snippet: %q", f.Snippet)
	}
}

func TestCheckFile_AdjacentCommentSatisfiesCheck(t *testing.T) {
	findings := check(t, `
// adds two numbers
int add(int a, int b) {
  return a + b;
}
`)
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", messages(findings))
	}
}

func TestCheckFile_BlankLineBreaksAdjacency(t *testing.T) {
	findings := check(t, `
// far away comment

int add(int a, int b) {
  return a + b;
}
`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(findings), messages(findings))
	}
	if findings[0].Message != "Missing comment directly above function" {
		t.Errorf("unexpected message: %q", findings[0].Message)
	}
}

func TestCheckFile_BlockCommentSatisfiesCheck(t *testing.T) {
	findings := check(t, `
/* adds two numbers */
int add(int a, int b) {
  return a + b;
}
`)
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", messages(findings))
	}
}
