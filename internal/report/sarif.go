package report

import (
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const toolURI = "https://github.com/mbund/cse2331-linter"

// sarifRules maps message prefixes to stable SARIF rule identifiers.
var sarifRules = []struct {
	prefix string
	id     string
	desc   string
}{
	{"Global variable", "global-variable", "Global variables are disallowed"},
	{"Missing comment directly above function", "missing-function-comment", "Functions must be documented by a comment on the preceding line"},
	{"Function has more than", "function-length", "Function exceeds the logical line count threshold"},
	{"Macro is not SCREAMING_SNAKE_CASE", "macro-case", "Macro names must be SCREAMING_SNAKE_CASE"},
	{"case identifier contributes", "case-consistency", "Identifier styles must be consistent across the project"},
}

func ruleFor(message string) string {
	for _, rule := range sarifRules {
		if strings.Contains(message, rule.prefix) {
			return rule.id
		}
	}
	return "style"
}

// renderSARIF encodes findings as a SARIF 2.1.0 document suitable for
// code-scanning upload. Sub-findings are not emitted; the aggregate
// message already carries the count.
func (r *Report) renderSARIF(w io.Writer) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("clint", toolURI)
	for _, rule := range sarifRules {
		run.AddRule(rule.id).
			WithDescription(rule.desc)
	}

	for _, finding := range r.Findings {
		region := sarif.NewSimpleRegion(finding.Range.StartLine+1, finding.Range.EndLine+1).
			WithStartColumn(finding.Range.StartCol + 1).
			WithEndColumn(finding.Range.EndCol + 1)

		run.CreateResultForRule(ruleFor(finding.Message)).
			WithLevel("warning").
			WithMessage(sarif.NewTextMessage(finding.Message)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(finding.File)).
					WithRegion(region),
			))
	}

	doc.AddRun(run)
	return doc.PrettyWrite(w)
}
