// Package report renders lint findings: the console format, JSON and
// YAML encodings, SARIF for code-scanning upload, and a compressed
// archive export.
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mbund/cse2331-linter/internal/lint"
	"github.com/mbund/cse2331-linter/internal/version"
)

// Format selects a report encoding.
type Format string

const (
	// FormatText is the console format: one line per finding with
	// indexed sub-findings indented beneath it.
	FormatText Format = "text"
	// FormatJSON encodes the full report as JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes the full report as YAML.
	FormatYAML Format = "yaml"
	// FormatSARIF encodes findings as a SARIF 2.1.0 document.
	FormatSARIF Format = "sarif"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML, FormatSARIF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, json, yaml, or sarif)", s)
}

// Report is the complete result of one lint run.
type Report struct {
	RunID    string         `json:"runId" yaml:"runId"`
	Tool     string         `json:"tool" yaml:"tool"`
	Version  string         `json:"version" yaml:"version"`
	Files    []string       `json:"files" yaml:"files"`
	Findings []lint.Finding `json:"findings" yaml:"findings"`
	// Errors lists files whose checks were partially skipped due to
	// isolated per-file failures.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// New builds a report for the given run.
func New(runID string, files []string, findings []lint.Finding, fileErrors []string) *Report {
	return &Report{
		RunID:    runID,
		Tool:     "clint",
		Version:  version.Version,
		Files:    files,
		Findings: findings,
		Errors:   fileErrors,
	}
}

// Render writes the report in the requested format.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return r.renderText(w)
	case FormatJSON:
		return r.renderJSON(w)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(r)
	case FormatSARIF:
		return r.renderSARIF(w)
	}
	return fmt.Errorf("unknown format %q", format)
}

// renderText prints one line per finding as
// `path:line:col message `snippet`` with indexed sub-findings on
// indented follow-up lines. Rows and columns print 1-based.
func (r *Report) renderText(w io.Writer) error {
	for _, finding := range r.Findings {
		if _, err := fmt.Fprintln(w, formatFinding(finding)); err != nil {
			return err
		}
		for i, sub := range finding.SubFindings {
			if _, err := fmt.Fprintf(w, "  %d) %s\n", i+1, formatFinding(sub)); err != nil {
				return err
			}
		}
	}
	for _, e := range r.Errors {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}

func formatFinding(f lint.Finding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d %s `%s`",
		f.File,
		f.Range.StartLine+1,
		f.Range.StartCol+1,
		f.Message,
		f.Snippet,
	)
	return b.String()
}
