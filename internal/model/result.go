package model

import "strings"

// Placeholders used when the model omits the corresponding field
const (
	DefaultSummary   = "No summary provided."
	DefaultReasoning = "No reasoning provided."
)

// Source is an evidentiary citation returned with a verdict.
// Two sources with the same URI are the same source.
type Source struct {
	URI       string `json:"uri"`
	Title     string `json:"title"`
	Published string `json:"published,omitempty"` // Not format-validated
}

// AnalysisResult is the validated outcome of analyzing one claim
type AnalysisResult struct {
	Verdict   Verdict  `json:"verdict"`
	Summary   string   `json:"summary"`
	Reasoning string   `json:"reasoning"`
	Sources   []Source `json:"sources"`
}

// Paragraphs splits the reasoning on embedded newlines, dropping blank lines
func (r AnalysisResult) Paragraphs() []string {
	var out []string
	for _, line := range strings.Split(r.Reasoning, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
