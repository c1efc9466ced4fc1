package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/factcheck/internal/model"
)

var toneMarks = map[string]string{
	"positive": "✓",
	"caution":  "!",
	"negative": "✗",
	"neutral":  "?",
}

// renderText writes a human-readable report
func renderText(w io.Writer, result *model.AnalysisResult, checks []model.SourceCheck) (err error) {
	printf := func(format string, a ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, a...)
	}

	printf("%s %s\n\n", toneMarks[result.Verdict.Tone()], strings.ToUpper(result.Verdict.Label()))
	printf("%s\n\n", result.Summary)

	printf("Reasoning\n")
	for i, p := range result.Paragraphs() {
		if i > 0 {
			printf("\n")
		}
		printf("  %s\n", p)
	}

	if len(result.Sources) == 0 {
		printf("\nNo sources returned.\n")
		return err
	}

	printf("\nSources\n")
	for i, s := range result.Sources {
		printf("  %d. %s\n", i+1, s.Title)
		printf("     %s\n", s.URI)
		if s.Published != "" {
			printf("     published %s\n", s.Published)
		}
		if i < len(checks) {
			printf("     %s\n", describeCheck(checks[i]))
		}
	}

	return err
}

func describeCheck(c model.SourceCheck) string {
	var parts []string

	switch {
	case c.RobotsDisallowed:
		parts = append(parts, "not checked (robots.txt)")
	case c.Error != "":
		parts = append(parts, "unreachable")
	case c.Accessible:
		parts = append(parts, fmt.Sprintf("ok %d", c.StatusCode))
	default:
		parts = append(parts, fmt.Sprintf("failed %d", c.StatusCode))
	}

	parts = append(parts, c.Authority.String())
	if c.FinalURL != "" {
		parts = append(parts, "→ "+c.FinalURL)
	}
	if c.PageTitle != "" {
		parts = append(parts, fmt.Sprintf("%q", c.PageTitle))
	}
	if c.Published != "" {
		parts = append(parts, "published "+c.Published)
	}

	return "[" + strings.Join(parts, " · ") + "]"
}
