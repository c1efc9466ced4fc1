package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/factcheck/internal/model"
)

// SystemInstruction is sent alongside every prompt to keep the reply machine
// readable
const SystemInstruction = "You are a fact-checking assistant. Reply with exactly one JSON object and nothing else: no prose before or after it and no markdown code fences."

// BuildPrompt returns the instruction text for a single claim. It is a pure
// function of its inputs.
func BuildPrompt(claim string, date time.Time) string {
	verdicts := make([]string, 0, len(model.AllVerdicts()))
	for _, v := range model.AllVerdicts() {
		verdicts = append(verdicts, fmt.Sprintf("'%s'", v))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current date: %s\n", date.Format("2006-01-02"))
	b.WriteString("You are a careful fact-checker. Analyze the following claim and determine its veracity using live web evidence when available.\n\n")
	fmt.Fprintf(&b, "Claim: \"%s\"\n\n", claim)
	b.WriteString("Requirements:\n")
	b.WriteString("- Use web search tools to find recent, authoritative sources where possible. Prefer sources published within the last 12 months when relevant.\n")
	b.WriteString("- Always include the publication date for each source you cite.\n")
	b.WriteString("- Critically evaluate evidence for credibility, corroboration and bias.\n")
	b.WriteString("- Reason step by step and explain how you arrived at your conclusion.\n")
	fmt.Fprintf(&b, "- Assign a final verdict using one of these exact strings: %s.\n", strings.Join(verdicts, ", "))
	b.WriteString("- Write a concise, one-to-two sentence summary of your findings.\n\n")
	b.WriteString("Your final response MUST be a single, valid JSON object with no surrounding text and no markdown code fences, with this exact structure:\n")
	b.WriteString(`{
  "verdict": "YOUR_VERDICT_HERE",
  "summary": "Your concise summary here.",
  "reasoning": "Your detailed, step-by-step reasoning here. Use newline characters (\\n) between paragraphs.",
  "sources": [{"uri": "https://...", "title": "...", "published": "YYYY-MM-DD"}]
}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "If the claim cannot be verified with reliable sources, return %q and explain which checks you performed.\n", model.VerdictUnverifiable)

	return b.String()
}
