package llm

import "strings"

// Reply is the raw envelope returned by a provider. Its shape varies by
// provider: text may be exposed through a deferred accessor, a plain field,
// or nested inside candidates. JSON tags follow the Gemini wire format so the
// gemini provider decodes straight into it.
type Reply struct {
	// TextFunc lazily produces the generated text
	TextFunc func() (string, error) `json:"-"`

	// Text is the generated text when the provider returns it flat
	Text string `json:"text,omitempty"`

	Candidates []Candidate `json:"candidates,omitempty"`

	Model      string `json:"modelVersion,omitempty"`
	TokensUsed int    `json:"-"`
}

// Candidate is one generated alternative
type Candidate struct {
	Content           Content            `json:"content"`
	Text              string             `json:"text,omitempty"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// Content holds the parts of a candidate message
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part is a fragment of generated content
type Part struct {
	Text string `json:"text,omitempty"`
}

// String concatenates the text of all parts
func (c Content) String() string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// GroundingMetadata links a generated answer to retrieved web sources
type GroundingMetadata struct {
	WebSearchQueries []string         `json:"webSearchQueries,omitempty"`
	GroundingChunks  []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk is one retrieved item; Web is nil for non-web retrievals
type GroundingChunk struct {
	Web *WebReference `json:"web,omitempty"`
}

// WebReference identifies a retrieved web page
type WebReference struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}
