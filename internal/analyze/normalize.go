package analyze

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ppiankov/factcheck/internal/llm"
	"github.com/ppiankov/factcheck/internal/model"
)

// fencePattern matches a reply that is entirely one fenced code block
var fencePattern = regexp.MustCompile("^```(?:json)?\\s*([\\s\\S]*?)\\s*```$")

var errNotObject = errors.New("reply is not a JSON object")

// textExtractor pulls the generated text out of one known reply shape
type textExtractor struct {
	name    string
	extract func(*llm.Reply) (string, error)
}

// extractors are tried in order; the first non-empty text wins
var extractors = []textExtractor{
	{name: "deferred", extract: func(r *llm.Reply) (string, error) {
		if r.TextFunc == nil {
			return "", nil
		}
		return r.TextFunc()
	}},
	{name: "text", extract: func(r *llm.Reply) (string, error) {
		return r.Text, nil
	}},
	{name: "candidate-content", extract: func(r *llm.Reply) (string, error) {
		if len(r.Candidates) == 0 {
			return "", nil
		}
		return r.Candidates[0].Content.String(), nil
	}},
	{name: "candidate-text", extract: func(r *llm.Reply) (string, error) {
		if len(r.Candidates) == 0 {
			return "", nil
		}
		return r.Candidates[0].Text, nil
	}},
}

// replyPayload is the JSON object the model is asked to produce. Fields are
// kept raw so that wrong types degrade instead of failing the parse.
type replyPayload struct {
	Verdict   json.RawMessage `json:"verdict"`
	Summary   json.RawMessage `json:"summary"`
	Reasoning json.RawMessage `json:"reasoning"`
}

// Normalizer turns a raw provider reply into a validated AnalysisResult
type Normalizer struct {
	logger *log.Logger
}

// NewNormalizer creates a normalizer. A nil logger uses the default logger.
func NewNormalizer(logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize extracts, parses and validates the reply. It returns either a
// complete result or an *Error, never both.
func (n *Normalizer) Normalize(reply *llm.Reply) (*model.AnalysisResult, error) {
	text := stripFence(n.extractText(reply))

	payload, err := parsePayload(text)
	if err != nil {
		n.logger.Error("failed to parse model reply", "err", err, "finish_reason", finishReason(reply), "raw", text)
		return nil, newError(CategoryMalformedResponse, MsgMalformedResponse, err)
	}

	value := verdictValue(payload.Verdict)
	verdict, ok := model.ParseVerdict(value)
	if !ok {
		n.logger.Warn("model returned unknown verdict", "verdict", value)
		return nil, invalidVerdictError(value)
	}

	return &model.AnalysisResult{
		Verdict:   verdict,
		Summary:   stringOr(payload.Summary, model.DefaultSummary),
		Reasoning: stringOr(payload.Reasoning, model.DefaultReasoning),
		Sources:   groundedSources(reply),
	}, nil
}

func (n *Normalizer) extractText(reply *llm.Reply) string {
	if reply == nil {
		return ""
	}
	for _, ex := range extractors {
		text, err := ex.extract(reply)
		if err != nil {
			n.logger.Debug("reply text accessor failed", "extractor", ex.name, "err", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

// finishReason reports why generation stopped, e.g. MAX_TOKENS for a
// truncated answer
func finishReason(reply *llm.Reply) string {
	if reply == nil || len(reply.Candidates) == 0 {
		return ""
	}
	return reply.Candidates[0].FinishReason
}

// stripFence unwraps text that is a single fenced block and leaves anything
// else untouched
func stripFence(text string) string {
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

func parsePayload(text string) (*replyPayload, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 || data[0] != '{' {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return nil, errNotObject
	}

	var payload replyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// verdictValue renders the raw verdict for validation and error messages.
// A missing field yields "".
func verdictValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func stringOr(raw json.RawMessage, fallback string) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// groundedSources collects web references from the first candidate's
// grounding metadata, deduplicated by URI. First occurrence fixes the
// position; the last occurrence supplies the value.
func groundedSources(reply *llm.Reply) []model.Source {
	sources := []model.Source{}
	if reply == nil || len(reply.Candidates) == 0 || reply.Candidates[0].GroundingMetadata == nil {
		return sources
	}

	index := make(map[string]int)
	for _, chunk := range reply.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		src := model.Source{URI: chunk.Web.URI, Title: chunk.Web.Title}
		if i, seen := index[src.URI]; seen {
			sources[i] = src
			continue
		}
		index[src.URI] = len(sources)
		sources = append(sources, src)
	}
	return sources
}
