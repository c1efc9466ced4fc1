package model

// Verdict is the categorical outcome of a claim analysis.
// The set is closed: values outside it are rejected, never coerced.
type Verdict string

const (
	VerdictTrue         Verdict = "TRUE"
	VerdictLikelyTrue   Verdict = "LIKELY TRUE"
	VerdictMisleading   Verdict = "MISLEADING"
	VerdictLikelyFalse  Verdict = "LIKELY FALSE"
	VerdictFalse        Verdict = "FALSE"
	VerdictUnverifiable Verdict = "UNVERIFIABLE"
)

var verdicts = []Verdict{
	VerdictTrue,
	VerdictLikelyTrue,
	VerdictMisleading,
	VerdictLikelyFalse,
	VerdictFalse,
	VerdictUnverifiable,
}

// AllVerdicts returns every permitted verdict in declaration order
func AllVerdicts() []Verdict {
	out := make([]Verdict, len(verdicts))
	copy(out, verdicts)
	return out
}

// ParseVerdict matches s exactly (case-sensitive) against the permitted set
func ParseVerdict(s string) (Verdict, bool) {
	for _, v := range verdicts {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// Label returns the display label for the verdict
func (v Verdict) Label() string {
	switch v {
	case VerdictTrue:
		return "True"
	case VerdictLikelyTrue:
		return "Likely True"
	case VerdictMisleading:
		return "Misleading"
	case VerdictLikelyFalse:
		return "Likely False"
	case VerdictFalse:
		return "False"
	case VerdictUnverifiable:
		return "Unverifiable"
	default:
		return string(v)
	}
}

// Tone groups verdicts for presentation: positive, caution, negative, neutral
func (v Verdict) Tone() string {
	switch v {
	case VerdictTrue, VerdictLikelyTrue:
		return "positive"
	case VerdictMisleading:
		return "caution"
	case VerdictLikelyFalse, VerdictFalse:
		return "negative"
	default:
		return "neutral"
	}
}
