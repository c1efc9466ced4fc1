package model

// SourceCheck is the result of probing one cited source after analysis.
// It is reported next to an AnalysisResult and never alters it.
type SourceCheck struct {
	URI              string        `json:"uri"`
	Host             string        `json:"host,omitempty"`
	Accessible       bool          `json:"accessible"`
	StatusCode       int           `json:"status_code,omitempty"`
	FinalURL         string        `json:"final_url,omitempty"` // If redirected
	Authority        AuthorityTier `json:"authority"`
	PageTitle        string        `json:"page_title,omitempty"`
	Published        string        `json:"published,omitempty"` // From article meta tags
	RobotsDisallowed bool          `json:"robots_disallowed,omitempty"`
	Error            string        `json:"error,omitempty"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, academic, official publications
	TierSecondary AuthorityTier = 2 // Encyclopedias, wire services, major media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// MarshalText renders the tier by name in JSON and YAML
func (t AuthorityTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
