package translation

import "time"

// TechnicalTerm is one glossary entry extracted from the source text.
type TechnicalTerm struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
	Explanation string `json:"explanation"`
}

// Response is the full output of a single translation call.
type Response struct {
	TranslatedText string          `json:"translatedText"`
	TechnicalTerms []TechnicalTerm `json:"technicalTerms"`
	Usage          UsageMetadata   `json:"-"` // Filled by the provider, not part of the payload
}

// UsageMetadata holds token usage information.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}

// Settings configures a provider client.
type Settings struct {
	APIKey      string
	Model       string
	Temperature float32
	// Timeout bounds a single call. Zero leaves the call unbounded.
	Timeout time.Duration
}
