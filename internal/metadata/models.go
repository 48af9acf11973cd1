package metadata

import "strings"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Model is a catalog entry with per-million-token list prices in USD.
type Model struct {
	Provider         string
	ID               string
	Label            string
	InputPerMillion  float64
	OutputPerMillion float64
}

var Catalog = []Model{
	{Provider: ProviderGemini, ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", InputPerMillion: 0.30, OutputPerMillion: 2.50},
	{Provider: ProviderGemini, ID: "gemini-2.5-pro", Label: "Gemini 2.5 Pro", InputPerMillion: 1.25, OutputPerMillion: 10.00},
	{Provider: ProviderGemini, ID: "gemini-3-flash-preview", Label: "Gemini 3 Flash (preview)", InputPerMillion: 0.50, OutputPerMillion: 3.00},
	{Provider: ProviderOpenAI, ID: "gpt-4o-mini", Label: "GPT-4o mini", InputPerMillion: 0.15, OutputPerMillion: 0.60},
	{Provider: ProviderOpenAI, ID: "gpt-4o", Label: "GPT-4o", InputPerMillion: 2.50, OutputPerMillion: 10.00},
	{Provider: ProviderOpenAI, ID: "gpt-5.2", Label: "GPT-5.2", InputPerMillion: 1.75, OutputPerMillion: 14.00},
}

const (
	DefaultOpenAIInputPerMillion  = 2.50
	DefaultOpenAIOutputPerMillion = 10.00
	DefaultGeminiInputPerMillion  = 2.00
	DefaultGeminiOutputPerMillion = 12.00
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI}
}

// IsProvider reports whether name is a supported provider.
func IsProvider(name string) bool {
	switch strings.ToLower(name) {
	case ProviderGemini, ProviderOpenAI:
		return true
	}
	return false
}

func Models(provider string) []Model {
	var out []Model
	for _, m := range Catalog {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}

func ModelIDs(provider string) []string {
	models := Models(provider)
	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	return ids
}

// DefaultModel is the first catalog entry for provider.
func DefaultModel(provider string) string {
	if models := Models(provider); len(models) > 0 {
		return models[0].ID
	}
	return ""
}

// Pricing returns the catalog entry for modelID, or provider-level default
// prices with ok=false when the model is unknown.
func Pricing(provider, modelID string) (Model, bool) {
	for _, m := range Catalog {
		if m.Provider == provider && m.ID == modelID {
			return m, true
		}
	}
	if provider == ProviderOpenAI {
		return Model{
			Provider:         ProviderOpenAI,
			ID:               "default",
			Label:            "Default OpenAI",
			InputPerMillion:  DefaultOpenAIInputPerMillion,
			OutputPerMillion: DefaultOpenAIOutputPerMillion,
		}, false
	}
	return Model{
		Provider:         ProviderGemini,
		ID:               "default",
		Label:            "Default Gemini",
		InputPerMillion:  DefaultGeminiInputPerMillion,
		OutputPerMillion: DefaultGeminiOutputPerMillion,
	}, false
}

// EstimateCost returns the USD cost of a call with the given token counts.
func (m Model) EstimateCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1e6*m.InputPerMillion + float64(outputTokens)/1e6*m.OutputPerMillion
}
