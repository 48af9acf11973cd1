package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/translation"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Client handles communication with the Gemini API.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	modelID string
	timeout time.Duration
}

// Ensure Client implements translation.Translator
var _ translation.Translator = (*Client)(nil)

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, s translation.Settings) (*Client, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, apperrors.Auth(fmt.Errorf("gemini api key is empty"))
	}
	modelID := s.Model
	if modelID == "" {
		modelID = DefaultModel
	}

	// Note: option.WithHTTPClient interferes with the genai library's API-key header
	// injection, so timeouts are enforced through the context in Translate.
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.APIKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelID)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema()
	model.SetTemperature(s.Temperature)

	return &Client{
		client:  client,
		model:   model,
		modelID: modelID,
		timeout: s.Timeout,
	}, nil
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string {
	return c.modelID
}

// Translate sends one generation request and returns the decoded reply.
func (c *Client) Translate(ctx context.Context, text string) (*translation.Response, error) {
	if err := translation.CheckInput(text); err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(translation.BuildPrompt(text)))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	payload, err := extractResponseText(resp)
	if err != nil {
		return nil, apperrors.EmptyResponse(err)
	}
	result, err := translation.Decode(payload)
	if err != nil {
		return nil, err
	}

	if resp.UsageMetadata != nil {
		result.Usage = translation.UsageMetadata{
			PromptTokenCount:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokenCount: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokenCount:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	slog.Debug("Gemini API Response", "model", c.modelID, "terms", len(result.TechnicalTerms), "usage_total", result.Usage.TotalTokenCount)

	return result, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined strings.Builder
		for _, part := range candidate.Content.Parts {
			text, ok := part.(genai.Text)
			if !ok {
				continue
			}
			combined.WriteString(string(text))
		}
		if strings.TrimSpace(combined.String()) != "" {
			return combined.String(), nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}
