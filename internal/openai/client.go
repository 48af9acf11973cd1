package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/httpclient"
	"github.com/oukeidos/tecta/internal/translation"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

type Client struct {
	client      *sdk.Client
	model       string
	temperature float32
	timeout     time.Duration
}

var _ translation.Translator = (*Client)(nil)

func NewClient(s translation.Settings) (*Client, error) {
	return newClient(s, "")
}

func newClient(s translation.Settings, baseURL string) (*Client, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, apperrors.Auth(fmt.Errorf("openai api key is empty"))
	}
	cfg := sdk.DefaultConfig(s.APIKey)
	cfg.HTTPClient = httpclient.GetDefaultClient()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	model := s.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client:      sdk.NewClientWithConfig(cfg),
		model:       model,
		temperature: s.Temperature,
		timeout:     s.Timeout,
	}, nil
}

// ModelID returns the configured model identifier.
func (c *Client) ModelID() string {
	return c.model
}

func (c *Client) Translate(ctx context.Context, text string) (*translation.Response, error) {
	if err := translation.CheckInput(text); err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := sdk.ChatCompletionRequest{
		Model: c.model,
		Messages: []sdk.ChatCompletionMessage{
			{Role: sdk.ChatMessageRoleUser, Content: translation.BuildPrompt(text)},
		},
		Temperature: c.temperature,
		ResponseFormat: &sdk.ChatCompletionResponseFormat{
			Type: sdk.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &sdk.ChatCompletionResponseFormatJSONSchema{
				Name:   translation.SchemaName,
				Schema: responseSchema(),
				Strict: true,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.EmptyResponse(fmt.Errorf("no choices returned from OpenAI"))
	}
	choice := resp.Choices[0]
	if choice.FinishReason == sdk.FinishReasonLength {
		return nil, apperrors.InvalidResponse(fmt.Errorf("openai response truncated (finish_reason=length)"))
	}

	result, err := translation.Decode(choice.Message.Content)
	if err != nil {
		return nil, err
	}
	result.Usage = translation.UsageMetadata{
		PromptTokenCount:     resp.Usage.PromptTokens,
		CandidatesTokenCount: resp.Usage.CompletionTokens,
		TotalTokenCount:      resp.Usage.TotalTokens,
	}
	slog.Debug("OpenAI API Response", "model", c.model, "response_id", resp.ID, "usage_total", resp.Usage.TotalTokens)

	return result, nil
}

func responseSchema() *jsonschema.Definition {
	term := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			translation.FieldTermOriginal:    {Type: jsonschema.String, Description: translation.DescTermOriginal},
			translation.FieldTermTranslation: {Type: jsonschema.String, Description: translation.DescTermTranslation},
			translation.FieldTermExplanation: {Type: jsonschema.String, Description: translation.DescTermExplanation},
		},
		Required:             translation.RequiredTermFields,
		AdditionalProperties: false,
	}
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			translation.FieldTranslatedText: {Type: jsonschema.String, Description: translation.DescTranslatedText},
			translation.FieldTechnicalTerms: {Type: jsonschema.Array, Description: translation.DescTechnicalTerms, Items: &term},
		},
		Required:             translation.RequiredResponseFields,
		AdditionalProperties: false,
	}
}

func classifyOpenAIError(err error) error {
	wrapped := fmt.Errorf("openai chat completion failed: %w", err)

	status, upstream := 0, ""
	var apiErr *sdk.APIError
	var reqErr *sdk.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, upstream = apiErr.HTTPStatusCode, strings.TrimSpace(apiErr.Message)
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.KindTransient, "OpenAI request timed out.", wrapped)
	case errors.Is(err, context.Canceled):
		return apperrors.New(apperrors.KindTransient, "OpenAI request was canceled.", wrapped)
	default:
		return apperrors.New(apperrors.KindTransient, "OpenAI request failed due to a network/runtime error.", wrapped)
	}

	pick := func(fallback string) string {
		if upstream != "" {
			return upstream
		}
		return fallback
	}
	switch {
	case status == http.StatusTooManyRequests:
		return apperrors.New(apperrors.KindRateLimit, pick("OpenAI API rate limit exceeded (429): please try again later."), wrapped)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return apperrors.New(apperrors.KindAuth, pick(fmt.Sprintf("OpenAI API authentication/authorization failed (%d): please verify your API key and permissions.", status)), wrapped)
	case status == http.StatusNotFound:
		return apperrors.New(apperrors.KindBadRequest, pick("OpenAI resource not found (404)."), wrapped)
	case status >= 500:
		return apperrors.New(apperrors.KindTransient, pick(fmt.Sprintf("OpenAI server error (%d): please try again later.", status)), wrapped)
	default:
		return apperrors.New(apperrors.KindBadRequest, pick(fmt.Sprintf("OpenAI API error (%d).", status)), wrapped)
	}
}
