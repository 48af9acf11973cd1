package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/tecta/internal/apperrors"
	"google.golang.org/api/googleapi"
)

func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return apperrors.New(apperrors.KindBadRequest, "Gemini blocked the request: "+blocked.Error(), wrapped)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		upstream := strings.TrimSpace(gerr.Message)
		pick := func(fallback string) string {
			if upstream != "" {
				return upstream
			}
			return fallback
		}
		switch {
		case gerr.Code == 404:
			return apperrors.New(apperrors.KindBadRequest, pick("Gemini model not found or no access (404)."), wrapped)
		case gerr.Code == 400:
			return apperrors.New(apperrors.KindBadRequest, pick("Gemini request rejected (400)."), wrapped)
		case gerr.Code == 401, gerr.Code == 403:
			return apperrors.New(apperrors.KindAuth, pick(fmt.Sprintf("Gemini authentication/authorization failed (%d).", gerr.Code)), wrapped)
		case gerr.Code == 429:
			return apperrors.New(apperrors.KindRateLimit, pick("Gemini rate limit exceeded (429). Please try again later."), wrapped)
		case gerr.Code >= 500:
			return apperrors.New(apperrors.KindTransient, pick(fmt.Sprintf("Gemini service error (%d).", gerr.Code)), wrapped)
		default:
			return apperrors.New(apperrors.KindBadRequest, pick(fmt.Sprintf("Gemini API error (%d).", gerr.Code)), wrapped)
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.KindTransient, "Gemini request timed out.", wrapped)
	case errors.Is(err, context.Canceled):
		return apperrors.New(apperrors.KindTransient, "Gemini request was canceled.", wrapped)
	}

	// DNS, socket and other transport failures carry no upstream message.
	return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a network/runtime error.", wrapped)
}
