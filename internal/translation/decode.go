package translation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oukeidos/tecta/internal/apperrors"
)

type wireTerm struct {
	Original    *string `json:"original"`
	Translation *string `json:"translation"`
	Explanation *string `json:"explanation"`
}

type wireResponse struct {
	TranslatedText *string     `json:"translatedText"`
	TechnicalTerms *[]wireTerm `json:"technicalTerms"`
}

// Decode parses a model reply against the declared schema.
// It never returns a partially filled Response.
func Decode(payload string) (*Response, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, apperrors.EmptyResponse(errors.New("payload is empty"))
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, apperrors.InvalidResponse(fmt.Errorf("failed to unmarshal response: %w", err))
	}
	if wire.TranslatedText == nil {
		return nil, apperrors.InvalidResponse(fmt.Errorf("missing required field %q", FieldTranslatedText))
	}
	if wire.TechnicalTerms == nil {
		return nil, apperrors.InvalidResponse(fmt.Errorf("missing required field %q", FieldTechnicalTerms))
	}

	terms := make([]TechnicalTerm, 0, len(*wire.TechnicalTerms))
	for i, t := range *wire.TechnicalTerms {
		switch {
		case t.Original == nil:
			return nil, apperrors.InvalidResponse(fmt.Errorf("term %d: missing required field %q", i, FieldTermOriginal))
		case t.Translation == nil:
			return nil, apperrors.InvalidResponse(fmt.Errorf("term %d: missing required field %q", i, FieldTermTranslation))
		case t.Explanation == nil:
			return nil, apperrors.InvalidResponse(fmt.Errorf("term %d: missing required field %q", i, FieldTermExplanation))
		}
		terms = append(terms, TechnicalTerm{
			Original:    *t.Original,
			Translation: *t.Translation,
			Explanation: *t.Explanation,
		})
	}

	return &Response{
		TranslatedText: *wire.TranslatedText,
		TechnicalTerms: terms,
	}, nil
}
