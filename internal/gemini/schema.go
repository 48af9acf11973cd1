package gemini

import (
	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/tecta/internal/translation"
)

// responseSchema declares the reply shape so the API enforces it server side.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			translation.FieldTranslatedText: {
				Type:        genai.TypeString,
				Description: translation.DescTranslatedText,
			},
			translation.FieldTechnicalTerms: {
				Type:        genai.TypeArray,
				Description: translation.DescTechnicalTerms,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						translation.FieldTermOriginal:    {Type: genai.TypeString, Description: translation.DescTermOriginal},
						translation.FieldTermTranslation: {Type: genai.TypeString, Description: translation.DescTermTranslation},
						translation.FieldTermExplanation: {Type: genai.TypeString, Description: translation.DescTermExplanation},
					},
					Required: translation.RequiredTermFields,
				},
			},
		},
		Required: translation.RequiredResponseFields,
	}
}
