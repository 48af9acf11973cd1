package translation

import "fmt"

// Temperature biases the model toward literal technical translation.
const Temperature = 0.3

// Schema field names and descriptions shared by every provider.
const (
	SchemaName           = "technical_translation"
	FieldTranslatedText  = "translatedText"
	FieldTechnicalTerms  = "technicalTerms"
	FieldTermOriginal    = "original"
	FieldTermTranslation = "translation"
	FieldTermExplanation = "explanation"

	DescTranslatedText  = "The full translated text in Chinese. Paragraphs should be preserved."
	DescTechnicalTerms  = "A list of key technical terms found in the text."
	DescTermOriginal    = "The term in English"
	DescTermTranslation = "The term in Chinese"
	DescTermExplanation = "A brief explanation of the term in Chinese context"
)

// RequiredResponseFields lists the top-level fields of the reply schema.
var RequiredResponseFields = []string{FieldTranslatedText, FieldTechnicalTerms}

// RequiredTermFields lists the fields every glossary entry must carry.
var RequiredTermFields = []string{FieldTermOriginal, FieldTermTranslation, FieldTermExplanation}

// BuildPrompt embeds the raw input verbatim into the fixed instruction.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`You are a professional technical translator.
Translate the following English text into professional, academic-level Chinese.

Rules:
1. Maintain a professional, objective tone.
2. Preserve specific technical terms in English where appropriate, or use the format 'Chinese Translation (English Term)' for the first occurrence.
3. Ensure the flow is natural for a native Chinese speaker.
4. Extract a list of important technical terms found in the text and provide their Chinese translation and a brief explanation.

Input Text:
%s`, text)
}
