package translation

import (
	"context"
	"strings"

	"github.com/oukeidos/tecta/internal/apperrors"
)

// Translator turns English text into a Chinese translation plus glossary.
// Implementations issue exactly one upstream call per invocation.
type Translator interface {
	Translate(ctx context.Context, text string) (*Response, error)
}

// CheckInput rejects blank input before any upstream call is made.
func CheckInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.EmptyInput()
	}
	return nil
}
