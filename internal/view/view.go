// Package view renders controller snapshots as terminal text.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/oukeidos/tecta/internal/status"
	"github.com/oukeidos/tecta/internal/translation"
)

const (
	IdleHint      = "Translation will appear here"
	LoadingText   = "Translating..."
	ErrorTitle    = "Translation Failed"
	GlossaryTitle = "Terminology Glossary"
	maxTermColumn = 32
	columnSpacing = 2
)

// Render writes the output pane for s followed by the glossary, if any.
func Render(w io.Writer, s status.State) error {
	var b strings.Builder
	switch s.Status {
	case status.Idle:
		b.WriteString(IdleHint + "\n")
	case status.Loading:
		b.WriteString(LoadingText + "\n")
	case status.Error:
		fmt.Fprintf(&b, "%s\n%s\n", ErrorTitle, s.Err)
	case status.Success:
		b.WriteString(strings.TrimRight(s.Data.TranslatedText, "\n") + "\n")
		if len(s.Data.TechnicalTerms) > 0 {
			b.WriteString("\n")
			b.WriteString(Glossary(s.Data.TechnicalTerms))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Glossary formats terms as an aligned three-column table. Widths are
// measured in terminal cells so CJK text lines up.
func Glossary(terms []translation.TechnicalTerm) string {
	if len(terms) == 0 {
		return ""
	}
	origW, transW := 0, 0
	for _, t := range terms {
		origW = max(origW, min(Width(t.Original), maxTermColumn))
		transW = max(transW, min(Width(t.Translation), maxTermColumn))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", GlossaryTitle, len(terms))
	for _, t := range terms {
		b.WriteString(pad(t.Original, origW+columnSpacing))
		b.WriteString(pad(t.Translation, transW+columnSpacing))
		b.WriteString(strings.TrimSpace(t.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

func pad(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s + " "
}
