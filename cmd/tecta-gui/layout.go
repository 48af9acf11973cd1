package main

import (
	"fmt"

	"github.com/oukeidos/tecta/internal/status"
	"github.com/oukeidos/tecta/internal/view"
)

const (
	inputPlaceholder = "Paste your technical article or text here..."
	translateLabel   = "Translate"
	loadingTitle     = "Translating Content"
	loadingSubtitle  = "Analyzing technical context and generating professional Chinese translation..."
	sourceHeading    = "English (Source)"
	resultHeading    = "Chinese (Result)"
	appTitle         = "tecta"
	appSubtitle      = "Professional Technical Translation"
)

// uiLayout is what the window shows for one snapshot. Keeping it a plain
// value lets the mapping be tested without a driver.
type uiLayout struct {
	pane             status.Status
	translateEnabled bool
	translateText    string
	clearVisible     bool
	copyVisible      bool
	copied           bool
	glossaryVisible  bool
	glossaryCount    string
}

func layoutFor(s status.Snapshot) uiLayout {
	l := uiLayout{
		pane:             s.State.Status,
		translateEnabled: s.CanSubmit(),
		translateText:    translateLabel,
		clearVisible:     s.Input != "",
		copyVisible:      s.State.Status == status.Success,
		copied:           s.State.Status == status.Success && s.Copied,
	}
	if s.State.Status == status.Loading {
		l.translateText = view.LoadingText
	}
	if s.State.Status == status.Success && len(s.State.Data.TechnicalTerms) > 0 {
		l.glossaryVisible = true
		l.glossaryCount = fmt.Sprintf("%d", len(s.State.Data.TechnicalTerms))
	}
	return l
}
