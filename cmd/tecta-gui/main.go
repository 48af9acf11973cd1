package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/tecta/internal/logger"
	"github.com/oukeidos/tecta/internal/status"
	"github.com/oukeidos/tecta/internal/translation"
	"github.com/oukeidos/tecta/internal/view"
)

// largeTheme increases the base text size globally.
type largeTheme struct{ fyne.Theme }

func (m largeTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText {
		return 16
	}
	if n == theme.SizeNameCaptionText {
		return 13
	}
	return theme.DefaultTheme().Size(n)
}

type tectaApp struct {
	window fyne.Window
	prefs  fyne.Preferences
	ctl    *status.Controller
	ctx    context.Context
	cancel context.CancelFunc

	cfgMu  sync.Mutex
	config guiConfig

	input        *widget.Entry
	translateBtn *widget.Button
	clearBtn     *widget.Button
	copyBtn      *widget.Button

	idleView    fyne.CanvasObject
	loadingView fyne.CanvasObject
	errorView   fyne.CanvasObject
	successView fyne.CanvasObject
	activity    *widget.Activity
	errorLabel  *widget.Label
	resultLabel *widget.Label

	glossaryPane  fyne.CanvasObject
	glossaryTitle *widget.Label
	glossaryList  *fyne.Container

	currentSettingsWin   fyne.Window
	settingsGeminiEntry  *widget.Entry
	settingsOpenaiEntry  *widget.Entry
	settingsGeminiStatus *widget.Label
	settingsOpenaiStatus *widget.Label

	panicNoticeOnce sync.Once
}

func newTectaApp(w fyne.Window, prefs fyne.Preferences, clip status.Clipboard, tr translation.Translator) *tectaApp {
	a := &tectaApp{
		window: w,
		prefs:  prefs,
		config: loadGUIConfig(prefs),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	if tr == nil {
		tr = newKeychainTranslator(a.currentConfig)
	}
	a.ctl = status.NewController(tr,
		status.WithClipboard(clip),
		status.WithOnChange(func(s status.Snapshot) {
			a.safeDo("render", func() { a.render(s) })
		}),
	)
	a.buildUI()
	a.render(a.ctl.Snapshot())
	return a
}

func (a *tectaApp) currentConfig() guiConfig {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return a.config
}

func (a *tectaApp) setConfig(cfg guiConfig) {
	a.cfgMu.Lock()
	a.config = cfg
	a.cfgMu.Unlock()
	saveGUIConfig(a.prefs, cfg)
	logger.Info("Settings updated", "provider", cfg.Provider, "model", cfg.Model)
}

func (a *tectaApp) buildUI() {
	title := widget.NewLabelWithStyle(appTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabel(appSubtitle)
	subtitle.Importance = widget.LowImportance
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), a.guard("settings.open", a.showSettingsWindow))
	header := container.NewHBox(container.NewVBox(title, subtitle), layout.NewSpacer(), settingsBtn)

	a.input = widget.NewMultiLineEntry()
	a.input.Wrapping = fyne.TextWrapWord
	a.input.SetPlaceHolder(inputPlaceholder)
	a.input.OnChanged = func(text string) {
		withPanicGuard("input.changed", func(r any) { a.handleRecoveredPanic("input.changed", r) }, func() {
			a.ctl.SetInput(text)
		})
	}

	a.clearBtn = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.guard("clear", a.onClear))
	a.translateBtn = widget.NewButtonWithIcon(translateLabel, theme.MailSendIcon(), a.guard("translate", a.onTranslate))
	a.translateBtn.Importance = widget.HighImportance

	sourceHeader := container.NewHBox(
		widget.NewLabelWithStyle(sourceHeading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		a.clearBtn,
	)
	inputPane := container.NewBorder(sourceHeader, container.NewHBox(layout.NewSpacer(), a.translateBtn), nil, nil, a.input)

	idleHint := widget.NewLabelWithStyle(view.IdleHint, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	a.idleView = container.NewCenter(idleHint)

	a.activity = widget.NewActivity()
	loadingSub := widget.NewLabelWithStyle(loadingSubtitle, fyne.TextAlignCenter, fyne.TextStyle{})
	loadingSub.Wrapping = fyne.TextWrapWord
	a.loadingView = container.NewCenter(container.NewVBox(
		a.activity,
		widget.NewLabelWithStyle(loadingTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		loadingSub,
	))

	a.errorLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	a.errorLabel.Wrapping = fyne.TextWrapWord
	errorTitle := widget.NewLabelWithStyle(view.ErrorTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	errorTitle.Importance = widget.DangerImportance
	a.errorView = container.NewCenter(container.NewVBox(
		widget.NewIcon(theme.ErrorIcon()),
		errorTitle,
		a.errorLabel,
	))

	a.resultLabel = widget.NewLabel("")
	a.resultLabel.Wrapping = fyne.TextWrapWord
	a.resultLabel.Selectable = true
	a.successView = container.NewVScroll(a.resultLabel)

	a.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.guard("copy", func() {
		a.ctl.Copy()
	}))

	resultHeader := container.NewHBox(
		widget.NewLabelWithStyle(resultHeading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		a.copyBtn,
	)
	outputStack := container.NewStack(a.idleView, a.loadingView, a.errorView, a.successView)
	outputPane := container.NewBorder(resultHeader, nil, nil, nil, outputStack)

	a.glossaryTitle = widget.NewLabelWithStyle(view.GlossaryTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.glossaryList = container.NewVBox()
	glossaryScroll := container.NewVScroll(a.glossaryList)
	glossaryScroll.SetMinSize(fyne.NewSize(280, 0))
	a.glossaryPane = container.NewBorder(a.glossaryTitle, nil, nil, nil, glossaryScroll)

	split := container.NewHSplit(inputPane, container.NewBorder(nil, nil, nil, a.glossaryPane, outputPane))
	split.Offset = 0.45

	a.window.SetContent(container.NewPadded(container.NewBorder(header, nil, nil, nil, split)))
}

func (a *tectaApp) onTranslate() {
	a.startTranslate()
}

func (a *tectaApp) startTranslate() (<-chan struct{}, bool) {
	done, ok := a.ctl.Submit(a.ctx)
	if !ok {
		return nil, false
	}
	safeGo("translate.wait", func() {
		<-done
		logger.Debug("Translation finished", "status", string(a.ctl.Snapshot().State.Status))
	})
	return done, true
}

// The controller is cleared first so the entry's OnChanged is a no-op.
func (a *tectaApp) onClear() {
	a.ctl.Clear()
	a.input.SetText("")
}

func (a *tectaApp) render(s status.Snapshot) {
	l := layoutFor(s)

	setVisible(a.clearBtn, l.clearVisible)
	a.translateBtn.SetText(l.translateText)
	if l.translateEnabled {
		a.translateBtn.Enable()
	} else {
		a.translateBtn.Disable()
	}

	setVisible(a.idleView, l.pane == status.Idle)
	setVisible(a.loadingView, l.pane == status.Loading)
	setVisible(a.errorView, l.pane == status.Error)
	setVisible(a.successView, l.pane == status.Success)
	if l.pane == status.Loading {
		a.activity.Start()
	} else {
		a.activity.Stop()
	}
	a.errorLabel.SetText(s.State.Err)
	if s.State.Data != nil {
		a.resultLabel.SetText(s.State.Data.TranslatedText)
	} else {
		a.resultLabel.SetText("")
	}

	setVisible(a.copyBtn, l.copyVisible)
	if l.copied {
		a.copyBtn.SetIcon(theme.ConfirmIcon())
	} else {
		a.copyBtn.SetIcon(theme.ContentCopyIcon())
	}

	a.glossaryList.Objects = nil
	if l.glossaryVisible {
		a.glossaryTitle.SetText(fmt.Sprintf("%s (%s)", view.GlossaryTitle, l.glossaryCount))
		for _, term := range s.State.Data.TechnicalTerms {
			explanation := widget.NewLabel(term.Explanation)
			explanation.Wrapping = fyne.TextWrapWord
			a.glossaryList.Add(widget.NewCard(term.Original, term.Translation, explanation))
		}
	}
	a.glossaryList.Refresh()
	setVisible(a.glossaryPane, l.glossaryVisible)
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

func main() {
	logger.Init(logger.Options{Level: logger.LevelInfo})
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID("com.oukeidos.tecta")
	myApp.Settings().SetTheme(largeTheme{Theme: theme.DefaultTheme()})

	w := myApp.NewWindow(appTitle)
	w.SetMaster()
	w.Resize(fyne.NewSize(1200, 760))
	w.CenterOnScreen()

	ta := newTectaApp(w, myApp.Preferences(), myApp.Clipboard(), nil)
	w.SetCloseIntercept(func() {
		ta.cancel()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
}
