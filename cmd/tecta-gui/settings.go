package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/tecta/internal/auth"
	"github.com/oukeidos/tecta/internal/metadata"
	"github.com/oukeidos/tecta/internal/version"
)

func keyStatusText(saved bool) string {
	if saved {
		return "Saved in keychain"
	}
	return "Not saved"
}

func (a *tectaApp) refreshSettingsEntries() {
	if a.currentSettingsWin == nil {
		return
	}
	if a.settingsGeminiEntry != nil {
		a.settingsGeminiEntry.SetText("")
		a.settingsGeminiEntry.SetPlaceHolder("Enter new key")
	}
	if a.settingsOpenaiEntry != nil {
		a.settingsOpenaiEntry.SetText("")
		a.settingsOpenaiEntry.SetPlaceHolder("Enter new key")
	}
	if a.settingsGeminiStatus != nil {
		a.settingsGeminiStatus.SetText(keyStatusText(auth.GetStatus(metadata.ProviderGemini)))
	}
	if a.settingsOpenaiStatus != nil {
		a.settingsOpenaiStatus.SetText(keyStatusText(auth.GetStatus(metadata.ProviderOpenAI)))
	}
}

func (a *tectaApp) showSettingsWindow() {
	if a.currentSettingsWin != nil {
		a.currentSettingsWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("Settings")
	a.currentSettingsWin = w
	w.SetOnClosed(func() {
		a.currentSettingsWin = nil
		a.settingsGeminiEntry = nil
		a.settingsOpenaiEntry = nil
		a.settingsGeminiStatus = nil
		a.settingsOpenaiStatus = nil
	})

	a.settingsGeminiEntry = widget.NewPasswordEntry()
	a.settingsOpenaiEntry = widget.NewPasswordEntry()
	a.settingsGeminiStatus = widget.NewLabel("")
	a.settingsOpenaiStatus = widget.NewLabel("")
	a.refreshSettingsEntries()

	keysTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("API Keys", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Gemini Key", container.NewVBox(a.settingsGeminiEntry, a.settingsGeminiStatus)),
			widget.NewFormItem("OpenAI Key", container.NewVBox(a.settingsOpenaiEntry, a.settingsOpenaiStatus)),
		),
		widget.NewButton("Save Keys to Keychain", a.guard("settings.save", func() {
			_, err := saveKeysToKeychain(a.settingsGeminiEntry.Text, a.settingsOpenaiEntry.Text, auth.SaveKey)
			a.refreshSettingsEntries()
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Saved", "API Keys have been updated in your keychain.", w)
		})),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Reset All Keys", theme.DeleteIcon(), a.guard("settings.reset", func() {
			dialog.ShowConfirm("Reset", "Are you sure you want to delete all saved keys from keychain?", func(ok bool) {
				if !ok {
					return
				}
				err := resetKeysInKeychain(auth.DeleteKey)
				a.refreshSettingsEntries()
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				dialog.ShowInformation("Reset Complete", "All saved keys were deleted from keychain.", w)
			}, w)
		})),
	))

	modelSelect := widget.NewSelect(metadata.ModelIDs(a.currentConfig().Provider), func(m string) {
		cfg := a.currentConfig()
		cfg.Model = normalizeModel(cfg.Provider, m)
		a.setConfig(cfg)
	})
	modelSelect.SetSelected(a.currentConfig().Model)

	providerSelect := widget.NewSelect(metadata.Providers(), func(p string) {
		cfg := a.currentConfig()
		if cfg.Provider == p {
			return
		}
		cfg.Provider = normalizeProvider(p)
		cfg.Model = metadata.DefaultModel(cfg.Provider)
		a.setConfig(cfg)
		modelSelect.SetOptions(metadata.ModelIDs(cfg.Provider))
		modelSelect.SetSelected(cfg.Model)
	})
	providerSelect.SetSelected(a.currentConfig().Provider)

	modelTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Translation Model", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Provider", providerSelect),
			widget.NewFormItem("Model", modelSelect),
		),
	))

	aboutTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("About", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("App", widget.NewLabel(appTitle)),
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
		),
	))

	tabs := container.NewAppTabs(
		container.NewTabItem("Keys", keysTab),
		container.NewTabItem("Model", modelTab),
		container.NewTabItem("About", aboutTab),
	)
	w.SetContent(tabs)
	w.Resize(fyne.NewSize(640, 420))
	w.CenterOnScreen()
	w.Show()
}
