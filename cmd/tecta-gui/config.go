package main

import (
	"slices"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/tecta/internal/logger"
	"github.com/oukeidos/tecta/internal/metadata"
)

const (
	prefProvider = "Provider"
	prefModel    = "Model"
)

type guiConfig struct {
	Provider string
	Model    string
}

func normalizeProvider(p string) string {
	if metadata.IsProvider(p) {
		return p
	}
	return metadata.ProviderGemini
}

// normalizeModel keeps model if the catalog lists it for provider and
// falls back to the provider default otherwise.
func normalizeModel(provider, model string) string {
	if slices.Contains(metadata.ModelIDs(provider), model) {
		return model
	}
	return metadata.DefaultModel(provider)
}

func loadGUIConfig(prefs fyne.Preferences) guiConfig {
	provider := normalizeProvider(prefs.StringWithFallback(prefProvider, metadata.ProviderGemini))
	stored := prefs.String(prefModel)
	model := normalizeModel(provider, stored)
	if stored != "" && stored != model {
		logger.Warn("Stored model not in catalog; using default", "requested", stored, "effective", model)
		prefs.SetString(prefModel, model)
	}
	return guiConfig{Provider: provider, Model: model}
}

func saveGUIConfig(prefs fyne.Preferences, cfg guiConfig) {
	prefs.SetString(prefProvider, cfg.Provider)
	prefs.SetString(prefModel, cfg.Model)
}
