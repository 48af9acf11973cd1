package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/tecta/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

func safeGo(scope string, fn func()) {
	go func() {
		withPanicGuard(scope, nil, fn)
	}()
}

func (a *tectaApp) safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", func(r any) {
		a.handleRecoveredPanic(scope+".dispatch", r)
	}, func() {
		fyne.Do(func() {
			withPanicGuard(scope, func(r any) {
				a.handleRecoveredPanic(scope, r)
			}, fn)
		})
	})
}

// guard wraps a widget callback so a panic in it is logged instead of
// taking down the window.
func (a *tectaApp) guard(scope string, fn func()) func() {
	return func() {
		withPanicGuard(scope, func(r any) {
			a.handleRecoveredPanic(scope, r)
		}, fn)
	}
}

func (a *tectaApp) handleRecoveredPanic(scope string, _ any) {
	if a == nil || a.window == nil || fyne.CurrentApp() == nil {
		return
	}
	a.panicNoticeOnce.Do(func() {
		fyne.Do(func() {
			dialog.ShowInformation(
				"Unexpected Error",
				"An internal error occurred ("+scope+"). Please retry. If this repeats, restart the app.",
				a.window,
			)
		})
	})
}
