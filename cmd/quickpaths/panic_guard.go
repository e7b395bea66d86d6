package main

import (
	"fmt"
	"runtime/debug"

	"fyne.io/fyne/v2"

	"github.com/oukeidos/quickpaths/internal/crash"
	"github.com/oukeidos/quickpaths/internal/logger"
)

func withPanicGuard(scope string, onPanic func(r any, stack []byte), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			if onPanic != nil {
				onPanic(r, stack)
				return
			}
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

func safeGo(scope string, fn func()) {
	go func() {
		withPanicGuard(scope, nil, fn)
	}()
}

func safeDo(scope string, fn func()) {
	withPanicGuard(scope+".dispatch", nil, func() {
		fyne.Do(func() {
			withPanicGuard(scope, nil, fn)
		})
	})
}

// guard runs an input handler that is already on the UI goroutine.
func (a *widgetApp) guard(scope string, fn func()) {
	withPanicGuard(scope, func(r any, stack []byte) {
		a.handleRecoveredPanic(scope, r, stack)
	}, fn)
}

func (a *widgetApp) safeGo(scope string, fn func()) {
	if a == nil {
		safeGo(scope, fn)
		return
	}
	go func() {
		withPanicGuard(scope, func(r any, stack []byte) {
			a.handleBackgroundPanic(scope, r, stack)
		}, fn)
	}()
}

func (a *widgetApp) safeDo(scope string, fn func()) {
	if a == nil {
		safeDo(scope, fn)
		return
	}
	withPanicGuard(scope+".dispatch", func(r any, stack []byte) {
		a.handleRecoveredPanic(scope+".dispatch", r, stack)
	}, func() {
		fyne.Do(func() {
			withPanicGuard(scope, func(r any, stack []byte) {
				a.handleRecoveredPanic(scope, r, stack)
			}, fn)
		})
	})
}

// handleRecoveredPanic reports a panic raised on the UI goroutine.
// Recoverable panics leave the widget running; fatal ones close the UI loop
// with ExitFatalUI so the process restarts.
func (a *widgetApp) handleRecoveredPanic(scope string, r any, stack []byte) {
	if a == nil {
		return
	}
	a.session.Report(scope, r, stack)
	if !crash.Classify(r) {
		return
	}
	a.closeWith(scope, crash.ExitFatalUI)
}

// handleBackgroundPanic reports a panic from a service goroutine. The
// service is gone once its goroutine unwinds, so every such panic closes the
// widget with ExitProcessPanic.
func (a *widgetApp) handleBackgroundPanic(scope string, r any, stack []byte) {
	if a == nil {
		return
	}
	a.session.Report(scope, r, stack)
	a.closeWith(scope, crash.ExitProcessPanic)
}

func (a *widgetApp) closeWith(scope string, code int) {
	a.fatalOnce.Do(func() {
		logger.Error("Fatal error, closing widget", "scope", scope, "exit_code", code)
		fyne.Do(func() {
			a.exitCode = code
			if a.app != nil {
				a.app.Quit()
			}
		})
	})
}
