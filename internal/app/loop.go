package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/peek/internal/preview"
	statepkg "github.com/kk-code-lab/peek/internal/state"
)

// Run loads the preview and processes events until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.startLoad()
	defer app.loader.Cancel(app.state.Token)

	app.renderer.Render(app.state)
	renderPending := false

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				// Screen finalised.
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			// Stopped from outside; the terminal may have been redrawn.
			app.refresh()
			renderPending = true
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

// startLoad requests the preview; the result arrives as a PreviewLoadedAction.
func (app *Application) startLoad() {
	app.loader.Start(preview.LoadRequest{
		Token:    app.state.Token,
		Provider: app.provider,
		MIMEType: app.state.MIMEType,
		Callback: func(result preview.LoadResult) {
			truncated := false
			if t, ok := app.provider.(interface{ Truncated() bool }); ok {
				truncated = t.Truncated()
			}
			app.dispatch(statepkg.PreviewLoadedAction{Result: result, Truncated: truncated})
		},
	})
}

// dispatch queues an action without blocking; the event loop is the only
// reader of actionCh.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() { app.actionCh <- action }()
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// handleMouse maps the wheel to line scrolling.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		app.dispatch(statepkg.ScrollUpAction{})
	case ev.Buttons()&tcell.WheelDown != 0:
		app.dispatch(statepkg.ScrollDownAction{})
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		return app.suspend()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Debug("action rejected", "action", action, "error", err)
		return false
	}
	return true
}

// suspend hands the terminal back to the shell and stops the process.
// Execution continues here once the shell resumes peek.
func (app *Application) suspend() bool {
	if !canSuspend {
		return false
	}
	if err := app.screen.Suspend(); err != nil {
		app.logger.Debug("suspend failed", "error", err)
		return false
	}
	if err := stopProcess(); err != nil {
		app.logger.Debug("stop failed", "error", err)
	}
	if err := app.screen.Resume(); err != nil {
		app.logger.Debug("resume failed", "error", err)
		return false
	}
	app.screen.EnableMouse()
	app.refresh()
	return true
}

// refresh repaints from scratch and fits the view to the current terminal size.
func (app *Application) refresh() {
	app.screen.Sync()
	w, h := app.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if _, err := app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		app.logger.Debug("resize rejected", "error", err)
	}
}
