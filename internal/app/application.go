package app

import (
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/peek/internal/preview"
	"github.com/kk-code-lab/peek/internal/provider"
	statepkg "github.com/kk-code-lab/peek/internal/state"
	inputui "github.com/kk-code-lab/peek/internal/ui/input"
	renderui "github.com/kk-code-lab/peek/internal/ui/render"
)

// loadToken identifies the single preview request an Application makes.
const loadToken = 1

// Options configures an interactive viewer.
type Options struct {
	Provider provider.ContentProvider
	MIMEType string
	// Source is shown in the header; defaults to the provider's description.
	Source   string
	Selector *preview.Selector
	Logger   *slog.Logger
}

// Application represents the running viewer.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.ViewerState
	reducer    *statepkg.Reducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	loader     preview.Loader
	provider   provider.ContentProvider
	actionCh   chan statepkg.Action
	shouldQuit bool
	logger     *slog.Logger
}

// NewApplication initialises screen and prepares the viewer for opts.Provider.
// The preview is loaded once Run starts.
func NewApplication(screen tcell.Screen, opts Options) (*Application, error) {
	if screen == nil {
		return nil, errors.New("app: nil screen")
	}
	if opts.Provider == nil {
		return nil, errors.New("app: nil content provider")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	selector := opts.Selector
	if selector == nil {
		selector = preview.NewSelector(logger)
	}
	source := opts.Source
	if source == "" {
		if d, ok := opts.Provider.(provider.Describer); ok {
			source = d.Describe()
		}
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Wheel events scroll the body.
	screen.EnableMouse()

	state := statepkg.NewViewerState(source, opts.MIMEType, loadToken)
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewReducer(),
		renderer: renderui.NewRenderer(screen),
		input:    inputHandler,
		loader:   preview.NewAsyncLoader(selector),
		provider: opts.Provider,
		actionCh: actionCh,
		logger:   logger,
	}, nil
}

// State returns the current viewer state.
func (app *Application) State() *statepkg.ViewerState {
	return app.state
}

// Close cancels any outstanding load and releases the screen.
func (app *Application) Close() error {
	app.loader.Cancel(app.state.Token)
	app.screen.Fini()
	return nil
}
