package state

import "github.com/kk-code-lab/peek/internal/preview"

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

// ===== VIEW ACTIONS =====

type QuitAction struct{}    // q / Esc - leave the viewer
type SuspendAction struct{} // Ctrl-Z - stop and return to the shell

type ResizeAction struct {
	Width  int
	Height int
}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchSubmitAction struct{}
type SearchCancelAction struct{}
type SearchNextAction struct{}
type SearchPrevAction struct{}

// ===== LOAD ACTIONS =====

// PreviewLoadedAction delivers the result of an asynchronous selection.
type PreviewLoadedAction struct {
	Result    preview.LoadResult
	Truncated bool
}
