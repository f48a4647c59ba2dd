package state

import (
	"fmt"

	"github.com/kk-code-lab/peek/internal/search"
)

// Reducer applies actions to the viewer state.
type Reducer struct{}

// NewReducer creates a reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Reduce mutates state in place and returns it.
func (r *Reducer) Reduce(state *ViewerState, action Action) (*ViewerState, error) {
	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollUpAction:
		state.scrollBy(-1)
		return state, nil

	case ScrollDownAction:
		state.scrollBy(1)
		return state, nil

	case ScrollPageUpAction:
		state.scrollBy(-state.VisibleLines())
		return state, nil

	case ScrollPageDownAction:
		state.scrollBy(state.VisibleLines())
		return state, nil

	case ScrollToStartAction:
		state.ScrollOffset = 0
		return state, nil

	case ScrollToEndAction:
		state.ScrollOffset = state.maxScrollOffset()
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampScroll()
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		if !state.Searchable() {
			return state, nil
		}
		state.SearchActive = true
		state.SearchQuery = ""
		state.Matches = nil
		state.MatchIndex = 0
		return state, nil

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		state.SearchQuery += string(a.Char)
		r.refreshMatches(state)
		return state, nil

	case SearchBackspaceAction:
		if !state.SearchActive {
			return state, nil
		}
		runes := []rune(state.SearchQuery)
		if len(runes) > 0 {
			state.SearchQuery = string(runes[:len(runes)-1])
		}
		r.refreshMatches(state)
		return state, nil

	case SearchSubmitAction:
		state.SearchActive = false
		return state, nil

	case SearchCancelAction:
		state.SearchActive = false
		state.SearchQuery = ""
		state.Matches = nil
		state.MatchIndex = 0
		return state, nil

	case SearchNextAction:
		r.stepMatch(state, 1)
		return state, nil

	case SearchPrevAction:
		r.stepMatch(state, -1)
		return state, nil

	case QuitAction, SuspendAction:
		// Handled by the application loop.
		return state, nil

	// ===== LOAD =====

	case PreviewLoadedAction:
		if a.Result.Token != state.Token {
			// Stale result from a superseded request.
			return state, nil
		}
		state.Loading = false
		state.Preview = a.Result.Preview
		if a.Result.MIMEType != "" {
			state.MIMEType = a.Result.MIMEType
		}
		state.Truncated = a.Truncated
		state.Lines = previewLines(a.Result.Preview)
		state.ScrollOffset = 0
		state.SearchActive = false
		state.SearchQuery = ""
		state.Matches = nil
		state.MatchIndex = 0
		return state, nil

	default:
		return state, fmt.Errorf("unknown action %T", action)
	}
}

// refreshMatches recomputes matches for the current query and selects the
// first match at or below the top of the viewport.
func (r *Reducer) refreshMatches(state *ViewerState) {
	if state.SearchQuery == "" {
		state.Matches = nil
		state.MatchIndex = 0
		return
	}
	state.Matches = search.FindInLines(state.Lines, state.SearchQuery)
	state.MatchIndex = 0
	for i, m := range state.Matches {
		if m.Line >= state.ScrollOffset {
			state.MatchIndex = i
			break
		}
	}
	if m, ok := state.CurrentMatch(); ok {
		state.revealLine(m.Line)
	}
}

func (r *Reducer) stepMatch(state *ViewerState, delta int) {
	if len(state.Matches) == 0 {
		return
	}
	n := len(state.Matches)
	state.MatchIndex = ((state.MatchIndex+delta)%n + n) % n
	m := state.Matches[state.MatchIndex]
	state.revealLine(m.Line)
}
