package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kk-code-lab/peek/internal/preview"
)

func loadedState(t *testing.T, p preview.Preview, height int) *ViewerState {
	t.Helper()
	state := NewViewerState("fixture", "text/plain", 1)
	state.ScreenWidth = 80
	state.ScreenHeight = height
	reducer := NewReducer()
	if _, err := reducer.Reduce(state, PreviewLoadedAction{Result: preview.LoadResult{Token: 1, Preview: p}}); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return state
}

func numberedText(n int) *preview.TextPreview {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return &preview.TextPreview{Language: "text/plain", Content: b.String(), TabWidth: 4}
}

func TestPreviewLoadedPopulatesLines(t *testing.T) {
	state := loadedState(t, numberedText(3), 10)
	if state.Loading {
		t.Fatal("expected loading to be cleared")
	}
	if len(state.Lines) != 3 || state.Lines[2] != "line 2" {
		t.Fatalf("unexpected lines %q", state.Lines)
	}
	if state.KindLabel() != "text" {
		t.Fatalf("unexpected kind label %q", state.KindLabel())
	}
}

func TestPreviewLoadedIgnoresStaleToken(t *testing.T) {
	state := NewViewerState("fixture", "", 2)
	reducer := NewReducer()
	if _, err := reducer.Reduce(state, PreviewLoadedAction{Result: preview.LoadResult{Token: 1, Preview: numberedText(1)}}); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if !state.Loading || state.Preview != nil {
		t.Fatal("stale result should be ignored")
	}
}

func TestNoticeAndUnsupportedLines(t *testing.T) {
	empty := loadedState(t, &preview.EmptyNotice{Reason: preview.NothingToPreview}, 10)
	if len(empty.Lines) != 1 || empty.Lines[0] != preview.NothingToPreview {
		t.Fatalf("unexpected notice lines %q", empty.Lines)
	}
	if empty.KindLabel() != "empty" {
		t.Fatalf("unexpected label %q", empty.KindLabel())
	}

	unsupported := loadedState(t, nil, 10)
	if len(unsupported.Lines) != 1 || unsupported.Lines[0] != NoPreviewAvailable {
		t.Fatalf("unexpected unsupported lines %q", unsupported.Lines)
	}
	if unsupported.KindLabel() != "unsupported" {
		t.Fatalf("unexpected label %q", unsupported.KindLabel())
	}
}

func TestImageMetadataLines(t *testing.T) {
	state := loadedState(t, &preview.ImagePreview{MIMEType: "image/png", Size: 2048, Format: "png", Width: 3, Height: 4}, 10)
	joined := strings.Join(state.Lines, "\n")
	for _, want := range []string{"image/png", "2.0 kB", "3 × 4"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
}

func TestScrollClampsOffsets(t *testing.T) {
	state := loadedState(t, numberedText(100), 8) // visible lines = 6
	reducer := NewReducer()

	if _, err := reducer.Reduce(state, ScrollPageDownAction{}); err != nil {
		t.Fatalf("page down failed: %v", err)
	}
	if state.ScrollOffset != 6 {
		t.Fatalf("expected offset 6 after page down, got %d", state.ScrollOffset)
	}

	if _, err := reducer.Reduce(state, ScrollToEndAction{}); err != nil {
		t.Fatalf("scroll to end failed: %v", err)
	}
	if state.ScrollOffset != 94 {
		t.Fatalf("expected offset 94, got %d", state.ScrollOffset)
	}

	if _, err := reducer.Reduce(state, ScrollDownAction{}); err != nil {
		t.Fatalf("scroll down failed: %v", err)
	}
	if state.ScrollOffset != 94 {
		t.Fatalf("scroll past end should clamp, got %d", state.ScrollOffset)
	}

	if _, err := reducer.Reduce(state, ScrollToStartAction{}); err != nil {
		t.Fatalf("scroll to start failed: %v", err)
	}
	if _, err := reducer.Reduce(state, ScrollUpAction{}); err != nil {
		t.Fatalf("scroll up failed: %v", err)
	}
	if state.ScrollOffset != 0 {
		t.Fatalf("expected offset 0, got %d", state.ScrollOffset)
	}
}

func TestResizeClampsScroll(t *testing.T) {
	state := loadedState(t, numberedText(20), 8)
	state.ScrollOffset = 14
	if _, err := NewReducer().Reduce(state, ResizeAction{Width: 80, Height: 20}); err != nil {
		t.Fatalf("resize failed: %v", err)
	}
	if state.ScrollOffset != 2 {
		t.Fatalf("expected offset clamped to 2, got %d", state.ScrollOffset)
	}
}

func TestSearchFlow(t *testing.T) {
	state := loadedState(t, numberedText(30), 8)
	reducer := NewReducer()

	actions := []Action{
		SearchStartAction{},
		SearchCharAction{Char: '2'},
		SearchCharAction{Char: '5'},
	}
	for _, a := range actions {
		if _, err := reducer.Reduce(state, a); err != nil {
			t.Fatalf("%T failed: %v", a, err)
		}
	}
	if !state.SearchActive || state.SearchQuery != "25" {
		t.Fatalf("unexpected search state active=%v query=%q", state.SearchActive, state.SearchQuery)
	}
	m, ok := state.CurrentMatch()
	if !ok || m.Line != 25 {
		t.Fatalf("expected match on line 25, got %+v ok=%v", m, ok)
	}
	if state.ScrollOffset != 20 {
		t.Fatalf("expected match revealed at bottom (offset 20), got %d", state.ScrollOffset)
	}

	if _, err := reducer.Reduce(state, SearchBackspaceAction{}); err != nil {
		t.Fatalf("backspace failed: %v", err)
	}
	if state.SearchQuery != "2" {
		t.Fatalf("expected query '2', got %q", state.SearchQuery)
	}
	// "2" matches lines 2, 12, 20-29; the first at or below offset 20 is 20.
	if m, _ := state.CurrentMatch(); m.Line != 20 {
		t.Fatalf("expected current match line 20, got %d", m.Line)
	}

	if _, err := reducer.Reduce(state, SearchSubmitAction{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if state.SearchActive {
		t.Fatal("submit should leave typing mode")
	}

	if _, err := reducer.Reduce(state, SearchPrevAction{}); err != nil {
		t.Fatalf("prev failed: %v", err)
	}
	if m, _ := state.CurrentMatch(); m.Line != 12 {
		t.Fatalf("expected previous match line 12, got %d", m.Line)
	}
	if state.ScrollOffset != 12 {
		t.Fatalf("expected offset 12 after revealing upward, got %d", state.ScrollOffset)
	}

	if _, err := reducer.Reduce(state, SearchCancelAction{}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(state.Matches) != 0 || state.SearchQuery != "" {
		t.Fatal("cancel should clear the search")
	}
}

func TestSearchNextWraps(t *testing.T) {
	state := loadedState(t, numberedText(5), 20)
	reducer := NewReducer()
	for _, a := range []Action{SearchStartAction{}, SearchCharAction{Char: 'l'}, SearchSubmitAction{}} {
		if _, err := reducer.Reduce(state, a); err != nil {
			t.Fatalf("%T failed: %v", a, err)
		}
	}
	if len(state.Matches) != 5 {
		t.Fatalf("expected 5 matches, got %d", len(state.Matches))
	}
	for i := 0; i < 5; i++ {
		if _, err := reducer.Reduce(state, SearchNextAction{}); err != nil {
			t.Fatalf("next failed: %v", err)
		}
	}
	if state.MatchIndex != 0 {
		t.Fatalf("expected wrap to first match, got %d", state.MatchIndex)
	}
}

func TestSearchIgnoredForNonSearchablePreview(t *testing.T) {
	state := loadedState(t, &preview.FontPreview{MIMEType: "font/woff2"}, 10)
	if _, err := NewReducer().Reduce(state, SearchStartAction{}); err != nil {
		t.Fatalf("search start failed: %v", err)
	}
	if state.SearchActive {
		t.Fatal("font previews are not searchable")
	}
}

func TestUnknownActionErrors(t *testing.T) {
	state := NewViewerState("x", "", 1)
	if _, err := NewReducer().Reduce(state, struct{}{}); err == nil {
		t.Fatal("expected error for unknown action")
	}
}
