package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/peek/internal/preview"
	statepkg "github.com/kk-code-lab/peek/internal/state"
	textutil "github.com/kk-code-lab/peek/internal/textutil"
	"golang.org/x/text/unicode/norm"
)

const separator = " │ "

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the header, the visible preview lines and the footer.
func (r *Renderer) Render(state *statepkg.ViewerState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(state, w)
	if h > 2 {
		r.drawBody(state, w, h)
	}
	if h > 1 {
		r.drawFooter(state, w, h)
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(state *statepkg.ViewerState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fillRow(0, w, 0, style)

	parts := []string{" peek", state.KindLabel()}
	if jp, ok := state.Preview.(*preview.JSONPreview); ok && jp.Document.IsJSONP() {
		parts = append(parts, "jsonp")
	}
	if state.MIMEType != "" {
		parts = append(parts, state.MIMEType)
	}
	if state.Truncated {
		parts = append(parts, "truncated")
	}
	if textutil.HasFormattingRunes(state.Lines...) {
		parts = append(parts, "hidden formatting shown")
	}
	prefix := strings.Join(parts, separator) + separator

	source := textutil.Sanitize(norm.NFC.String(state.Source))
	available := w - textutil.DisplayWidth(prefix)
	if available > 0 {
		prefix += textutil.TruncateToWidth(source, available)
	}
	r.drawTextLine(0, 0, w, prefix, style)
}

func (r *Renderer) drawBody(state *statepkg.ViewerState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.BodyBg).Foreground(r.theme.BodyFg)
	noticeStyle := baseStyle.Foreground(r.theme.NoticeFg).Italic(true)
	matchStyle := baseStyle.Background(r.theme.MatchBg).Foreground(r.theme.MatchFg)
	currentStyle := baseStyle.Background(r.theme.CurrentMatchBg).Foreground(r.theme.CurrentMatchFg).Bold(true)

	if state.Loading {
		r.drawTextLine(1, 1, w-1, "Loading…", noticeStyle)
		return
	}

	lineStyle := baseStyle
	if !state.Searchable() {
		// Notices and metadata, not content.
		lineStyle = noticeStyle
	}

	current, hasCurrent := state.CurrentMatch()
	visible := h - 2
	for row := 0; row < visible; row++ {
		idx := state.ScrollOffset + row
		if idx >= len(state.Lines) {
			break
		}
		y := row + 1
		raw := state.Lines[idx]
		line := textutil.Sanitize(raw)
		highlight := matchStyle
		if hasCurrent && current.Line == idx {
			highlight = currentStyle
		}
		spans := state.MatchesForLine(idx)
		if line != raw {
			// Sanitizing changed rune offsets; fall back to whole-line emphasis.
			if len(spans) > 0 {
				r.drawTextLine(0, y, w, line, highlight)
			} else {
				r.drawTextLine(0, y, w, line, lineStyle)
			}
			continue
		}
		r.drawHighlightedText(0, y, w, line, spans, lineStyle, highlight)
	}
}

func (r *Renderer) drawFooter(state *statepkg.ViewerState, w, h int) {
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, w, y, style)

	if state.SearchActive {
		prompt := "/" + textutil.Sanitize(state.SearchQuery)
		x := r.drawTextLine(0, y, w, prompt, style.Bold(true))
		if x < w {
			r.screen.SetContent(x, y, '▏', nil, style)
		}
		if status := matchStatus(state); status != "" {
			r.drawRight(y, w, status, style.Dim(true))
		}
		return
	}

	position := positionStatus(state)
	help := footerHelp(state)
	available := w - textutil.DisplayWidth(position) - 1
	if available > 0 {
		r.drawTextLine(0, y, available, textutil.TruncateToWidth(help, available), style.Dim(true))
	}
	r.drawRight(y, w, position, style)
}

func (r *Renderer) drawRight(y, w int, text string, style tcell.Style) {
	width := textutil.DisplayWidth(text)
	if width > w {
		text = textutil.TruncateToWidth(text, w)
		width = textutil.DisplayWidth(text)
	}
	r.drawTextLine(w-width, y, width, text, style)
}

func footerHelp(state *statepkg.ViewerState) string {
	segments := []string{"q: quit", "↑↓/PgUp/PgDn: scroll", "g/G: top/end"}
	if state.Searchable() {
		segments = append(segments, "/: search")
		if len(state.Matches) > 0 {
			segments = append(segments, "n/N: next/prev")
		}
	}
	return " " + strings.Join(segments, "  ")
}

func positionStatus(state *statepkg.ViewerState) string {
	total := len(state.Lines)
	if state.Loading || total == 0 {
		return ""
	}
	first := state.ScrollOffset + 1
	last := state.ScrollOffset + state.VisibleLines()
	if last > total {
		last = total
	}
	percent := last * 100 / total
	status := fmt.Sprintf("%d-%d/%d %d%% ", first, last, total, percent)
	if m := matchStatus(state); m != "" {
		status = m + "  " + status
	}
	return status
}

func matchStatus(state *statepkg.ViewerState) string {
	if state.SearchQuery == "" {
		return ""
	}
	if len(state.Matches) == 0 {
		return "no matches "
	}
	return fmt.Sprintf("match %d/%d ", state.MatchIndex+1, len(state.Matches))
}
