package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/peek/internal/search"
	textutil "github.com/kk-code-lab/peek/internal/textutil"
)

// drawTextLine draws text from startX, clipped at maxWidth columns, and
// returns the column after the last drawn cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	return r.drawHighlightedText(startX, y, maxWidth, text, nil, style, style)
}

// drawHighlightedText draws text applying highlightStyle to runes covered by
// spans (rune offsets, sorted). Zero-width runes are combined with the
// preceding cell.
func (r *Renderer) drawHighlightedText(startX, y, maxWidth int, text string, spans []search.MatchSpan, baseStyle, highlightStyle tcell.Style) int {
	runes := []rune(text)
	x := startX
	spanIdx := 0

	for i := 0; i < len(runes); {
		mainc := runes[i]
		idx := i
		i++

		var combc []rune
		for i < len(runes) && textutil.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		width := textutil.RuneWidth(mainc)
		if width <= 0 {
			width = 1
		}
		if x-startX+width > maxWidth {
			break
		}

		for spanIdx < len(spans) && idx >= spans[spanIdx].End {
			spanIdx++
		}
		style := baseStyle
		if spanIdx < len(spans) && idx >= spans[spanIdx].Start {
			style = highlightStyle
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += width
	}

	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
