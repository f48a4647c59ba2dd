package state

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/peek/internal/preview"
	"github.com/kk-code-lab/peek/internal/search"
)

// NoPreviewAvailable is shown when the content has no suitable preview.
const NoPreviewAvailable = "No preview available"

// ViewerState is everything the renderer needs to draw one frame.
type ViewerState struct {
	Source   string
	MIMEType string
	Token    int

	Loading   bool
	Preview   preview.Preview
	Lines     []string
	Truncated bool

	ScrollOffset int
	ScreenWidth  int
	ScreenHeight int

	SearchActive bool
	SearchQuery  string
	Matches      []search.LineMatch
	MatchIndex   int
}

// NewViewerState returns the state shown while the preview for source loads.
func NewViewerState(source, mimeType string, token int) *ViewerState {
	return &ViewerState{
		Source:   source,
		MIMEType: mimeType,
		Token:    token,
		Loading:  true,
	}
}

// Searchable reports whether the loaded preview supports search.
func (s *ViewerState) Searchable() bool {
	_, ok := s.Preview.(preview.Searchable)
	return ok
}

// KindLabel names the loaded preview for display.
func (s *ViewerState) KindLabel() string {
	switch {
	case s.Loading:
		return "loading"
	case s.Preview == nil:
		return "unsupported"
	default:
		return s.Preview.Kind().String()
	}
}

// VisibleLines is the number of body rows between the header and footer.
func (s *ViewerState) VisibleLines() int {
	if s.ScreenHeight <= 2 {
		return 1
	}
	return s.ScreenHeight - 2
}

func (s *ViewerState) maxScrollOffset() int {
	max := len(s.Lines) - s.VisibleLines()
	if max < 0 {
		return 0
	}
	return max
}

func (s *ViewerState) scrollBy(delta int) {
	s.ScrollOffset += delta
	s.clampScroll()
}

func (s *ViewerState) clampScroll() {
	if max := s.maxScrollOffset(); s.ScrollOffset > max {
		s.ScrollOffset = max
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// CurrentMatch returns the selected search match, if any.
func (s *ViewerState) CurrentMatch() (search.LineMatch, bool) {
	if s.MatchIndex < 0 || s.MatchIndex >= len(s.Matches) {
		return search.LineMatch{}, false
	}
	return s.Matches[s.MatchIndex], true
}

// MatchesForLine returns the spans matched on line idx.
func (s *ViewerState) MatchesForLine(idx int) []search.MatchSpan {
	for _, m := range s.Matches {
		if m.Line == idx {
			return m.Spans
		}
		if m.Line > idx {
			break
		}
	}
	return nil
}

// revealLine scrolls just enough to bring line idx into view.
func (s *ViewerState) revealLine(idx int) {
	visible := s.VisibleLines()
	if idx < s.ScrollOffset {
		s.ScrollOffset = idx
	} else if idx >= s.ScrollOffset+visible {
		s.ScrollOffset = idx - visible + 1
	}
	s.clampScroll()
}

// previewLines lays out the body of the loaded preview.
func previewLines(p preview.Preview) []string {
	switch v := p.(type) {
	case nil:
		return []string{NoPreviewAvailable}
	case *preview.EmptyNotice:
		return []string{v.Reason}
	case *preview.ImagePreview:
		lines := []string{
			"Image",
			"  type: " + v.MIMEType,
			"  size: " + humanize.Bytes(uint64(v.Size)),
		}
		if v.Width > 0 && v.Height > 0 {
			lines = append(lines,
				"  format: "+v.Format,
				fmt.Sprintf("  dimensions: %d × %d", v.Width, v.Height),
			)
		}
		return lines
	case *preview.FontPreview:
		lines := []string{
			"Font",
			"  type: " + v.MIMEType,
			"  size: " + humanize.Bytes(uint64(v.Size)),
		}
		if v.Format != "" {
			lines = append(lines, "  format: "+v.Format)
		}
		return lines
	case preview.Searchable:
		return v.Lines()
	default:
		return nil
	}
}
