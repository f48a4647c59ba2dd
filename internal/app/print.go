package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/kk-code-lab/peek/internal/preview"
	"github.com/kk-code-lab/peek/internal/search"
	statepkg "github.com/kk-code-lab/peek/internal/state"
	textutil "github.com/kk-code-lab/peek/internal/textutil"
)

// ErrNotSearchable is returned when a search is requested for a preview that
// has no text lines.
var ErrNotSearchable = errors.New("preview is not searchable")

// ErrNotXML is returned when an XPath query is requested for a preview that
// is not an XML document.
var ErrNotXML = errors.New("preview is not XML")

// PrintOptions controls non-interactive output.
type PrintOptions struct {
	// KindOnly prints just the preview kind ("unsupported" for no preview).
	KindOnly bool
	// Search prints only lines containing the query, prefixed by their
	// 1-based line number.
	Search string
	// XPath prints the nodes an XPath expression selects from an XML
	// preview, one per line.
	XPath string
}

// Print writes p to w as plain lines, the way the viewer body shows them.
func Print(w io.Writer, p preview.Preview, opts PrintOptions) error {
	state := statepkg.NewViewerState("", "", loadToken)
	if _, err := statepkg.NewReducer().Reduce(state, statepkg.PreviewLoadedAction{
		Result: preview.LoadResult{Token: loadToken, Preview: p},
	}); err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	switch {
	case opts.KindOnly:
		fmt.Fprintln(out, state.KindLabel())
	case opts.XPath != "":
		xp, ok := p.(*preview.XMLPreview)
		if !ok {
			return ErrNotXML
		}
		results, err := xp.Document.Query(opts.XPath)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Fprintln(out, textutil.Sanitize(result))
		}
	case opts.Search != "":
		if !state.Searchable() {
			return ErrNotSearchable
		}
		for _, match := range search.FindInLines(state.Lines, opts.Search) {
			fmt.Fprintf(out, "%d:%s\n", match.Line+1, textutil.Sanitize(state.Lines[match.Line]))
		}
	default:
		for _, line := range state.Lines {
			fmt.Fprintln(out, textutil.Sanitize(line))
		}
	}
	return out.Flush()
}
