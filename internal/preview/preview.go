// Package preview selects how fetched content should be previewed.
package preview

import (
	"strings"

	"github.com/kk-code-lab/peek/internal/jsonview"
	"github.com/kk-code-lab/peek/internal/provider"
	"github.com/kk-code-lab/peek/internal/search"
	"github.com/kk-code-lab/peek/internal/textutil"
	"github.com/kk-code-lab/peek/internal/xmlview"
)

// NothingToPreview is the reason given when no content could be retrieved.
const NothingToPreview = "Nothing to preview"

// Kind enumerates the preview variants.
type Kind int

const (
	KindEmpty Kind = iota
	KindImage
	KindFont
	KindXML
	KindJSON
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindImage:
		return "image"
	case KindFont:
		return "font"
	case KindXML:
		return "xml"
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Preview is one of *EmptyNotice, *ImagePreview, *FontPreview, *XMLPreview,
// *JSONPreview or *TextPreview. A nil Preview means no preview is available
// for the content, which is distinct from an EmptyNotice.
type Preview interface {
	Kind() Kind
	sealed()
}

// Searchable previews expose their display lines and can be searched.
type Searchable interface {
	Preview
	Lines() []string
	Search(query string) []search.LineMatch
}

// EmptyNotice reports that there was no content to preview.
type EmptyNotice struct {
	Reason string
}

// ImagePreview shows image metadata. Width and Height are zero when the
// format cannot be decoded.
type ImagePreview struct {
	MIMEType string
	Provider provider.ContentProvider
	Size     int
	Format   string
	Width    int
	Height   int
}

// FontPreview shows font metadata.
type FontPreview struct {
	MIMEType string
	Provider provider.ContentProvider
	Size     int
	Format   string
}

// XMLPreview is a searchable outline of a parsed XML document.
type XMLPreview struct {
	MIMEType string
	Document *xmlview.Document
	TabWidth int
}

// JSONPreview is a pretty-printed JSON payload.
type JSONPreview struct {
	MIMEType string
	Document *jsonview.Document
	TabWidth int
}

// TextPreview is source text for a highlighter identified by Language, the
// MIME type stripped of its parameters.
type TextPreview struct {
	Language string
	Content  string
	Provider provider.ContentProvider
	TabWidth int
}

func (*EmptyNotice) Kind() Kind  { return KindEmpty }
func (*ImagePreview) Kind() Kind { return KindImage }
func (*FontPreview) Kind() Kind  { return KindFont }
func (*XMLPreview) Kind() Kind   { return KindXML }
func (*JSONPreview) Kind() Kind  { return KindJSON }
func (*TextPreview) Kind() Kind  { return KindText }

func (*EmptyNotice) sealed()  {}
func (*ImagePreview) sealed() {}
func (*FontPreview) sealed()  {}
func (*XMLPreview) sealed()   {}
func (*JSONPreview) sealed()  {}
func (*TextPreview) sealed()  {}

func (p *XMLPreview) Lines() []string { return expandTabs(p.Document.Lines(), p.TabWidth) }

func (p *XMLPreview) Search(query string) []search.LineMatch {
	return search.FindInLines(p.Lines(), query)
}

func (p *JSONPreview) Lines() []string { return expandTabs(p.Document.Lines(), p.TabWidth) }

func (p *JSONPreview) Search(query string) []search.LineMatch {
	return search.FindInLines(p.Lines(), query)
}

// Lines splits the content into display lines with tabs expanded. A trailing
// newline does not produce an extra empty line.
func (p *TextPreview) Lines() []string {
	if p.Content == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(p.Content, "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = textutil.ExpandTabs(line, p.TabWidth)
	}
	return lines
}

func (p *TextPreview) Search(query string) []search.LineMatch {
	return search.FindInLines(p.Lines(), query)
}

func expandTabs(lines []string, tabWidth int) []string {
	for i, line := range lines {
		lines[i] = textutil.ExpandTabs(line, tabWidth)
	}
	return lines
}

var (
	_ Searchable = (*XMLPreview)(nil)
	_ Searchable = (*JSONPreview)(nil)
	_ Searchable = (*TextPreview)(nil)
)
