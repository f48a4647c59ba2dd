package preview

import (
	"github.com/kk-code-lab/peek/internal/jsonview"
	"github.com/kk-code-lab/peek/internal/provider"
	"github.com/kk-code-lab/peek/internal/resource"
	"github.com/kk-code-lab/peek/internal/xmlview"
)

type selectContext struct {
	content  string
	mimeType string
	category resource.Category
	fallback func() resource.Category
	provider provider.ContentProvider
	tabWidth int
}

type previewStrategy interface {
	build(ctx selectContext) (Preview, bool)
}

// Evaluated in order; the first strategy that builds a preview wins. Image and
// font precede the structured parsers so that an SVG is shown as an image
// even though it is valid XML, and XML precedes JSON.
var previewStrategies = []previewStrategy{
	imageStrategy{},
	fontStrategy{},
	xmlStrategy{},
	jsonStrategy{},
	textStrategy{},
}

type imageStrategy struct{}

func (imageStrategy) build(ctx selectContext) (Preview, bool) {
	if ctx.category != resource.Image {
		return nil, false
	}
	p := &ImagePreview{
		MIMEType: ctx.mimeType,
		Provider: ctx.provider,
		Size:     len(ctx.content),
	}
	p.Format, p.Width, p.Height = imageDimensions(ctx.content)
	return p, true
}

type fontStrategy struct{}

func (fontStrategy) build(ctx selectContext) (Preview, bool) {
	if ctx.category != resource.Font {
		return nil, false
	}
	return &FontPreview{
		MIMEType: ctx.mimeType,
		Provider: ctx.provider,
		Size:     len(ctx.content),
		Format:   fontFormat(ctx.content),
	}, true
}

type xmlStrategy struct{}

func (xmlStrategy) build(ctx selectContext) (Preview, bool) {
	doc, ok := xmlview.Parse(ctx.content, ctx.mimeType)
	if !ok {
		return nil, false
	}
	return &XMLPreview{MIMEType: ctx.mimeType, Document: doc, TabWidth: ctx.tabWidth}, true
}

type jsonStrategy struct{}

func (jsonStrategy) build(ctx selectContext) (Preview, bool) {
	doc, ok := jsonview.Parse(ctx.content)
	if !ok {
		return nil, false
	}
	return &JSONPreview{MIMEType: ctx.mimeType, Document: doc, TabWidth: ctx.tabWidth}, true
}

type textStrategy struct{}

func (textStrategy) build(ctx selectContext) (Preview, bool) {
	if !ctx.category.IsTextType() {
		return nil, false
	}
	return &TextPreview{
		Language: resource.BaseMIMEType(ctx.mimeType),
		Content:  ctx.content,
		Provider: ctx.provider,
		TabWidth: ctx.tabWidth,
	}, true
}
