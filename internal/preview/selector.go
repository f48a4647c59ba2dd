package preview

import (
	"context"
	"log/slog"

	"github.com/kk-code-lab/peek/internal/provider"
	"github.com/kk-code-lab/peek/internal/resource"
	"github.com/kk-code-lab/peek/internal/textutil"
)

// Selector picks a preview for content. It holds no mutable state and may be
// shared between goroutines.
type Selector struct {
	// Classifier maps the declared MIME type to a category. Defaults to
	// resource.FromMIMEType.
	Classifier resource.Classifier
	// TabWidth is applied to text previews. Defaults to textutil.DefaultTabWidth.
	TabWidth int
	Logger   *slog.Logger
}

// NewSelector returns a Selector with default classification.
func NewSelector(logger *slog.Logger) *Selector {
	return &Selector{
		Classifier: resource.FromMIMEType,
		TabWidth:   textutil.DefaultTabWidth,
		Logger:     logger,
	}
}

// Select fetches content from p once and picks its preview. A failed fetch is
// treated exactly like empty content. When mimeType is empty the provider's
// own MIME type, if it has one, is used.
func (s *Selector) Select(ctx context.Context, p provider.ContentProvider, mimeType string) Preview {
	content, err := p.RequestContent(ctx)
	if err != nil {
		s.logger().Debug("content request failed",
			"source", describe(p),
			"error", err,
		)
		content = ""
	}
	if content == "" {
		return &EmptyNotice{Reason: NothingToPreview}
	}
	return s.selectContent(selectContext{
		content:  content,
		mimeType: ResolveMIMEType(p, mimeType),
		fallback: p.ContentType,
		provider: p,
	})
}

// SelectContent picks a preview for content the caller already holds.
// fallback is consulted only when the MIME type classifies as Other; it may
// be nil.
func (s *Selector) SelectContent(content, mimeType string, fallback func() resource.Category) Preview {
	if content == "" {
		return &EmptyNotice{Reason: NothingToPreview}
	}
	return s.selectContent(selectContext{
		content:  content,
		mimeType: mimeType,
		fallback: fallback,
	})
}

func (s *Selector) selectContent(ctx selectContext) Preview {
	classify := s.Classifier
	if classify == nil {
		classify = resource.FromMIMEType
	}
	ctx.category = classify(ctx.mimeType)
	if ctx.category == resource.Other && ctx.fallback != nil {
		ctx.category = ctx.fallback()
	}
	ctx.tabWidth = s.TabWidth
	if ctx.tabWidth <= 0 {
		ctx.tabWidth = textutil.DefaultTabWidth
	}

	for _, strategy := range previewStrategies {
		if p, ok := strategy.build(ctx); ok {
			s.logger().Debug("preview selected",
				"kind", p.Kind().String(),
				"category", ctx.category.String(),
				"mime", ctx.mimeType,
			)
			return p
		}
	}
	s.logger().Debug("no preview available",
		"category", ctx.category.String(),
		"mime", ctx.mimeType,
	)
	return nil
}

// ResolveMIMEType returns declared, or the provider's MIME type when nothing
// was declared.
func ResolveMIMEType(p provider.ContentProvider, declared string) string {
	if declared != "" {
		return declared
	}
	if typer, ok := p.(provider.MIMETyper); ok {
		return typer.MIMEType()
	}
	return ""
}

func (s *Selector) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func describe(p provider.ContentProvider) string {
	if d, ok := p.(provider.Describer); ok {
		return d.Describe()
	}
	return "unknown"
}
