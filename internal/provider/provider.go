// Package provider supplies the raw content that previews are built from.
package provider

import (
	"context"

	"github.com/kk-code-lab/peek/internal/resource"
)

// DefaultMaxBytes caps how much content a provider reads.
const DefaultMaxBytes int64 = 1 << 20

// ContentProvider exposes on-demand content retrieval plus a best-effort
// type hint.
type ContentProvider interface {
	// RequestContent fetches the content. Empty content with a nil error
	// means the source exists but holds nothing.
	RequestContent(ctx context.Context) (string, error)
	// ContentType is the provider's own classification of the content.
	ContentType() resource.Category
}

// MIMETyper is implemented by providers that know the MIME type of their
// content.
type MIMETyper interface {
	MIMEType() string
}

// Describer is implemented by providers that can name their source.
type Describer interface {
	Describe() string
}

// Static serves fixed in-memory content.
type Static struct {
	Content  string
	Category resource.Category
	MIME     string
	Name     string
}

func (s Static) RequestContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Content, nil
}

func (s Static) ContentType() resource.Category { return s.Category }

func (s Static) MIMEType() string { return s.MIME }

func (s Static) Describe() string { return s.Name }
