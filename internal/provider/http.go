package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	fsutil "github.com/kk-code-lab/peek/internal/fs"
	"github.com/kk-code-lab/peek/internal/resource"
)

// ErrStatus is returned when the server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected HTTP status")

// HTTP fetches content from a URL.
type HTTP struct {
	URL       string
	Client    *http.Client
	MaxBytes  int64
	UserAgent string

	mu          sync.Mutex
	contentType string
	body        []byte
	truncated   bool
}

// NewHTTP returns a provider for url. A nil client gets a 30 second timeout.
func NewHTTP(url string, client *http.Client, maxBytes int64) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTP{URL: url, Client: client, MaxBytes: maxBytes}
}

func (h *HTTP) RequestContent(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", h.URL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	truncated := int64(len(body)) > limit
	if truncated {
		body = body[:limit]
	}

	h.mu.Lock()
	h.contentType = resp.Header.Get("Content-Type")
	h.body = body
	h.truncated = truncated
	h.mu.Unlock()

	return fsutil.NormalizeText(body), nil
}

// ContentType classifies the response Content-Type, sniffing the body when
// the header is missing or generic.
func (h *HTTP) ContentType() resource.Category {
	h.mu.Lock()
	header, body := h.contentType, h.body
	h.mu.Unlock()

	if category := resource.FromMIMEType(header); category != resource.Other {
		return category
	}
	if len(body) == 0 {
		return resource.Other
	}
	_, category := resource.Sniff(body)
	return category
}

// MIMEType is the Content-Type header of the last response.
func (h *HTTP) MIMEType() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.contentType
}

// Truncated reports whether the last body was cut at MaxBytes.
func (h *HTTP) Truncated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.truncated
}

func (h *HTTP) Describe() string { return h.URL }
