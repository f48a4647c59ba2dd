package provider

import (
	"net/http"
	"strings"
)

// Options configures providers built by Open.
type Options struct {
	MaxBytes  int64
	Client    *http.Client
	UserAgent string
	Cache     *Cache
}

// Open returns an HTTP provider for http(s) URLs and a File provider for
// anything else.
func Open(target string, opts Options) ContentProvider {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		p := NewHTTP(target, opts.Client, opts.MaxBytes)
		p.UserAgent = opts.UserAgent
		return p
	}
	return NewFile(target, opts.MaxBytes, opts.Cache)
}
