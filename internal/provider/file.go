package provider

import (
	"context"
	"fmt"
	"os"
	"sync"

	fsutil "github.com/kk-code-lab/peek/internal/fs"
	"github.com/kk-code-lab/peek/internal/resource"
)

const sniffSampleSize = 3072

// File reads content from the local filesystem.
type File struct {
	Path     string
	MaxBytes int64
	Cache    *Cache

	mu        sync.Mutex
	head      []byte
	truncated bool
}

// NewFile returns a provider for path reading at most maxBytes.
func NewFile(path string, maxBytes int64, cache *Cache) *File {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &File{Path: path, MaxBytes: maxBytes, Cache: cache}
}

func (f *File) RequestContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(f.Path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", f.Path)
	}

	if entry, ok := f.Cache.get(f.Path, info); ok {
		f.setHead(entry.raw, entry.truncated)
		return entry.content, nil
	}

	raw, truncated, err := fsutil.ReadHead(f.Path, f.maxBytes())
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.setHead(raw, truncated)
	content := fsutil.NormalizeText(raw)
	f.Cache.store(f.Path, info, cacheEntry{raw: raw, content: content, truncated: truncated})
	return content, nil
}

// ContentType classifies the file by its leading bytes, preferring the
// extension when it names a known type.
func (f *File) ContentType() resource.Category {
	if mt, ok := resource.FromExtension(f.Path); ok {
		return resource.FromMIMEType(mt)
	}
	head := f.sample()
	if head == nil {
		return resource.Other
	}
	_, category := resource.Sniff(head)
	if category == resource.Script && !fsutil.IsText(head) {
		return resource.Other
	}
	return category
}

// MIMEType reports the extension-registered type, or the sniffed one.
func (f *File) MIMEType() string {
	if mt, ok := resource.FromExtension(f.Path); ok {
		return mt
	}
	head := f.sample()
	if head == nil {
		return ""
	}
	mt, _ := resource.Sniff(head)
	return mt
}

func (f *File) Describe() string { return f.Path }

func (f *File) maxBytes() int64 {
	if f.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return f.MaxBytes
}

// Truncated reports whether the last fetch stopped at MaxBytes.
func (f *File) Truncated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.truncated
}

func (f *File) setHead(raw []byte, truncated bool) {
	f.mu.Lock()
	f.head = raw
	f.truncated = truncated
	f.mu.Unlock()
}

// sample returns the bytes already fetched, or reads a fresh sniffing sample.
func (f *File) sample() []byte {
	f.mu.Lock()
	head := f.head
	f.mu.Unlock()
	if head != nil {
		if len(head) > sniffSampleSize {
			return head[:sniffSampleSize]
		}
		return head
	}
	head, _, err := fsutil.ReadHead(f.Path, sniffSampleSize)
	if err != nil {
		return nil
	}
	return head
}
