package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/kk-code-lab/peek/internal/jsonview"
	"github.com/kk-code-lab/peek/internal/provider"
	"github.com/kk-code-lab/peek/internal/resource"
)

type failingProvider struct {
	category resource.Category
	calls    int
}

func (f *failingProvider) RequestContent(context.Context) (string, error) {
	f.calls++
	return "", errors.New("connection reset")
}

func (f *failingProvider) ContentType() resource.Category { return f.category }

type countingProvider struct {
	provider.Static
	requests     int
	typeRequests int
}

func (c *countingProvider) RequestContent(ctx context.Context) (string, error) {
	c.requests++
	return c.Static.RequestContent(ctx)
}

func (c *countingProvider) ContentType() resource.Category {
	c.typeRequests++
	return c.Static.ContentType()
}

func TestEmptyContentAlwaysYieldsNotice(t *testing.T) {
	s := NewSelector(nil)
	for _, mime := range []string{"image/png", "font/woff2", "text/xml", "application/json", "text/plain", "", "application/octet-stream"} {
		t.Run(mime, func(t *testing.T) {
			p := s.Select(context.Background(), provider.Static{Category: resource.Image}, mime)
			notice, ok := p.(*EmptyNotice)
			if !ok {
				t.Fatalf("expected *EmptyNotice, got %T", p)
			}
			if notice.Reason != NothingToPreview {
				t.Fatalf("unexpected reason %q", notice.Reason)
			}
		})
	}
}

func TestFetchErrorIsTreatedAsEmpty(t *testing.T) {
	fp := &failingProvider{category: resource.Script}
	p := NewSelector(nil).Select(context.Background(), fp, "text/plain")
	if _, ok := p.(*EmptyNotice); !ok {
		t.Fatalf("expected *EmptyNotice on fetch error, got %T", p)
	}
	if fp.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fp.calls)
	}
}

func TestImageWinsOverStructuredContent(t *testing.T) {
	s := NewSelector(nil)
	for _, content := range []string{"<svg xmlns=\"http://www.w3.org/2000/svg\"/>", `{"a":1}`, "plain"} {
		p := s.SelectContent(content, "image/svg+xml", nil)
		img, ok := p.(*ImagePreview)
		if !ok {
			t.Fatalf("content %q: expected *ImagePreview, got %T", content, p)
		}
		if img.MIMEType != "image/svg+xml" || img.Size != len(content) {
			t.Fatalf("unexpected image preview %+v", img)
		}
	}
}

func TestFontWinsOverXMLJSONAndText(t *testing.T) {
	s := NewSelector(nil)
	for _, content := range []string{"<a/>", `{"a":1}`, "hello", "wOF2\x00\x01"} {
		if _, ok := s.SelectContent(content, "font/woff2", nil).(*FontPreview); !ok {
			t.Fatalf("content %q: expected *FontPreview", content)
		}
	}
	fp, _ := s.SelectContent("wOF2\x00\x01", "application/font-woff2", nil).(*FontPreview)
	if fp == nil || fp.Format != "woff2" {
		t.Fatalf("expected woff2 format, got %+v", fp)
	}
}

func TestXMLContent(t *testing.T) {
	p := NewSelector(nil).SelectContent("<a/>", "text/xml", nil)
	xp, ok := p.(*XMLPreview)
	if !ok {
		t.Fatalf("expected *XMLPreview, got %T", p)
	}
	if lines := xp.Lines(); len(lines) != 1 || lines[0] != "<a/>" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestJSONContent(t *testing.T) {
	p := NewSelector(nil).SelectContent(`{"a":1}`, "application/json", nil)
	if _, ok := p.(*JSONPreview); !ok {
		t.Fatalf("expected *JSONPreview, got %T", p)
	}
}

func TestJSONDetectedRegardlessOfTextCategory(t *testing.T) {
	p := NewSelector(nil).SelectContent(`[1,2,3]`, "application/octet-stream", func() resource.Category {
		return resource.Other
	})
	if _, ok := p.(*JSONPreview); !ok {
		t.Fatalf("expected *JSONPreview for JSON served as octet-stream, got %T", p)
	}
}

func TestTextContentStripsCharset(t *testing.T) {
	p := NewSelector(nil).SelectContent("hello", "text/plain; charset=utf-8", nil)
	tp, ok := p.(*TextPreview)
	if !ok {
		t.Fatalf("expected *TextPreview, got %T", p)
	}
	if tp.Language != "text/plain" {
		t.Fatalf("expected language text/plain, got %q", tp.Language)
	}
}

func TestUnsupportedContentIsNil(t *testing.T) {
	p := NewSelector(nil).SelectContent("\x00\x01binary", "application/octet-stream", func() resource.Category {
		return resource.Other
	})
	if p != nil {
		t.Fatalf("expected nil preview, got %T", p)
	}
}

func TestUnsupportedAndEmptyAreDistinct(t *testing.T) {
	s := NewSelector(nil)
	empty := s.SelectContent("", "application/octet-stream", nil)
	unsupported := s.SelectContent("\x00", "application/octet-stream", nil)
	if empty == nil {
		t.Fatal("empty content must produce a notice, not nil")
	}
	if unsupported != nil {
		t.Fatalf("unsupported content must produce nil, got %T", unsupported)
	}
}

func TestXMLWinsOverJSON(t *testing.T) {
	// Well-formed XML that the JSON scan also accepts as a JSONP payload.
	content := ` <data>cb({"a":[1]})</data>`
	if _, ok := jsonview.Parse(content); !ok {
		t.Fatal("fixture should also parse as JSON")
	}
	p := NewSelector(nil).SelectContent(content, "application/xml", nil)
	if _, ok := p.(*XMLPreview); !ok {
		t.Fatalf("expected *XMLPreview, got %T", p)
	}
}

func TestFallbackOnlyConsultedForOther(t *testing.T) {
	cp := &countingProvider{Static: provider.Static{Content: "body { color: red }", Category: resource.Image}}
	p := NewSelector(nil).Select(context.Background(), cp, "text/css")
	if _, ok := p.(*TextPreview); !ok {
		t.Fatalf("expected *TextPreview, got %T", p)
	}
	if cp.typeRequests != 0 {
		t.Fatalf("fallback consulted %d times for a classified MIME type", cp.typeRequests)
	}
	if cp.requests != 1 {
		t.Fatalf("expected exactly one fetch, got %d", cp.requests)
	}

	cp = &countingProvider{Static: provider.Static{Content: "\x89PNG", Category: resource.Image}}
	p = NewSelector(nil).Select(context.Background(), cp, "application/octet-stream")
	if _, ok := p.(*ImagePreview); !ok {
		t.Fatalf("expected provider fallback to select an image, got %T", p)
	}
	if cp.typeRequests != 1 {
		t.Fatalf("expected one fallback request, got %d", cp.typeRequests)
	}
}

func TestCustomClassifier(t *testing.T) {
	s := NewSelector(nil)
	s.Classifier = func(string) resource.Category { return resource.Font }
	if _, ok := s.SelectContent("anything", "text/plain", nil).(*FontPreview); !ok {
		t.Fatal("expected custom classifier to drive selection")
	}
}

func TestSelectUsesProviderMIMETypeWhenUndeclared(t *testing.T) {
	sp := provider.Static{Content: `<r/>`, Category: resource.Script, MIME: "application/xml"}
	p := NewSelector(nil).Select(context.Background(), sp, "")
	if _, ok := p.(*XMLPreview); !ok {
		t.Fatalf("expected *XMLPreview from provider MIME type, got %T", p)
	}
}

func TestImagePreviewDecodesDimensions(t *testing.T) {
	// 1x1 transparent GIF.
	gif := "GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;"
	img, ok := NewSelector(nil).SelectContent(gif, "image/gif", nil).(*ImagePreview)
	if !ok {
		t.Fatal("expected *ImagePreview")
	}
	if img.Format != "gif" || img.Width != 1 || img.Height != 1 {
		t.Fatalf("unexpected metadata %+v", img)
	}
}
