package resource

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// Magic-number sniffing cannot tell these apart from plain text (or from each
// other), so the extension decides when it is known.
var extensionMIMETypes = map[string]string{
	".css":         "text/css",
	".csv":         "text/csv",
	".htm":         "text/html",
	".html":        "text/html",
	".js":          "text/javascript",
	".json":        "application/json",
	".map":         "application/json",
	".md":          "text/markdown",
	".mjs":         "text/javascript",
	".otf":         "font/otf",
	".svg":         "image/svg+xml",
	".ts":          "text/typescript",
	".ttf":         "font/ttf",
	".txt":         "text/plain",
	".vtt":         "text/vtt",
	".wasm":        "application/wasm",
	".webmanifest": "application/manifest+json",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".xhtml":       "application/xhtml+xml",
	".xml":         "text/xml",
	".yaml":        "text/yaml",
	".yml":         "text/yaml",
}

// FromExtension returns the MIME type registered for the extension of path.
func FromExtension(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	mt, ok := extensionMIMETypes[ext]
	return mt, ok
}

// Sniff detects the MIME type of content from its leading bytes and
// classifies it. Unrecognised binary content is reported as Other.
func Sniff(content []byte) (string, Category) {
	detected := mimetype.Detect(content)
	if detected.Is(octetStream) {
		return octetStream, Other
	}
	mt := detected.String()
	category := FromMIMEType(mt)
	if isTextual(detected) {
		if category == Other {
			category = Script
		}
		return mt, category
	}
	// Binary application/* types such as PDF or zip are not source text.
	if category.IsTextType() {
		category = Other
	}
	return mt, category
}

func isTextual(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
