package resource

import "strings"

// Category is the coarse resource type used to pick a preview strategy.
type Category int

const (
	Other Category = iota
	Document
	Stylesheet
	Script
	Image
	Media
	Font
	TextTrack
	Manifest
)

// Classifier maps a MIME type to a Category.
type Classifier func(mimeType string) Category

var categoryNames = map[Category]string{
	Other:      "other",
	Document:   "document",
	Stylesheet: "stylesheet",
	Script:     "script",
	Image:      "image",
	Media:      "media",
	Font:       "font",
	TextTrack:  "texttrack",
	Manifest:   "manifest",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsTextType reports whether content of this category can be shown as source text.
func (c Category) IsTextType() bool {
	switch c {
	case Document, Stylesheet, Script, TextTrack, Manifest:
		return true
	default:
		return false
	}
}

// FromMIMEType classifies a MIME type. Rules are evaluated in order and the
// first match wins, so "text/html" is a Document even though it is also "text/".
func FromMIMEType(mimeType string) Category {
	mt := strings.ToLower(strings.TrimLeft(mimeType, " \t"))
	switch {
	case strings.HasPrefix(mt, "text/html"):
		return Document
	case strings.HasPrefix(mt, "text/css"):
		return Stylesheet
	case strings.HasPrefix(mt, "image/"):
		return Image
	case strings.HasPrefix(mt, "text/vtt"):
		return TextTrack
	case strings.HasPrefix(mt, "text/"):
		return Script
	case strings.HasPrefix(mt, "audio/"), strings.HasPrefix(mt, "video/"):
		return Media
	case strings.Contains(mt, "font"):
		return Font
	case strings.Contains(mt, "manifest"):
		return Manifest
	case strings.Contains(mt, "script"):
		return Script
	case strings.Contains(mt, "octet"):
		return Other
	case strings.Contains(mt, "application"):
		return Script
	default:
		return Other
	}
}

// BaseMIMEType drops any parameter suffix such as "; charset=utf-8".
func BaseMIMEType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return base
}
