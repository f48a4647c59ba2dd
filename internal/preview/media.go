package preview

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// imageDimensions decodes just the image header. Formats without a
// registered decoder report zero dimensions.
func imageDimensions(content string) (string, int, int) {
	cfg, format, err := image.DecodeConfig(strings.NewReader(content))
	if err != nil {
		return "", 0, 0
	}
	return format, cfg.Width, cfg.Height
}

var fontSignatures = []struct {
	magic  string
	format string
}{
	{"wOF2", "woff2"},
	{"wOFF", "woff"},
	{"OTTO", "otf"},
	{"\x00\x01\x00\x00", "ttf"},
	{"true", "ttf"},
	{"ttcf", "ttc"},
}

func fontFormat(content string) string {
	for _, sig := range fontSignatures {
		if strings.HasPrefix(content, sig.magic) {
			return sig.format
		}
	}
	return ""
}
