// Package jsonview detects and pretty-prints JSON (and JSONP) payloads.
package jsonview

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// maxWrapperBytes bounds the text allowed around the JSON payload; anything
// larger is a document that merely contains JSON, not a JSON response.
const maxWrapperBytes = 80

// Document is a JSON payload with its optional JSONP wrapper.
type Document struct {
	Data   any
	Prefix string
	Suffix string
	text   string
}

type bracketSpan struct {
	start, end int
}

// interior is the length strictly between the brackets, or -1 for no span.
func (b bracketSpan) interior() int {
	if b.start < 0 || b.end < 0 || b.end < b.start {
		return -1
	}
	return b.end - b.start - 1
}

func findBrackets(text string, open, close byte) bracketSpan {
	return bracketSpan{
		start: strings.IndexByte(text, open),
		end:   strings.LastIndexByte(text, close),
	}
}

// Parse interprets content as JSON. The outermost object or array is taken as
// the payload; surrounding text is only accepted as a JSONP callback wrapper.
func Parse(content string) (*Document, bool) {
	if content == "" || strings.HasPrefix(content, "<") {
		return nil, false
	}

	span := findBrackets(content, '{', '}')
	if arr := findBrackets(content, '[', ']'); arr.interior() > span.interior() {
		span = arr
	}
	if span.interior() == -1 || len(content)-span.interior() > maxWrapperBytes {
		return nil, false
	}

	prefix := content[:span.start]
	suffix := content[span.end+1:]
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedSuffix != "" && !(strings.HasPrefix(trimmedSuffix, ")") && strings.HasSuffix(strings.TrimSpace(prefix), "(")) {
		return nil, false
	}

	text := content[span.start : span.end+1]
	data, err := decode(text)
	if err != nil {
		return nil, false
	}
	return &Document{Data: data, Prefix: prefix, Suffix: suffix, text: text}, true
}

func decode(text string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var data any
	if err := decoder.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return data, nil
}

// IsJSONP reports whether the payload was wrapped in a callback.
func (d *Document) IsJSONP() bool {
	return strings.TrimSpace(d.Prefix) != ""
}

// Lines pretty-prints the payload with two-space indentation, keeping the
// original key order. A JSONP wrapper is shown on its own first and last line.
func (d *Document) Lines() []string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(d.text), "", "  "); err != nil {
		return strings.Split(d.text, "\n")
	}

	var lines []string
	if prefix := strings.TrimSpace(d.Prefix); prefix != "" {
		lines = append(lines, prefix)
	}
	lines = append(lines, strings.Split(buf.String(), "\n")...)
	if suffix := strings.TrimSpace(d.Suffix); suffix != "" {
		lines = append(lines, suffix)
	}
	return lines
}
