package jsonview

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseObject(t *testing.T) {
	doc, ok := Parse(`{"a":1}`)
	if !ok {
		t.Fatal("expected object to parse")
	}
	obj, isMap := doc.Data.(map[string]any)
	if !isMap {
		t.Fatalf("expected object, got %T", doc.Data)
	}
	if obj["a"] != json.Number("1") {
		t.Fatalf("expected number 1, got %#v", obj["a"])
	}
	if doc.IsJSONP() {
		t.Fatal("plain JSON should not be JSONP")
	}
}

func TestParseJSONP(t *testing.T) {
	doc, ok := Parse(`callback({"items":[1,2]});`)
	if !ok {
		t.Fatal("expected JSONP to parse")
	}
	if !doc.IsJSONP() || doc.Prefix != "callback(" || doc.Suffix != ");" {
		t.Fatalf("unexpected wrapper %q / %q", doc.Prefix, doc.Suffix)
	}

	want := []string{
		"callback(",
		"{",
		`  "items": [`,
		"    1,",
		"    2",
		"  ]",
		"}",
		");",
	}
	if got := doc.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
}

func TestParsePrefersWiderArray(t *testing.T) {
	doc, ok := Parse(`[{"a":1},{"b":2}]`)
	if !ok {
		t.Fatal("expected array to parse")
	}
	if _, isSlice := doc.Data.([]any); !isSlice {
		t.Fatalf("expected array payload, got %T", doc.Data)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"markup", `<a>{"x":1}</a>`},
		{"plain text", "hello"},
		{"scalar", "42"},
		{"invalid", `{"a":}`},
		{"trailing garbage", `{"a":1} more`},
		{"long wrapper", strings.Repeat("x", 100) + `{"a":1}`},
		{"binary", "\x00\x01binary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Parse(tt.content); ok {
				t.Fatalf("expected %q to be rejected", tt.content)
			}
		})
	}
}

func TestLinesKeepsKeyOrder(t *testing.T) {
	doc, ok := Parse(`{"z":1,"a":{"m":true}}`)
	if !ok {
		t.Fatal("expected object to parse")
	}
	want := []string{
		"{",
		`  "z": 1,`,
		`  "a": {`,
		`    "m": true`,
		"  }",
		"}",
	}
	if got := doc.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
}
