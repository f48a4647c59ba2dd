package textutil

import (
	"strings"
	"testing"
)

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"leading tab", "\tx", 4, "    x"},
		{"tab to next stop", "ab\tc", 4, "ab  c"},
		{"wide runes count twice", "你\tx", 4, "你  x"},
		{"disabled", "a\tb", 0, "a\tb"},
		{"no tabs", "plain", 4, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandTabs(tt.text, tt.width); got != tt.want {
				t.Fatalf("ExpandTabs(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "file.txt", 20, "file.txt"},
		{"adds ellipsis", "verylongname", 6, "veryl…"},
		{"only ellipsis", "example", 1, "…"},
		{"wide runes", "你好世界", 5, "你好…"},
		{"zero width", "anything", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(tt.text, tt.width); got != tt.want {
				t.Fatalf("TruncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := DisplayWidth("abc"); got != 3 {
		t.Fatalf("DisplayWidth(abc) = %d", got)
	}
	if got := DisplayWidth("你好"); got != 4 {
		t.Fatalf("DisplayWidth(你好) = %d", got)
	}
}

func TestSanitizeLeavesSafeInput(t *testing.T) {
	input := "safe line\twith tab"
	if got := Sanitize(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeReplacesControlSequences(t *testing.T) {
	got := Sanitize("bad\x1b[31m\npath")
	if got != "bad?[31m path" {
		t.Fatalf("expected \"bad?[31m path\", got %q", got)
	}
}

func TestSanitizeLabelsFormattingRunes(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x200B)) + "c"
	got := Sanitize(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("sanitize left formatting runes in output: %q", got)
	}
	if got != "a⟪RLO⟫b⟪ZWSP⟫c" {
		t.Fatalf("unexpected labels: %q", got)
	}
}

func TestHasFormattingRunes(t *testing.T) {
	if HasFormattingRunes("plain", "lines") {
		t.Fatal("expected plain text to have no formatting runes")
	}
	if !HasFormattingRunes("plain", "hi"+string(rune(0x2067))) {
		t.Fatal("expected formatting runes to be detected")
	}
}
