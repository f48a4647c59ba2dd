package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsTextDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsText(content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextRejectsNULBytes(t *testing.T) {
	if IsText([]byte("\x00\x01binary")) {
		t.Fatalf("expected NUL-bearing content to be treated as binary")
	}
}

func TestNormalizeTextUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	got := NormalizeText(content)
	want := "A\r\n"
	if got != want {
		t.Fatalf("NormalizeText returned %q, want %q", got, want)
	}
}

func TestNormalizeTextStripsUTF8BOM(t *testing.T) {
	got := NormalizeText([]byte("\xEF\xBB\xBF{\"a\":1}"))
	if got != `{"a":1}` {
		t.Fatalf("NormalizeText returned %q", got)
	}
}

func TestReadHeadReportsTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	head, truncated, err := ReadHead(path, 4)
	if err != nil {
		t.Fatalf("ReadHead: %v", err)
	}
	if string(head) != "0123" || !truncated {
		t.Fatalf("got %q truncated=%v", head, truncated)
	}

	head, truncated, err = ReadHead(path, 10)
	if err != nil {
		t.Fatalf("ReadHead: %v", err)
	}
	if string(head) != "0123456789" || truncated {
		t.Fatalf("exact-size read: got %q truncated=%v", head, truncated)
	}
}

func TestReadHeadMissingFile(t *testing.T) {
	if _, _, err := ReadHead(filepath.Join(t.TempDir(), "missing"), 10); err == nil {
		t.Fatal("expected error for missing file")
	}
}
