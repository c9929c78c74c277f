package digest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReader_KnownValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty",
			content: "",
			want:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:    "abc",
			content: "abc",
			want:    "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reader(strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Reader failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFile_SameContentDifferentPaths(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("portal"), 20000) // larger than one buffer

	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "sub", "b.pdf")
	if err := os.MkdirAll(filepath.Dir(b), 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, content, 0644); err != nil {
			t.Fatal(err)
		}
	}

	first, err := File(a)
	if err != nil {
		t.Fatalf("File(a) failed: %v", err)
	}
	second, err := File(b)
	if err != nil {
		t.Fatalf("File(b) failed: %v", err)
	}
	again, err := File(a)
	if err != nil {
		t.Fatalf("File(a) again failed: %v", err)
	}

	if first != second || first != again {
		t.Errorf("digests differ: %s %s %s", first, second, again)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
