package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesEqual(t *testing.T) {
	tempDir := t.TempDir()

	write := func(name string, data []byte) string {
		t.Helper()
		path := filepath.Join(tempDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	a := write("a.arw", []byte("identical payload"))
	b := write("b.arw", []byte("identical payload"))
	c := write("c.arw", []byte("different payload"))
	d := write("d.arw", []byte("short"))

	testCases := []struct {
		name     string
		pathA    string
		pathB    string
		expected bool
	}{
		{"identical content", a, b, true},
		{"same size different content", a, c, false},
		{"different size", a, d, false},
		{"file compared with itself", a, a, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			equal, err := FilesEqual(tc.pathA, tc.pathB)
			if err != nil {
				t.Fatalf("FilesEqual failed: %v", err)
			}
			if equal != tc.expected {
				t.Errorf("FilesEqual = %v, want %v", equal, tc.expected)
			}
		})
	}
}

func TestFilesEqual_LargeFileChunking(t *testing.T) {
	tempDir := t.TempDir()

	// Larger than one hash chunk so the streaming path is exercised.
	payload := bytes.Repeat([]byte("0123456789abcdef"), (hashChunkSize/16)+100)

	a := filepath.Join(tempDir, "a.mp4")
	b := filepath.Join(tempDir, "b.mp4")
	if err := os.WriteFile(a, payload, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, payload, 0644); err != nil {
		t.Fatal(err)
	}

	equal, err := FilesEqual(a, b)
	if err != nil {
		t.Fatalf("FilesEqual failed: %v", err)
	}
	if !equal {
		t.Error("Expected large identical files to compare equal")
	}
}

func TestFilesEqual_MissingFile(t *testing.T) {
	tempDir := t.TempDir()
	a := filepath.Join(tempDir, "a.jpg")
	if err := os.WriteFile(a, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	equal, err := FilesEqual(a, filepath.Join(tempDir, "gone.jpg"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if equal {
		t.Error("A failed comparison must never report equal")
	}
}
