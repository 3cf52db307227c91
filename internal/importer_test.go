package internal

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestImporter(t *testing.T, photoRoot, videoRoot, dest string, dryRun bool) *Importer {
	t.Helper()
	resolver := newTestResolver(t)
	reporter := &Reporter{out: io.Discard}
	return NewImporter(photoRoot, videoRoot, dest, dryRun, testConfig(), resolver, reporter, nil)
}

// setupCard builds a photo root with an EXIF-dated raw file and a video root
// with an mtime-dated clip.
func setupCard(t *testing.T, dir string) (photoRoot, videoRoot string) {
	t.Helper()
	photoRoot = filepath.Join(dir, "DCIM")
	videoRoot = filepath.Join(dir, "CLIP")
	if err := os.MkdirAll(photoRoot, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(videoRoot, 0755); err != nil {
		t.Fatal(err)
	}

	// A.ARW carries EXIF 2025-11-28; its mtime is deliberately elsewhere.
	photo := filepath.Join(photoRoot, "A.ARW")
	writeEXIFTIFF(t, photo, map[uint16]string{tagDateTimeOriginal: "2025:11:28 14:30:45"})
	wrong := time.Date(2019, 1, 1, 0, 0, 0, 0, time.Local)
	if err := os.Chtimes(photo, wrong, wrong); err != nil {
		t.Fatal(err)
	}

	// B.MP4 is dated by mtime only.
	video := filepath.Join(videoRoot, "B.MP4")
	if err := os.WriteFile(video, []byte("video payload"), 0644); err != nil {
		t.Fatal(err)
	}
	vtime := time.Date(2025, 11, 29, 8, 0, 0, 0, time.Local)
	if err := os.Chtimes(video, vtime, vtime); err != nil {
		t.Fatal(err)
	}
	return photoRoot, videoRoot
}

func TestRun_CopiesIntoDateTree(t *testing.T) {
	tempDir := t.TempDir()
	photoRoot, videoRoot := setupCard(t, tempDir)
	dest := filepath.Join(tempDir, "library")

	importer := newTestImporter(t, photoRoot, videoRoot, dest, false)
	if err := importer.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []string{
		filepath.Join(dest, "2025", "11", "28", "pictures", "A.ARW"),
		filepath.Join(dest, "2025", "11", "29", "videos", "B.MP4"),
	}
	for _, path := range expected {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected file missing: %s", path)
		}
	}

	stats := importer.Stats()
	if stats.Copied != 2 || stats.Skipped != 0 || stats.Errors != 0 {
		t.Errorf("Stats = %+v, want copied=2 skipped=0 errors=0", stats)
	}
	if stats.BytesCopied == 0 {
		t.Error("Expected BytesCopied > 0")
	}

	// Each run leaves a manifest under dest/imports.
	entries, err := os.ReadDir(filepath.Join(dest, "imports"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected 1 import session, got %v (err %v)", entries, err)
	}
	manifest := filepath.Join(dest, "imports", entries[0].Name(), "manifest.jsonl")
	if _, err := os.Stat(manifest); err != nil {
		t.Errorf("Manifest not written: %v", err)
	}
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	tempDir := t.TempDir()
	photoRoot, videoRoot := setupCard(t, tempDir)
	dest := filepath.Join(tempDir, "library")

	first := newTestImporter(t, photoRoot, videoRoot, dest, false)
	if err := first.Run(); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	second := newTestImporter(t, photoRoot, videoRoot, dest, false)
	if err := second.Run(); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	stats := second.Stats()
	if stats.Copied != 0 {
		t.Errorf("Second run copied %d files, want 0", stats.Copied)
	}
	if stats.Skipped != first.Stats().Copied {
		t.Errorf("Second run skipped %d, want %d", stats.Skipped, first.Stats().Copied)
	}
	if stats.Errors != 0 {
		t.Errorf("Second run errors = %d, want 0", stats.Errors)
	}
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	tempDir := t.TempDir()
	photoRoot, videoRoot := setupCard(t, tempDir)
	dest := filepath.Join(tempDir, "library")

	importer := newTestImporter(t, photoRoot, videoRoot, dest, true)
	if err := importer.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("Dry run must not create the destination tree")
	}

	stats := importer.Stats()
	if stats.Copied != 2 {
		t.Errorf("Dry run planned %d copies, want 2", stats.Copied)
	}
	if stats.BytesCopied != 0 {
		t.Errorf("Dry run counted %d bytes, want 0", stats.BytesCopied)
	}
}

func TestRun_MissingSourceFailsBeforeProcessing(t *testing.T) {
	tempDir := t.TempDir()
	importer := newTestImporter(t, filepath.Join(tempDir, "nope"), "", filepath.Join(tempDir, "library"), false)

	err := importer.Run()
	if err == nil {
		t.Fatal("Expected an error for a missing source")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRun_NoMediaIsAFailedRun(t *testing.T) {
	tempDir := t.TempDir()
	photoRoot := filepath.Join(tempDir, "DCIM")
	if err := os.MkdirAll(photoRoot, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(photoRoot, "notes.txt"), []byte("n"), 0644); err != nil {
		t.Fatal(err)
	}

	importer := newTestImporter(t, photoRoot, "", filepath.Join(tempDir, "library"), false)
	err := importer.Run()
	if err == nil {
		t.Fatal("Expected an error for an empty candidate set")
	}
	if !strings.Contains(err.Error(), "no media found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestProcessFile_UnresolvedDateCountsAsSkipped(t *testing.T) {
	tempDir := t.TempDir()
	importer := newTestImporter(t, tempDir, "", filepath.Join(tempDir, "library"), false)

	// The candidate vanished between scan and processing: date resolution
	// fails on both metadata and mtime.
	importer.processFile(Candidate{
		Path: filepath.Join(tempDir, "gone.ARW"),
		Kind: KindPhoto,
	}, nil)

	stats := importer.Stats()
	if stats.Skipped != 1 || stats.Copied != 0 || stats.Errors != 0 {
		t.Errorf("Stats = %+v, want skipped=1 copied=0 errors=0", stats)
	}
}

func TestProcessFile_ManifestWriteFailureIsLoggedNotFatal(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "library")

	logPath := filepath.Join(tempDir, "run.log")
	logger, err := NewLogger(logPath)
	if err != nil {
		t.Fatal(err)
	}

	reporter := &Reporter{out: io.Discard}
	importer := NewImporter(tempDir, "", dest, false, testConfig(), newTestResolver(t), reporter, logger)

	manifest, err := NewRunManifest(dest)
	if err != nil {
		t.Fatal(err)
	}
	// The manifest stops being writable mid-run.
	if err := manifest.Close(); err != nil {
		t.Fatal(err)
	}

	c := writeCandidate(t, tempDir, "C0001.MP4", []byte("payload"))
	importer.processFile(c, manifest)

	stats := importer.Stats()
	if stats.Copied != 1 || stats.Errors != 0 {
		t.Errorf("Stats = %+v, want copied=1 errors=0", stats)
	}

	logger.Close()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "manifest write failed") {
		t.Errorf("Run log missing manifest warning:\n%s", data)
	}
}

func TestProcessFile_CopyErrorCountsAsError(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "library")
	importer := newTestImporter(t, tempDir, "", dest, false)

	// Block the year directory with a regular file.
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}
	c := writeCandidate(t, tempDir, "C0001.MP4", []byte("payload"))
	year := c.ModTime.Format("2006")
	if err := os.WriteFile(filepath.Join(dest, year), []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	importer.processFile(c, nil)

	stats := importer.Stats()
	if stats.Errors != 1 || stats.Copied != 0 {
		t.Errorf("Stats = %+v, want errors=1 copied=0", stats)
	}
}
