package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunManifest records one import run as an append-only JSONL event stream
// under destination/imports/<session-id>/manifest.jsonl. The manifest is a
// record for the operator only; it is never read back for deduplication -
// the destination date tree stays the sole source of truth.
type RunManifest struct {
	ID   string
	Dir  string
	file *os.File
}

// manifestEvent is a single line in the manifest log.
type manifestEvent struct {
	Event    string `json:"event"`
	Ts       string `json:"ts"`
	Src      string `json:"src,omitempty"`
	Dest     string `json:"dest,omitempty"`
	Existing string `json:"existing,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`

	ErrorCategory   string `json:"error_category,omitempty"`
	ErrorSeverity   string `json:"error_severity,omitempty"`
	ErrorSuggestion string `json:"error_suggestion,omitempty"`

	// Run start/end fields
	PhotoSource string `json:"photo_source,omitempty"`
	VideoSource string `json:"video_source,omitempty"`
	TotalFiles  int    `json:"total_files,omitempty"`
	Copied      int    `json:"copied,omitempty"`
	Skipped     int    `json:"skipped,omitempty"`
	ErrorCount  int    `json:"errors,omitempty"`
	BytesCopied int64  `json:"bytes_copied,omitempty"`
}

// NewRunManifest creates the session directory and opens the manifest file.
func NewRunManifest(destination string) (*RunManifest, error) {
	sessionID := time.Now().Format("2006-01-02-150405")
	sessionDir := filepath.Join(destination, "imports", sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	manifestPath := filepath.Join(sessionDir, "manifest.jsonl")
	f, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &RunManifest{ID: sessionID, Dir: sessionDir, file: f}, nil
}

func (m *RunManifest) LogStart(photoSource, videoSource string, totalFiles int) error {
	return m.writeEvent(manifestEvent{
		Event:       "session_start",
		PhotoSource: photoSource,
		VideoSource: videoSource,
		TotalFiles:  totalFiles,
	})
}

func (m *RunManifest) LogCopied(src, dest string, size int64) error {
	return m.writeEvent(manifestEvent{Event: "copied", Src: src, Dest: dest, Size: size})
}

func (m *RunManifest) LogSkippedDuplicate(src, existing string) error {
	return m.writeEvent(manifestEvent{Event: "skipped_duplicate", Src: src, Existing: existing})
}

func (m *RunManifest) LogSkippedUnresolved(src string) error {
	return m.writeEvent(manifestEvent{Event: "skipped_unresolved", Src: src})
}

func (m *RunManifest) LogError(src string, procErr *ProcessError) error {
	return m.writeEvent(manifestEvent{
		Event:           "error",
		Src:             src,
		Error:           procErr.OriginalErr.Error(),
		ErrorCategory:   string(procErr.Category),
		ErrorSeverity:   string(procErr.Severity),
		ErrorSuggestion: procErr.Suggestion,
	})
}

func (m *RunManifest) LogEnd(stats Stats) error {
	return m.writeEvent(manifestEvent{
		Event:       "session_end",
		Copied:      stats.Copied,
		Skipped:     stats.Skipped,
		ErrorCount:  stats.Errors,
		BytesCopied: stats.BytesCopied,
	})
}

func (m *RunManifest) Close() error {
	if m == nil || m.file == nil {
		return nil
	}
	return m.file.Close()
}

// writeEvent appends one JSON line and flushes it. A nil manifest (dry run)
// discards events.
func (m *RunManifest) writeEvent(event manifestEvent) error {
	if m == nil {
		return nil
	}
	event.Ts = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := m.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}
	return m.file.Sync()
}
