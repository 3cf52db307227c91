package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Action is the outcome kind of a placement decision.
type Action int

const (
	ActionCopy Action = iota
	ActionSkipDuplicate
	ActionSkipError
)

// Decision is the placement outcome for a single candidate. DestPath is the
// copy target for ActionCopy and the existing file for ActionSkipDuplicate;
// Err is set for ActionSkipError.
type Decision struct {
	Action   Action
	DestPath string
	Err      *ProcessError
}

// PlacementEngine computes destination paths and duplicate/collision
// decisions against the live destination tree. The tree itself is the only
// record of what has already been imported, so decisions are always made
// fresh from filesystem state.
type PlacementEngine struct {
	Destination string
	logger      *Logger
}

func NewPlacementEngine(destination string, logger *Logger) *PlacementEngine {
	return &PlacementEngine{Destination: destination, logger: logger}
}

// TargetDir returns destination/YYYY/MM/DD/{pictures,videos} for a candidate.
func (p *PlacementEngine) TargetDir(kind Kind, date time.Time) string {
	return filepath.Join(p.Destination,
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", date.Month()),
		fmt.Sprintf("%02d", date.Day()),
		kind.Subfolder())
}

// Plan decides what should happen to a candidate without mutating anything.
func (p *PlacementEngine) Plan(c Candidate, date time.Time) Decision {
	target := filepath.Join(p.TargetDir(c.Kind, date), filepath.Base(c.Path))

	_, err := os.Stat(target)
	if errors.Is(err, os.ErrNotExist) {
		// First-seen: nothing at the target path.
		return Decision{Action: ActionCopy, DestPath: target}
	}
	if err != nil {
		return Decision{Action: ActionSkipError, Err: NewProcessError(c.Path, ErrorCategoryCopy,
			fmt.Errorf("failed to stat %s: %w", target, err))}
	}

	equal, cmpErr := FilesEqual(c.Path, target)
	if cmpErr != nil {
		// Conservative: an unverifiable duplicate is copied under a suffixed
		// name rather than silently dropped.
		procErr := NewProcessError(c.Path, ErrorCategoryCompare, cmpErr)
		p.logger.Log("WARN %s", procErr)
		equal = false
	}
	if equal {
		return Decision{Action: ActionSkipDuplicate, DestPath: target}
	}

	// Name collision with different content: deterministic ascending suffix.
	return Decision{Action: ActionCopy, DestPath: nextFreePath(target)}
}

// nextFreePath appends _1, _2, ... to the stem until an unused path is found.
func nextFreePath(target string) string {
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	for i := 1; ; i++ {
		try := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(try); errors.Is(err, os.ErrNotExist) {
			return try
		}
	}
}

// Execute performs the copy for an ActionCopy decision: directories are
// created on demand and the source modification time is preserved on the
// destination file. A failed copy may leave a partial destination file
// behind; it is reported, not cleaned up.
func (p *PlacementEngine) Execute(c Candidate, d Decision) *ProcessError {
	if err := os.MkdirAll(filepath.Dir(d.DestPath), 0755); err != nil {
		return NewProcessError(c.Path, ErrorCategoryCopy,
			fmt.Errorf("failed to create directory %s: %w", filepath.Dir(d.DestPath), err))
	}
	if err := copyFile(c.Path, d.DestPath); err != nil {
		return NewProcessError(c.Path, ErrorCategoryCopy,
			fmt.Errorf("failed to copy to %s: %w", d.DestPath, err))
	}
	if err := os.Chtimes(d.DestPath, c.ModTime, c.ModTime); err != nil {
		p.logger.Log("WARN could not preserve mtime on %s: %v", d.DestPath, err)
	}
	return nil
}

// copyFile copies src to dest and syncs the result to disk.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
