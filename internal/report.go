package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Reporter writes per-file outcomes and the final summary to the console.
type Reporter struct {
	Verbose bool
	out     io.Writer
}

func NewReporter(verbose bool) *Reporter {
	return &Reporter{Verbose: verbose, out: os.Stdout}
}

func (r *Reporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Found announces the scan result before processing starts.
func (r *Reporter) Found(photoCount, videoCount int) {
	r.Infof("Found %d photo(s) and %d video(s) to process", photoCount, videoCount)
}

func (r *Reporter) DryRunNotice() {
	color.New(color.FgCyan).Fprintln(r.out, "DRY RUN MODE - No files will be copied")
}

func (r *Reporter) Copied(c Candidate, dest string) {
	if !r.Verbose {
		return
	}
	color.New(color.FgGreen).Fprintf(r.out, "Copied %s -> %s (%s)\n",
		filepath.Base(c.Path), dest, humanize.IBytes(uint64(c.Size)))
}

func (r *Reporter) WouldCopy(c Candidate, dest string) {
	color.New(color.FgCyan).Fprintf(r.out, "[DRY RUN] Would copy: %s -> %s\n",
		filepath.Base(c.Path), dest)
}

func (r *Reporter) SkippedDuplicate(c Candidate, existing string) {
	if !r.Verbose {
		return
	}
	color.New(color.FgYellow).Fprintf(r.out, "Skipping duplicate: %s (already at %s)\n",
		filepath.Base(c.Path), existing)
}

func (r *Reporter) SkippedUnresolved(c Candidate) {
	color.New(color.FgYellow).Fprintf(r.out, "Skipping %s - could not determine date\n",
		filepath.Base(c.Path))
}

func (r *Reporter) Error(c Candidate, procErr *ProcessError) {
	color.New(color.FgRed).Fprintf(r.out, "ERROR: %s - %v\n",
		filepath.Base(c.Path), procErr.OriginalErr)
	if r.Verbose && procErr.Suggestion != "" {
		fmt.Fprintf(r.out, "  hint: %s\n", procErr.Suggestion)
	}
}

// Summary prints the final counters. Bytes are scaled to MB, or GB once the
// total reaches a gigabyte.
func (r *Reporter) Summary(stats Stats, dryRun bool) {
	line := "============================================================"
	fmt.Fprintln(r.out, line)
	color.New(color.Bold).Fprintln(r.out, "IMPORT SUMMARY")
	fmt.Fprintln(r.out, line)

	copied := color.New(color.FgGreen)
	if stats.Copied == 0 {
		copied = color.New()
	}
	copied.Fprintf(r.out, "Files copied: %d\n", stats.Copied)

	skipped := color.New(color.FgYellow)
	if stats.Skipped == 0 {
		skipped = color.New()
	}
	skipped.Fprintf(r.out, "Files skipped: %d\n", stats.Skipped)

	errs := color.New(color.FgGreen)
	if stats.Errors > 0 {
		errs = color.New(color.FgRed)
	}
	errs.Fprintf(r.out, "Errors: %d\n", stats.Errors)

	if !dryRun && stats.BytesCopied > 0 {
		color.New(color.FgCyan).Fprintf(r.out, "Total size copied: %s\n", FormatSize(stats.BytesCopied))
	}
	fmt.Fprintln(r.out, line)
}

// FormatSize renders a byte count in MB, switching to GB at one gigabyte.
func FormatSize(bytes int64) string {
	mb := float64(bytes) / (1024 * 1024)
	if gb := mb / 1024; gb >= 1 {
		return fmt.Sprintf("%.2f GB", gb)
	}
	return fmt.Sprintf("%.2f MB", mb)
}
