package internal

import (
	"fmt"
	"strings"
)

// ErrorCategory names the failure kinds a single file can hit during a run.
type ErrorCategory string

const (
	ErrorCategoryUnresolvedDate ErrorCategory = "unresolved_date" // Metadata and mtime both unreadable
	ErrorCategoryCompare        ErrorCategory = "compare_error"   // Hashing for duplicate detection failed
	ErrorCategoryCopy           ErrorCategory = "copy_error"      // Directory creation or byte copy failed
	ErrorCategoryUnknown        ErrorCategory = "unknown_error"
)

// ErrorSeverity indicates how critical the error is.
type ErrorSeverity string

const (
	ErrorSeverityError   ErrorSeverity = "error"   // File counted against the error total
	ErrorSeverityWarning ErrorSeverity = "warning" // File skipped but run otherwise healthy
)

// ProcessError is a categorized per-file failure. Per-file errors never abort
// the run; they are logged, counted and carried into the manifest.
type ProcessError struct {
	FilePath    string
	Category    ErrorCategory
	Severity    ErrorSeverity
	OriginalErr error
	Suggestion  string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s/%s] %s: %v", e.Severity, e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// NewProcessError builds a categorized error for the given failure kind.
func NewProcessError(filePath string, category ErrorCategory, err error) *ProcessError {
	procErr := &ProcessError{
		FilePath:    filePath,
		Category:    category,
		OriginalErr: err,
	}

	switch category {
	case ErrorCategoryUnresolvedDate:
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "File has no readable metadata or timestamp - check source media health"
	case ErrorCategoryCompare:
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Duplicate check failed - file will be copied under a suffixed name instead of dropped"
	case ErrorCategoryCopy:
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = suggestionForCopyError(err)
	default:
		procErr.Category = ErrorCategoryUnknown
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Unexpected error - check the run log for details"
	}

	return procErr
}

// suggestionForCopyError maps common copy failures to an operator hint.
func suggestionForCopyError(err error) string {
	if err == nil {
		return ""
	}
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "no space left"):
		return "Free up disk space on the destination drive and retry the import"
	case strings.Contains(errStr, "permission denied"):
		return "Check permissions on the destination directory"
	case strings.Contains(errStr, "read-only file system"):
		return "Destination filesystem is read-only - check mount options"
	case strings.Contains(errStr, "no such file"):
		return "Source file disappeared during import - check if the card was disconnected"
	case strings.Contains(errStr, "input/output error"):
		return "I/O error - check card and destination disk health"
	default:
		return "Copy failed - a partially written destination file may remain"
	}
}
