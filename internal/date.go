package internal

import (
	"errors"
	"fmt"
	"os"
	"time"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the fixed EXIF timestamp format ("2025:11:28 14:30:45").
const exifTimeLayout = "2006:01:02 15:04:05"

// ErrUnresolvedDate is returned when neither metadata nor the filesystem
// timestamp could produce a capture date.
var ErrUnresolvedDate = errors.New("could not determine capture date")

// exifTagPriority lists the metadata tags tried in order of preference.
var exifTagPriority = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// exiftoolTagPriority is the equivalent priority list for the exiftool backend.
var exiftoolTagPriority = []string{
	"DateTimeOriginal",
	"CreateDate",
	"ModifyDate",
}

// dateStrategy attempts to derive a capture time for a file. An error means
// "continue with the next strategy", not a failed run.
type dateStrategy func(path string) (time.Time, error)

// DateResolver derives a single capture timestamp per candidate. Photos walk
// an ordered list of metadata strategies before falling back to the file
// modification time; videos use the modification time directly, since the
// containers this class of camera writes do not reliably carry capture tags.
type DateResolver struct {
	photoStrategies []dateStrategy
	et              *exiftool.Exiftool
}

// NewDateResolver builds a resolver. When useExifTool is set, an exiftool
// process is started and consulted before the built-in EXIF decoder; if
// exiftool cannot be started the resolver still works and the error is
// returned so the caller can warn.
func NewDateResolver(useExifTool bool) (*DateResolver, error) {
	r := &DateResolver{}

	var etErr error
	if useExifTool {
		et, err := exiftool.NewExiftool()
		if err != nil {
			etErr = fmt.Errorf("exiftool unavailable, using built-in EXIF decoder: %w", err)
		} else {
			r.et = et
			r.photoStrategies = append(r.photoStrategies, r.exiftoolDate)
		}
	}
	r.photoStrategies = append(r.photoStrategies, exifDate)

	return r, etErr
}

// Close releases the exiftool process, if one was started.
func (r *DateResolver) Close() error {
	if r.et != nil {
		return r.et.Close()
	}
	return nil
}

// Resolve returns the capture time for a candidate, or ErrUnresolvedDate when
// even the filesystem timestamp cannot be read.
func (r *DateResolver) Resolve(c Candidate) (time.Time, error) {
	if c.Kind == KindPhoto {
		for _, strategy := range r.photoStrategies {
			if t, err := strategy(c.Path); err == nil {
				return t, nil
			}
		}
	}

	// The file is stat'ed here rather than trusting the scan-time value so a
	// file that became unreadable mid-run resolves to Unresolved, not to a
	// stale date.
	t, err := fileModTime(c.Path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnresolvedDate, err)
	}
	return t, nil
}

// exifDate extracts the best available EXIF timestamp using the built-in
// decoder, trying tags in priority order and skipping unparseable values.
func exifDate(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	for _, name := range exifTagPriority {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		dateStr, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, err := time.Parse(exifTimeLayout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no usable EXIF date tag in %s", path)
}

// exiftoolDate extracts a timestamp via the external exiftool binary.
func (r *DateResolver) exiftoolDate(path string) (time.Time, error) {
	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return time.Time{}, fmt.Errorf("exiftool returned no metadata for %s", path)
	}
	meta := metas[0]
	if meta.Err != nil {
		return time.Time{}, meta.Err
	}

	for _, name := range exiftoolTagPriority {
		dateStr, err := meta.GetString(name)
		if err != nil {
			continue
		}
		if t, err := time.Parse(exifTimeLayout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no usable exiftool date tag in %s", path)
}

// fileModTime is the final fallback: the filesystem modification time.
func fileModTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
