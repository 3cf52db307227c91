package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind classifies a filesystem entry by what the importer should do with it.
type Kind int

const (
	KindIgnored Kind = iota
	KindPhoto
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	default:
		return "ignored"
	}
}

// Subfolder returns the destination leaf directory for this kind.
func (k Kind) Subfolder() string {
	if k == KindVideo {
		return "videos"
	}
	return "pictures"
}

// Candidate is a media file discovered during enumeration.
type Candidate struct {
	Path    string
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// Classify maps a filename to its media kind by extension, case-insensitive.
// Unknown extensions are ignored.
func (c *Config) Classify(name string) Kind {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.PhotoExt {
		if ext == e {
			return KindPhoto
		}
	}
	for _, e := range c.VideoExt {
		if ext == e {
			return KindVideo
		}
	}
	return KindIgnored
}

// IsSidecar reports whether the file is a known non-media sidecar
// (AVCHD metadata files like .XML/.BUP/.IFO).
func (c *Config) IsSidecar(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.SidecarExt {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanMediaFiles scans photoRoot for photos and, if non-empty, videoRoot for
// videos. The combined list is sorted by full path so repeated runs process
// files in the same order regardless of how the filesystem enumerates them.
func ScanMediaFiles(photoRoot, videoRoot string, cfg *Config) ([]Candidate, error) {
	var files []Candidate

	err := scanKind(photoRoot, KindPhoto, cfg, &files)
	if err != nil {
		return nil, fmt.Errorf("error scanning photo directory: %w", err)
	}

	if videoRoot != "" {
		if _, err := os.Stat(videoRoot); err == nil {
			if err := scanKind(videoRoot, KindVideo, cfg, &files); err != nil {
				return nil, fmt.Errorf("error scanning video directory: %w", err)
			}
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// scanKind walks root and appends files whose classification matches want.
func scanKind(root string, want Kind, cfg *Config, out *[]Candidate) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are left out of the candidate list rather
			// than aborting the scan.
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if cfg.IsSidecar(info.Name()) {
			return nil
		}
		if cfg.Classify(info.Name()) != want {
			return nil
		}
		*out = append(*out, Candidate{
			Path:    path,
			Kind:    want,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
}
