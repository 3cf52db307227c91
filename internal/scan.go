package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// KindSummary aggregates one media kind in an inventory.
type KindSummary struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size_bytes"`
}

// Inventory is a read-only summary of the media on a card, taken before an
// import to see what a run would deal with.
type Inventory struct {
	FolderPath string         `json:"folder_path"`
	TotalFiles int            `json:"total_files"`
	TotalSize  int64          `json:"total_size_bytes"`
	Photos     KindSummary    `json:"photos"`
	Videos     KindSummary    `json:"videos"`
	Extensions map[string]int `json:"extensions"`

	EarliestDate string `json:"earliest_date,omitempty"`
	LatestDate   string `json:"latest_date,omitempty"`
	ScanDuration string `json:"scan_duration"`
}

// BuildInventory walks folder for media of either kind and aggregates
// counts, sizes and the capture-date span. Dates go through the same
// resolver the importer uses, so the span reflects where files would land.
func BuildInventory(folder string, cfg *Config, resolver *DateResolver) (*Inventory, error) {
	start := time.Now()

	inv := &Inventory{
		FolderPath: folder,
		Extensions: make(map[string]int),
	}

	var earliest, latest time.Time
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || cfg.IsSidecar(info.Name()) {
			return nil
		}
		kind := cfg.Classify(info.Name())
		if kind == KindIgnored {
			return nil
		}

		inv.TotalFiles++
		inv.TotalSize += info.Size()
		inv.Extensions[strings.ToLower(filepath.Ext(path))]++
		switch kind {
		case KindPhoto:
			inv.Photos.Count++
			inv.Photos.TotalSize += info.Size()
		case KindVideo:
			inv.Videos.Count++
			inv.Videos.TotalSize += info.Size()
		}

		c := Candidate{Path: path, Kind: kind, Size: info.Size(), ModTime: info.ModTime()}
		if date, err := resolver.Resolve(c); err == nil {
			if earliest.IsZero() || date.Before(earliest) {
				earliest = date
			}
			if latest.IsZero() || date.After(latest) {
				latest = date
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", folder, err)
	}

	if !earliest.IsZero() {
		inv.EarliestDate = earliest.Format("2006-01-02")
		inv.LatestDate = latest.Format("2006-01-02")
	}
	inv.ScanDuration = time.Since(start).Round(time.Millisecond).String()
	return inv, nil
}

// DisplayInventory writes the inventory as a table or as JSON.
func DisplayInventory(inv *Inventory, format string, out io.Writer) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	}

	fmt.Fprintf(out, "Inventory of %s\n\n", inv.FolderPath)
	fmt.Fprintf(out, "Photos: %6d  (%s)\n", inv.Photos.Count, humanize.IBytes(uint64(inv.Photos.TotalSize)))
	fmt.Fprintf(out, "Videos: %6d  (%s)\n", inv.Videos.Count, humanize.IBytes(uint64(inv.Videos.TotalSize)))
	fmt.Fprintf(out, "Total:  %6d  (%s)\n", inv.TotalFiles, humanize.IBytes(uint64(inv.TotalSize)))

	if inv.EarliestDate != "" {
		fmt.Fprintf(out, "\nCapture dates: %s .. %s\n", inv.EarliestDate, inv.LatestDate)
	}

	if len(inv.Extensions) > 0 {
		exts := make([]string, 0, len(inv.Extensions))
		for ext := range inv.Extensions {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		fmt.Fprintf(out, "\nBy extension:\n")
		for _, ext := range exts {
			fmt.Fprintf(out, "  %-8s %d\n", ext, inv.Extensions[ext])
		}
	}

	fmt.Fprintf(out, "\nScanned in %s\n", inv.ScanDuration)
	return nil
}
