package internal

import (
	"fmt"
	"os"
)

// Stats are the counters for one import run. They live only for the run:
// printed in the summary, then discarded.
type Stats struct {
	Copied      int
	Skipped     int
	Errors      int
	BytesCopied int64
}

// Importer drives a full run: enumerate candidates, resolve a date per file,
// place each one, and report. Files are processed strictly one at a time in
// path order, because duplicate and collision decisions read destination
// state immediately before acting.
type Importer struct {
	PhotoSource string
	VideoSource string
	Destination string
	DryRun      bool

	cfg      *Config
	resolver *DateResolver
	engine   *PlacementEngine
	reporter *Reporter
	logger   *Logger

	stats Stats
}

func NewImporter(photoSource, videoSource, destination string, dryRun bool,
	cfg *Config, resolver *DateResolver, reporter *Reporter, logger *Logger) *Importer {
	return &Importer{
		PhotoSource: photoSource,
		VideoSource: videoSource,
		Destination: destination,
		DryRun:      dryRun,
		cfg:         cfg,
		resolver:    resolver,
		engine:      NewPlacementEngine(destination, logger),
		reporter:    reporter,
		logger:      logger,
	}
}

// Stats returns the counters accumulated so far.
func (im *Importer) Stats() Stats {
	return im.stats
}

// Run executes the import. The only fatal precondition is a missing photo
// source; an empty candidate set is a failed run with a clear message, and
// per-file failures never abort processing.
func (im *Importer) Run() error {
	im.reporter.Infof("Photo source: %s", im.PhotoSource)
	if im.VideoSource != "" {
		im.reporter.Infof("Video source: %s", im.VideoSource)
	}
	im.reporter.Infof("Destination: %s", im.Destination)
	if im.DryRun {
		im.reporter.DryRunNotice()
	}

	if info, err := os.Stat(im.PhotoSource); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory does not exist: %s", im.PhotoSource)
	}

	files, err := ScanMediaFiles(im.PhotoSource, im.VideoSource, im.cfg)
	if err != nil {
		return fmt.Errorf("scanning sources: %w", err)
	}

	if len(files) == 0 {
		im.reporter.Infof("No photos or videos found!")
		im.reporter.Summary(im.stats, im.DryRun)
		return fmt.Errorf("no media found in %s", im.PhotoSource)
	}

	photoCount := 0
	for _, f := range files {
		if f.Kind == KindPhoto {
			photoCount++
		}
	}
	im.reporter.Found(photoCount, len(files)-photoCount)

	var manifest *RunManifest
	if !im.DryRun {
		manifest, err = NewRunManifest(im.Destination)
		if err != nil {
			im.logger.Log("WARN manifest disabled: %v", err)
		} else {
			defer manifest.Close()
			im.noteManifestErr(manifest.LogStart(im.PhotoSource, im.VideoSource, len(files)))
		}
	}

	for _, c := range files {
		im.processFile(c, manifest)
	}

	if manifest != nil {
		im.noteManifestErr(manifest.LogEnd(im.stats))
	}
	im.reporter.Summary(im.stats, im.DryRun)
	return nil
}

// noteManifestErr records a failed manifest write in the run log. The
// manifest is an operator record, so a write failure never affects the run
// itself.
func (im *Importer) noteManifestErr(err error) {
	if err != nil {
		im.logger.Log("WARN manifest write failed: %v", err)
	}
}

// processFile handles one candidate and updates the run counters according
// to its outcome.
func (im *Importer) processFile(c Candidate, manifest *RunManifest) {
	date, err := im.resolver.Resolve(c)
	if err != nil {
		im.stats.Skipped++
		im.reporter.SkippedUnresolved(c)
		im.logger.Log("WARN %s", NewProcessError(c.Path, ErrorCategoryUnresolvedDate, err))
		im.noteManifestErr(manifest.LogSkippedUnresolved(c.Path))
		return
	}

	decision := im.engine.Plan(c, date)
	switch decision.Action {
	case ActionSkipDuplicate:
		im.stats.Skipped++
		im.reporter.SkippedDuplicate(c, decision.DestPath)
		im.noteManifestErr(manifest.LogSkippedDuplicate(c.Path, decision.DestPath))

	case ActionSkipError:
		im.stats.Errors++
		im.reporter.Error(c, decision.Err)
		im.logger.Log("ERROR %s", decision.Err)
		im.noteManifestErr(manifest.LogError(c.Path, decision.Err))

	case ActionCopy:
		if im.DryRun {
			im.stats.Copied++
			im.reporter.WouldCopy(c, decision.DestPath)
			return
		}
		if procErr := im.engine.Execute(c, decision); procErr != nil {
			im.stats.Errors++
			im.reporter.Error(c, procErr)
			im.logger.Log("ERROR %s", procErr)
			im.noteManifestErr(manifest.LogError(c.Path, procErr))
			return
		}
		im.stats.Copied++
		im.stats.BytesCopied += c.Size
		im.reporter.Copied(c, decision.DestPath)
		im.noteManifestErr(manifest.LogCopied(c.Path, decision.DestPath, c.Size))
	}
}
