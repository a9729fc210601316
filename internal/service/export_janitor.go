package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ExportJanitor deletes rendered reports once they are older than the retention period.
type ExportJanitor struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewExportJanitor(dir string, retention, interval time.Duration, log zerolog.Logger) *ExportJanitor {
	return &ExportJanitor{
		dir:       dir,
		retention: retention,
		interval:  interval,
		log:       log.With().Str("component", "export_janitor").Logger(),
		now:       time.Now,
	}
}

// Start sweeps the export directory every interval until ctx is cancelled
func (j *ExportJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.log.Info().Str("dir", j.dir).Dur("retention", j.retention).Dur("interval", j.interval).Msg("export janitor started")

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("export janitor stopped")
			return
		case <-ticker.C:
			if _, err := j.Sweep(); err != nil {
				j.log.Error().Err(err).Msg("export sweep failed")
			}
		}
	}
}

// Sweep removes expired export files and returns how many were deleted.
// Subdirectories are left alone.
func (j *ExportJanitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := j.now().Add(-j.retention)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			j.log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to stat export")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			j.log.Warn().Err(err).Str("file", path).Msg("failed to delete expired export")
			continue
		}
		removed++
	}

	if removed > 0 {
		j.log.Debug().Int("removed", removed).Msg("expired exports deleted")
	}
	return removed, nil
}
