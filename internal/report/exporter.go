package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Artifact is a rendered report on disk.
type Artifact struct {
	Path        string
	Name        string
	ContentType string
}

// Exporter writes rendered documents into one directory.
type Exporter struct {
	Dir      string
	LogoPath string
	suffix   func() string
}

func NewExporter(dir, logoPath string) *Exporter {
	return &Exporter{
		Dir:      dir,
		LogoPath: logoPath,
		suffix:   func() string { return uuid.NewString()[:8] },
	}
}

// FileName builds "<hospital>_<entity>_<label>_<YYYYMMDD_HHMMSS>_<suffix>.<ext>".
// The random suffix keeps two exports in the same second apart.
func FileName(hospital, entity, label string, at time.Time, suffix string, f Format) string {
	return fmt.Sprintf("%s_%s_%s_%s_%s.%s",
		slug(hospital),
		slug(entity),
		slug(label),
		at.UTC().Format("20060102_150405"),
		suffix,
		f,
	)
}

// Write renders doc into a new file. A partially written file is removed.
func (e *Exporter) Write(doc Document, f Format) (*Artifact, error) {
	if len(doc.Table.Rows) == 0 {
		return nil, ErrEmptyReport
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	name := FileName(doc.Hospital, doc.Entity, doc.Label, doc.GeneratedAt, e.suffix(), f)
	path := filepath.Join(e.Dir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}

	renderErr := render(file, f, doc, e.LogoPath)
	closeErr := file.Close()
	if err := errors.Join(renderErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	return &Artifact{Path: path, Name: name, ContentType: f.ContentType()}, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "report"
	}
	return out
}
