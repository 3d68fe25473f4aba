// Package driver turns an event index into calendar documents on disk.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wallcal/internal/compose"
	"wallcal/internal/index"
	appLog "wallcal/internal/log"
	"wallcal/internal/render"
)

// Options selects what Run produces.
type Options struct {
	Year int
	// Modes to render, in order. Empty means every supported mode.
	Modes  []compose.Mode
	OutDir string
	Style  compose.Style
	// WrapWidths overrides the wrap width of a mode's profile.
	WrapWidths map[compose.Mode]int
	// Created is stamped into each document. Zero means now.
	Created time.Time
}

// OutputName is the file name of the document for mode m and year.
func OutputName(m compose.Mode, year int) string {
	return fmt.Sprintf("calendar_%s_%d.pdf", m, year)
}

// Run composes and renders one document per mode and returns the written
// paths. Modes are validated before any document is written.
func Run(ctx context.Context, opt Options, idx *index.Index) ([]string, error) {
	if opt.Year < 1 || opt.Year > 9999 {
		return nil, fmt.Errorf("year %d out of range 1..9999", opt.Year)
	}
	modes := opt.Modes
	if len(modes) == 0 {
		modes = compose.Modes
	}

	profiles := make([]compose.Profile, 0, len(modes))
	for _, m := range modes {
		p, err := compose.ProfileFor(m)
		if err != nil {
			return nil, err
		}
		if w, ok := opt.WrapWidths[m]; ok && w > 0 {
			p.WrapWidth = w
		}
		profiles = append(profiles, p)
	}

	outDir := opt.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		start := time.Now()

		pages, err := compose.Compose(p, opt.Year, idx, opt.Style)
		if err != nil {
			return written, err
		}
		var buf bytes.Buffer
		err = render.Write(&buf, pages, render.Options{
			FontFamily: opt.Style.FontFamily,
			Title:      fmt.Sprintf("Calendar %d", opt.Year),
			Created:    opt.Created,
		})
		if err != nil {
			return written, fmt.Errorf("render %s: %w", p.Mode, err)
		}

		path := filepath.Join(outDir, OutputName(p.Mode, opt.Year))
		if err := writeFileAtomic(path, buf.Bytes()); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		appLog.Info("calendar written",
			"path", path,
			"mode", string(p.Mode),
			"pages", len(pages),
			"bytes", buf.Len(),
			"elapsed", time.Since(start).Round(time.Millisecond).String(),
		)
		written = append(written, path)
	}
	return written, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	if path == "" {
		return errors.New("output path is empty")
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wallcal-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
