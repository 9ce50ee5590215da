package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DirLister lists documents directly under a directory. Subdirectories are
// not descended into.
type DirLister struct {
	SkipHidden bool
	logger     *slog.Logger
}

func NewDirLister(skipHidden bool, logger *slog.Logger) *DirLister {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirLister{SkipHidden: skipHidden, logger: logger}
}

// ListDirectory returns matching files sorted by name, which is the order
// the report and the rename stage follow.
func (l *DirLister) ListDirectory(ctx context.Context, root string) ([]FileEntry, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, errors.New("root_path is required")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, stats, fmt.Errorf("read dir: %w", err)
	}

	var out []FileEntry
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return out, stats, err
		}
		stats.Scanned++
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if l.SkipHidden && IsHidden(name) {
			stats.Skipped++
			continue
		}
		if !AllowedExt(filepath.Ext(name)) {
			continue
		}
		stats.Matched++
		out = append(out, FileEntry{Name: name, Path: filepath.Join(root, name)})
	}

	l.logger.Debug("directory listed",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
	)
	return out, stats, nil
}
