package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"proposalqa/internal/contextutil"
	"proposalqa/internal/knowledge"
)

// loadable file extensions; everything else in the directory is skipped.
var loadableExts = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// LoadDir walks a directory tree and extracts Q&A entries from every
// text and markdown file in it. Files that yield no pairs are skipped
// silently; unreadable files abort the load.
func (p *Processor) LoadDir(ctx context.Context, root string) ([]knowledge.QAEntry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var entries []knowledge.QAEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !loadableExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		extracted := p.Extract(filepath.Base(path), content)
		if len(extracted) > 0 {
			logger.InfoContext(ctx, "file processed", "path", path, "entries", len(extracted))
			entries = append(entries, extracted...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
