// Package filesystem reads pattern documents from a local directory
// tree. It is the pipeline's only input surface.
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
	"github.com/custodia-labs/antipat/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.SourceReader = (*Connector)(nil)

// contentExtensions are the file suffixes treated as catalog documents.
var contentExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// Connector reads content documents from a directory tree.
type Connector struct{}

// New creates a filesystem connector.
func New() *Connector {
	return &Connector{}
}

// ReadAll walks dir and loads every content document. Results are
// ordered lexically by path so duplicate detection and catalog ordering
// downstream are reproducible across runs. Unreadable files are skipped
// with a warning; only a missing root directory is an error.
func (c *Connector) ReadAll(ctx context.Context, dir string) ([]domain.RawDocument, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories (.git and friends) are not content.
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if contentExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)

	docs := make([]domain.RawDocument, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", path, err)
			continue
		}
		docs = append(docs, domain.RawDocument{Path: path, Content: content})
	}

	logger.Debug("Filesystem reader: %d content files under %s", len(docs), dir)
	return docs, nil
}
