// Package scan inspects and lists candidate files for renaming: content-based
// MIME detection, PDF page counts, glob-filtered directory listings, and a
// persistent index so repeat sessions skip unchanged files.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// FileInfo describes one candidate file.
type FileInfo struct {
	ModifiedAt time.Time `json:"modified_at"`
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Extension  string    `json:"extension"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	Pages      int       `json:"pages,omitempty"`
	IsPDF      bool      `json:"is_pdf"`
	IsImage    bool      `json:"is_image"`
}

// Options filter a directory listing. Extensions are matched
// case-insensitively with or without a leading dot; Glob is a doublestar
// pattern matched against the path relative to the scanned directory.
type Options struct {
	Glob       string
	Extensions []string
	Recursive  bool
}

// Inspect stats a file and detects its content type. PDF page counting is
// best effort; a malformed PDF still yields a FileInfo.
func Inspect(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("not a file: %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info := &FileInfo{
		Path:       abs,
		Name:       stat.Name(),
		Extension:  strings.ToLower(filepath.Ext(path)),
		Size:       stat.Size(),
		ModifiedAt: stat.ModTime(),
	}

	if mime, detectErr := mimetype.DetectFile(path); detectErr == nil {
		info.MimeType = mime.String()
		info.IsPDF = mime.Is("application/pdf")
		info.IsImage = strings.HasPrefix(mime.String(), "image/")
	} else {
		info.MimeType = "application/octet-stream"
		info.IsPDF = info.Extension == ".pdf"
	}

	if info.IsPDF {
		pages, countErr := api.PageCountFile(path)
		if countErr != nil {
			slog.Debug("could not count PDF pages", "path", path, "error", countErr)
		} else {
			info.Pages = pages
		}
	}

	return info, nil
}

// List returns the files under dir matching opts, sorted by path. Inspection
// errors on individual files are logged and skip the file rather than
// aborting the listing. When ix is non-nil, unchanged files are served from
// the index and fresh inspections are written back to it.
func List(ctx context.Context, dir string, opts Options, ix *Index) ([]FileInfo, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []FileInfo
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !opts.Recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		ok, matchErr := matches(dir, path, opts)
		if matchErr != nil {
			return matchErr
		}
		if !ok {
			return nil
		}

		info, inspectErr := inspect(ctx, path, ix)
		if inspectErr != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", inspectErr)
			return nil
		}
		files = append(files, *info)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// inspect serves a file from the index when size and mtime are unchanged,
// falling back to a fresh Inspect (and refreshing the index) otherwise.
func inspect(ctx context.Context, path string, ix *Index) (*FileInfo, error) {
	if ix != nil {
		// The index is keyed by absolute path; a walk rooted at a relative
		// directory yields relative ones.
		key := path
		if abs, absErr := filepath.Abs(path); absErr == nil {
			key = abs
		}
		if cached, err := ix.Get(ctx, key); err == nil && cached != nil {
			if stat, statErr := os.Stat(path); statErr == nil &&
				stat.Size() == cached.Size && stat.ModTime().Equal(cached.ModifiedAt) {
				return cached, nil
			}
		}
	}

	info, err := Inspect(path)
	if err != nil {
		return nil, err
	}

	if ix != nil {
		if err := ix.Put(ctx, *info); err != nil {
			slog.Warn("failed to index file", "path", path, "error", err)
		}
	}

	return info, nil
}

func matches(root, path string, opts Options) (bool, error) {
	if opts.Glob != "" {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false, err
		}
		ok, err := doublestar.PathMatch(opts.Glob, rel)
		if err != nil {
			return false, fmt.Errorf("invalid glob %q: %w", opts.Glob, err)
		}
		if !ok {
			return false, nil
		}
	}

	if len(opts.Extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		found := false
		for _, want := range opts.Extensions {
			want = strings.ToLower(want)
			if !strings.HasPrefix(want, ".") {
				want = "." + want
			}
			if ext == want {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	return true, nil
}
