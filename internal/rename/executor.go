// Package rename performs filesystem-safe renames and moves: filename
// sanitization, conflict resolution, previews, and single or batch
// execution, reporting pattern usage back to the store on success.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

// maxConflictAttempts bounds the " (N)" suffix search; hitting it is a hard
// failure rather than a retry.
const maxConflictAttempts = 1000

// ErrTooManyConflicts indicates no unused " (N)" suffix was found within the
// attempt ceiling.
var ErrTooManyConflicts = errors.New("could not find a unique filename")

// UsageRecorder receives pattern usage after a successful rename. The store
// satisfies this interface.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, patternID string, doc model.DocumentInfo, newName string) error
}

// Executor performs rename operations. A nil recorder disables usage
// reporting.
type Executor struct {
	recorder UsageRecorder
}

// NewExecutor creates an Executor that reports usage to recorder.
func NewExecutor(recorder UsageRecorder) *Executor {
	return &Executor{recorder: recorder}
}

// Request describes one rename: the source file, the new base name (without
// extension), and an optional destination directory.
type Request struct {
	FilePath       string `json:"file_path"`
	NewName        string `json:"new_name"`
	DestinationDir string `json:"destination_dir,omitempty"`
}

// Preview is the computed plan for a rename, produced without touching the
// filesystem.
type Preview struct {
	OriginalPath       string `json:"original_path"`
	OriginalName       string `json:"original_name"`
	NewName            string `json:"new_name"`
	NewPath            string `json:"new_path"`
	ConflictResolution string `json:"conflict_resolution,omitempty"`
	WillMove           bool   `json:"will_move"`
	HasConflict        bool   `json:"has_conflict"`
}

// Result is the outcome of one executed (or dry-run previewed) rename.
type Result struct {
	OriginalPath string `json:"original_path"`
	OriginalName string `json:"original_name,omitempty"`
	NewName      string `json:"new_name,omitempty"`
	NewPath      string `json:"new_path,omitempty"`
	Error        string `json:"error,omitempty"`
	Success      bool   `json:"success"`
	WasMoved     bool   `json:"was_moved"`
	HasConflict  bool   `json:"has_conflict,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`
}

// BatchSummary aggregates a batch of renames, preserving input order.
type BatchSummary struct {
	Results      []Result `json:"results"`
	Total        int      `json:"total"`
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	DryRun       bool     `json:"dry_run"`
}

// BatchOptions apply to every entry of a batch unless overridden per entry.
type BatchOptions struct {
	DestinationDir string
	PatternID      string
	DocumentType   model.DocumentType
	DryRun         bool
}

var (
	sanitizeWhitespace = regexp.MustCompile(`\s+`)
	sanitizeDashes     = regexp.MustCompile(`-+`)
	sanitizeDashSpace  = regexp.MustCompile(`\s*-\s*`)
)

// invalidFilenameChars replaces the characters Windows forbids; it is the
// most restrictive common denominator across filesystems.
var invalidFilenameChars = strings.NewReplacer(
	"<", "-", ">", "-", ":", "-", `"`, "-",
	"/", "-", `\`, "-", "|", "-", "?", "-", "*", "-",
)

// Sanitize turns a proposed name into a valid filename: forbidden characters
// become dashes, surrounding whitespace and dots are trimmed, whitespace and
// dash runs collapse, and dash separators get uniform spacing. An empty
// result falls back to "unnamed".
func Sanitize(name string) string {
	result := invalidFilenameChars.Replace(name)

	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")

	result = sanitizeWhitespace.ReplaceAllString(result, " ")
	result = sanitizeDashes.ReplaceAllString(result, "-")
	result = sanitizeDashSpace.ReplaceAllString(result, " - ")

	if result == "" {
		return "unnamed"
	}
	return result
}

// UniquePath returns path unchanged when nothing exists there; otherwise it
// appends " (N)" before the extension, counting up until an unused path is
// found or the attempt ceiling is hit.
func UniquePath(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	for n := 1; n <= maxConflictAttempts; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: gave up after %d attempts for %s", ErrTooManyConflicts, maxConflictAttempts, path)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Preview computes the rename plan without mutating the filesystem: the
// source must exist, the destination directory (when given) must exist, the
// new name is sanitized, the source extension preserved, and conflicts
// resolved with a numeric suffix.
func (e *Executor) Preview(req Request) (*Preview, error) {
	if _, err := os.Stat(req.FilePath); err != nil {
		return nil, fmt.Errorf("file not found: %s", req.FilePath)
	}

	clean := Sanitize(req.NewName)
	ext := filepath.Ext(req.FilePath)
	newFilename := clean + ext

	dir := filepath.Dir(req.FilePath)
	if req.DestinationDir != "" {
		if _, err := os.Stat(req.DestinationDir); err != nil {
			return nil, fmt.Errorf("destination directory not found: %s", req.DestinationDir)
		}
		dir = req.DestinationDir
	}

	candidate := filepath.Join(dir, newFilename)
	unique, err := UniquePath(candidate)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		OriginalPath: req.FilePath,
		OriginalName: filepath.Base(req.FilePath),
		NewName:      newFilename,
		NewPath:      unique,
		WillMove:     req.DestinationDir != "",
		HasConflict:  unique != candidate,
	}
	if preview.HasConflict {
		preview.ConflictResolution = unique
	}
	return preview, nil
}

// Apply executes a rename. Preview errors propagate unchanged; filesystem
// failures during the move come back as a failure Result with the source
// untouched. On success, usage is reported to the recorder when a pattern ID
// was supplied.
func (e *Executor) Apply(ctx context.Context, req Request, patternID string, docType model.DocumentType) (*Result, error) {
	preview, err := e.Preview(req)
	if err != nil {
		return nil, err
	}

	if mkErr := os.MkdirAll(filepath.Dir(preview.NewPath), 0o750); mkErr != nil {
		return &Result{
			Success:      false,
			Error:        mkErr.Error(),
			OriginalPath: preview.OriginalPath,
		}, nil
	}

	if mvErr := os.Rename(preview.OriginalPath, preview.NewPath); mvErr != nil {
		return &Result{
			Success:      false,
			Error:        mvErr.Error(),
			OriginalPath: preview.OriginalPath,
		}, nil
	}

	newName := filepath.Base(preview.NewPath)

	if patternID != "" && e.recorder != nil {
		// History entries always carry a type; an omitted one records as
		// general.
		if docType == "" {
			docType = model.DocTypeGeneral
		}
		doc := model.DocumentInfo{
			FilePath:     req.FilePath,
			OriginalName: preview.OriginalName,
			DocumentType: docType,
		}
		if recErr := e.recorder.RecordUsage(ctx, patternID, doc, newName); recErr != nil {
			slog.Warn("failed to record pattern usage",
				"pattern_id", patternID, "error", recErr)
		}
	}

	return &Result{
		Success:      true,
		OriginalPath: preview.OriginalPath,
		OriginalName: preview.OriginalName,
		NewName:      newName,
		NewPath:      preview.NewPath,
		WasMoved:     preview.WillMove,
		HasConflict:  preview.HasConflict,
	}, nil
}

// ApplyBatch processes each request independently; a bad entry fails that
// entry, never the batch. Per-entry destinations override the shared one.
// With DryRun set, every entry is previewed only: no filesystem mutation and
// no usage recording.
func (e *Executor) ApplyBatch(ctx context.Context, requests []Request, opts BatchOptions) *BatchSummary {
	summary := &BatchSummary{
		Total:   len(requests),
		DryRun:  opts.DryRun,
		Results: make([]Result, 0, len(requests)),
	}

	for _, req := range requests {
		result := e.applyOne(ctx, req, opts)
		if result.Success {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
		summary.Results = append(summary.Results, result)
	}

	return summary
}

func (e *Executor) applyOne(ctx context.Context, req Request, opts BatchOptions) Result {
	if req.FilePath == "" || req.NewName == "" {
		return Result{
			Success:      false,
			Error:        "missing file_path or new_name",
			OriginalPath: req.FilePath,
			DryRun:       opts.DryRun,
		}
	}

	if req.DestinationDir == "" {
		req.DestinationDir = opts.DestinationDir
	}

	if opts.DryRun {
		preview, err := e.Preview(req)
		if err != nil {
			return Result{Success: false, Error: err.Error(), OriginalPath: req.FilePath, DryRun: true}
		}
		return Result{
			Success:      true,
			DryRun:       true,
			OriginalPath: preview.OriginalPath,
			OriginalName: preview.OriginalName,
			NewName:      filepath.Base(preview.NewPath),
			NewPath:      preview.NewPath,
			WasMoved:     preview.WillMove,
			HasConflict:  preview.HasConflict,
		}
	}

	result, err := e.Apply(ctx, req, opts.PatternID, opts.DocumentType)
	if err != nil {
		return Result{Success: false, Error: err.Error(), OriginalPath: req.FilePath}
	}
	return *result
}
