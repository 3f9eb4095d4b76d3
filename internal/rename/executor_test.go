package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedUsage captures RecordUsage calls for assertions.
type recordedUsage struct {
	patternID string
	doc       model.DocumentInfo
	newName   string
}

type fakeRecorder struct {
	calls []recordedUsage
	err   error
}

func (f *fakeRecorder) RecordUsage(_ context.Context, patternID string, doc model.DocumentInfo, newName string) error {
	f.calls = append(f.calls, recordedUsage{patternID: patternID, doc: doc, newName: newName})
	return f.err
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "invalid characters become dashes", input: `a<b>c:d"e`, want: "a - b - c - d - e"},
		{name: "slashes replaced", input: "2024/03/15 report", want: "2024 - 03 - 15 report"},
		{name: "whitespace runs collapse", input: "too   many    spaces", want: "too many spaces"},
		{name: "dash runs collapse", input: "a---b", want: "a - b"},
		{name: "surrounding dots trimmed", input: "..hidden.", want: "hidden"},
		{name: "surrounding whitespace trimmed", input: "  padded  ", want: "padded"},
		{name: "empty becomes unnamed", input: "", want: "unnamed"},
		{name: "only dots becomes unnamed", input: "...", want: "unnamed"},
		{name: "clean name unchanged", input: "2024-03-15 - Whole Foods", want: "2024 - 03 - 15 - Whole Foods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_NeverContainsForbiddenCharacters(t *testing.T) {
	inputs := []string{
		`<>:"/\|?*`,
		`report*final?v2`,
		"mixed | pipes \\ and / slashes",
	}
	for _, input := range inputs {
		got := Sanitize(input)
		for _, forbidden := range `<>:"/\|?*` {
			assert.NotContains(t, got, string(forbidden), "input %q", input)
		}
		assert.NotEmpty(t, got)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "Invoice.pdf")
	got, err := UniquePath(fresh)
	require.NoError(t, err)
	assert.Equal(t, fresh, got, "non-existing path returned unchanged")

	touch(t, fresh)
	got, err = UniquePath(fresh)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice (1).pdf"), got)

	touch(t, got)
	got, err = UniquePath(fresh)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice (2).pdf"), got)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan0001.pdf")
	touch(t, source)

	e := NewExecutor(nil)

	t.Run("source must exist", func(t *testing.T) {
		_, err := e.Preview(Request{FilePath: filepath.Join(dir, "ghost.pdf"), NewName: "x"})
		assert.ErrorContains(t, err, "file not found")
	})

	t.Run("destination must exist", func(t *testing.T) {
		_, err := e.Preview(Request{
			FilePath:       source,
			NewName:        "x",
			DestinationDir: filepath.Join(dir, "nope"),
		})
		assert.ErrorContains(t, err, "destination directory not found")
	})

	t.Run("extension preserved and name sanitized", func(t *testing.T) {
		preview, err := e.Preview(Request{FilePath: source, NewName: "Receipt: Whole Foods"})
		require.NoError(t, err)
		assert.Equal(t, "Receipt - Whole Foods.pdf", preview.NewName)
		assert.Equal(t, filepath.Join(dir, "Receipt - Whole Foods.pdf"), preview.NewPath)
		assert.False(t, preview.WillMove)
		assert.False(t, preview.HasConflict)

		// Nothing was created.
		_, statErr := os.Stat(preview.NewPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("conflict resolution reported", func(t *testing.T) {
		touch(t, filepath.Join(dir, "Invoice.pdf"))
		preview, err := e.Preview(Request{FilePath: source, NewName: "Invoice"})
		require.NoError(t, err)
		assert.True(t, preview.HasConflict)
		assert.Equal(t, "Invoice (1).pdf", filepath.Base(preview.NewPath))
		assert.Equal(t, preview.NewPath, preview.ConflictResolution)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("same-directory rename", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "scan0001.pdf")
		touch(t, source)

		recorder := &fakeRecorder{}
		e := NewExecutor(recorder)

		result, err := e.Apply(ctx, Request{FilePath: source, NewName: "Receipt"}, "receipt_default", model.DocTypeReceipt)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.False(t, result.WasMoved)
		assert.Equal(t, "Receipt.pdf", result.NewName)

		assert.NoFileExists(t, source)
		assert.FileExists(t, result.NewPath)

		require.Len(t, recorder.calls, 1)
		assert.Equal(t, "receipt_default", recorder.calls[0].patternID)
		assert.Equal(t, "scan0001.pdf", recorder.calls[0].doc.OriginalName)
		assert.Equal(t, model.DocTypeReceipt, recorder.calls[0].doc.DocumentType)
		assert.Equal(t, "Receipt.pdf", recorder.calls[0].newName)
	})

	t.Run("move to destination directory", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "doc.txt")
		touch(t, source)
		dest := filepath.Join(dir, "sorted")
		require.NoError(t, os.Mkdir(dest, 0o750))

		e := NewExecutor(nil)
		result, err := e.Apply(ctx, Request{FilePath: source, NewName: "Contract", DestinationDir: dest}, "", "")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.WasMoved)
		assert.Equal(t, filepath.Join(dest, "Contract.txt"), result.NewPath)
		assert.FileExists(t, result.NewPath)
	})

	t.Run("conflict produces numbered name", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "scan0001.pdf")
		touch(t, source)
		touch(t, filepath.Join(dir, "Invoice.pdf"))

		e := NewExecutor(nil)
		result, err := e.Apply(ctx, Request{FilePath: source, NewName: "Invoice"}, "", "")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, result.HasConflict)
		assert.Equal(t, "Invoice (1).pdf", result.NewName)
		assert.FileExists(t, filepath.Join(dir, "Invoice (1).pdf"))
	})

	t.Run("no usage recorded without pattern id", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "a.txt")
		touch(t, source)

		recorder := &fakeRecorder{}
		e := NewExecutor(recorder)
		_, err := e.Apply(ctx, Request{FilePath: source, NewName: "b"}, "", "")
		require.NoError(t, err)
		assert.Empty(t, recorder.calls)
	})

	t.Run("omitted document type records as general", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "scan0002.pdf")
		touch(t, source)

		recorder := &fakeRecorder{}
		e := NewExecutor(recorder)
		result, err := e.Apply(ctx, Request{FilePath: source, NewName: "Statement"}, "general_default", "")
		require.NoError(t, err)
		assert.True(t, result.Success)

		require.Len(t, recorder.calls, 1)
		assert.Equal(t, model.DocTypeGeneral, recorder.calls[0].doc.DocumentType)
	})

	t.Run("recorder failure does not undo the rename", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "a.txt")
		touch(t, source)

		recorder := &fakeRecorder{err: fmt.Errorf("disk full")}
		e := NewExecutor(recorder)
		result, err := e.Apply(ctx, Request{FilePath: source, NewName: "b"}, "rule", model.DocTypeGeneral)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.FileExists(t, result.NewPath)
	})
}

func TestApplyBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("entries are independent", func(t *testing.T) {
		dir := t.TempDir()
		good := filepath.Join(dir, "good.pdf")
		touch(t, good)

		e := NewExecutor(nil)
		summary := e.ApplyBatch(ctx, []Request{
			{FilePath: good, NewName: "Kept"},
			{FilePath: filepath.Join(dir, "missing.pdf"), NewName: "Lost"},
			{FilePath: "", NewName: "Invalid"},
		}, BatchOptions{})

		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 1, summary.SuccessCount)
		assert.Equal(t, 2, summary.FailureCount)
		require.Len(t, summary.Results, 3)
		assert.True(t, summary.Results[0].Success)
		assert.Contains(t, summary.Results[1].Error, "file not found")
		assert.Contains(t, summary.Results[2].Error, "missing file_path or new_name")
	})

	t.Run("per-entry destination overrides shared", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.pdf")
		b := filepath.Join(dir, "b.pdf")
		touch(t, a)
		touch(t, b)
		shared := filepath.Join(dir, "shared")
		special := filepath.Join(dir, "special")
		require.NoError(t, os.Mkdir(shared, 0o750))
		require.NoError(t, os.Mkdir(special, 0o750))

		e := NewExecutor(nil)
		summary := e.ApplyBatch(ctx, []Request{
			{FilePath: a, NewName: "A"},
			{FilePath: b, NewName: "B", DestinationDir: special},
		}, BatchOptions{DestinationDir: shared})

		assert.Equal(t, 2, summary.SuccessCount)
		assert.FileExists(t, filepath.Join(shared, "A.pdf"))
		assert.FileExists(t, filepath.Join(special, "B.pdf"))
	})

	t.Run("dry run mutates nothing and records nothing", func(t *testing.T) {
		dir := t.TempDir()
		source := filepath.Join(dir, "original.pdf")
		touch(t, source)

		recorder := &fakeRecorder{}
		e := NewExecutor(recorder)
		summary := e.ApplyBatch(ctx, []Request{
			{FilePath: source, NewName: "Renamed"},
		}, BatchOptions{DryRun: true, PatternID: "receipt_default"})

		assert.True(t, summary.DryRun)
		assert.Equal(t, 1, summary.SuccessCount)
		require.Len(t, summary.Results, 1)
		assert.True(t, summary.Results[0].DryRun)
		assert.Equal(t, "Renamed.pdf", summary.Results[0].NewName)

		assert.FileExists(t, source, "dry run must not move the source")
		assert.NoFileExists(t, filepath.Join(dir, "Renamed.pdf"))
		assert.Empty(t, recorder.calls, "dry run must not record usage")
	})

	t.Run("results preserve input order", func(t *testing.T) {
		dir := t.TempDir()
		names := []string{"one.txt", "two.txt", "three.txt"}
		requests := make([]Request, 0, len(names))
		for _, n := range names {
			p := filepath.Join(dir, n)
			touch(t, p)
			requests = append(requests, Request{FilePath: p, NewName: "renamed-" + n})
		}

		e := NewExecutor(nil)
		summary := e.ApplyBatch(ctx, requests, BatchOptions{DryRun: true})
		require.Len(t, summary.Results, 3)
		for i, n := range names {
			assert.Equal(t, filepath.Join(dir, n), summary.Results[i].OriginalPath)
		}
	})
}
