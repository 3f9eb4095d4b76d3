package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/the-papers-must-flow/internal/config"
	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/rename"
	"github.com/Veraticus/the-papers-must-flow/internal/scan"
	"github.com/Veraticus/the-papers-must-flow/internal/store"
)

// openStore opens the pattern store in the configured data directory,
// seeding defaults on first run.
func openStore() (*store.Store, error) {
	st, err := store.New(config.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern store: %w", err)
	}
	return st, nil
}

// openExecutor wires a rename executor that records usage back into the
// pattern store.
func openExecutor() (*rename.Executor, *store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return rename.NewExecutor(st), st, nil
}

// openScanIndex opens the persistent scan index with migrations applied.
func openScanIndex(ctx context.Context) (*scan.Index, error) {
	ix, err := scan.OpenIndex(filepath.Join(config.DataDir(), "scan.db"))
	if err != nil {
		return nil, err
	}
	if err := ix.Migrate(ctx); err != nil {
		_ = ix.Close()
		return nil, err
	}
	return ix, nil
}

// splitCSV splits a comma-separated flag value, dropping empty items.
func splitCSV(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseFields turns repeated key=value flags into a document field map.
func parseFields(raw []string) (map[string]any, error) {
	fields := make(map[string]any, len(raw))
	for _, pair := range raw {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", pair)
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields, nil
}

// docFromFlags builds a DocumentInfo from --type and --field flags.
func docFromFlags(docType string, rawFields []string) (model.DocumentInfo, error) {
	fields, err := parseFields(rawFields)
	if err != nil {
		return model.DocumentInfo{}, err
	}
	doc := model.DocumentInfoFromFields(fields)
	doc.DocumentType = model.ParseDocumentType(docType)
	return doc, nil
}
