// Package store persists naming-pattern rules and rename history as JSON
// artifacts in a data directory, and implements rule selection and learning.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/pattern"
	"github.com/google/uuid"
)

const (
	patternsFileName = "patterns.json"
	historyFileName  = "history.json"

	artifactVersion = "1.0"

	// maxHistoryEntries bounds the persisted history log; older entries are
	// dropped on every save.
	maxHistoryEntries = 1000

	defaultCustomPriority = 5
	learnedPriority       = 10
)

// Sentinel errors returned by rule operations.
var (
	// ErrPatternNotFound indicates no rule with the requested ID exists.
	ErrPatternNotFound = errors.New("pattern not found")
	// ErrDefaultPattern indicates the operation is not allowed on a built-in rule.
	ErrDefaultPattern = errors.New("default patterns cannot be deleted")
)

// HistoryEntry records one completed rename in the append-only history log.
type HistoryEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	PatternID    string    `json:"pattern_id"`
	DocumentType string    `json:"document_type"`
	OriginalName string    `json:"original_name"`
	NewName      string    `json:"new_name"`
	Institution  string    `json:"institution,omitempty"`
}

// TypeStats aggregates rule counts and usage for one document type.
type TypeStats struct {
	Patterns int `json:"patterns"`
	Uses     int `json:"uses"`
}

// Stats summarizes the store's rule set and rename history.
type Stats struct {
	ByType         map[string]TypeStats `json:"by_type"`
	TotalPatterns  int                  `json:"total_patterns"`
	CustomPatterns int                  `json:"custom_patterns"`
	TotalRenames   int                  `json:"total_renames"`
}

// NewPattern carries the fields for creating a custom rule. Priority is
// optional and defaults to 5.
type NewPattern struct {
	Priority          *int
	DocumentType      model.DocumentType
	Pattern           string
	Name              string
	Description       string
	MatchKeywords     []string
	MatchInstitutions []string
}

// PatternUpdate is a partial update of an existing rule; nil fields are left
// unchanged.
type PatternUpdate struct {
	Pattern           *string
	Name              *string
	Description       *string
	Priority          *int
	MatchKeywords     []string
	MatchInstitutions []string
}

// Store owns all pattern rules and rename history for one data directory.
// It is the sole mutator and sole point of persistence; every mutating
// operation writes both artifacts back to disk before returning. It is not
// safe for concurrent writers pointed at the same directory.
type Store struct {
	patterns     map[string]*model.PatternRule
	dataDir      string
	patternsPath string
	historyPath  string
	history      []HistoryEntry
}

// New opens (or creates) the store in dataDir, loading any persisted rules
// and history and seeding missing default patterns. Corrupt artifacts are
// logged and treated as empty; construction only fails when the data
// directory cannot be created.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		dataDir:      dataDir,
		patternsPath: filepath.Join(dataDir, patternsFileName),
		historyPath:  filepath.Join(dataDir, historyFileName),
		patterns:     make(map[string]*model.PatternRule),
	}

	s.load()
	s.seedDefaults()

	return s, nil
}

type patternsArtifact struct {
	Version   string              `json:"version"`
	UpdatedAt time.Time           `json:"updated_at"`
	Patterns  []model.PatternRule `json:"patterns"`
}

type historyArtifact struct {
	Version   string         `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	History   []HistoryEntry `json:"history"`
}

// load reads both artifacts. A missing file is a fresh store; a malformed
// file is logged and skipped so one bad artifact never blocks startup.
func (s *Store) load() {
	if data, err := os.ReadFile(s.patternsPath); err == nil {
		var artifact patternsArtifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			slog.Warn("could not load patterns, starting from defaults",
				"path", s.patternsPath, "error", err)
		} else {
			for i := range artifact.Patterns {
				rule := artifact.Patterns[i]
				rule.DocumentType = model.ParseDocumentType(string(rule.DocumentType))
				s.patterns[rule.ID] = &rule
			}
		}
	}

	if data, err := os.ReadFile(s.historyPath); err == nil {
		var artifact historyArtifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			slog.Warn("could not load rename history, starting empty",
				"path", s.historyPath, "error", err)
		} else {
			s.history = artifact.History
		}
	}
}

// seedDefaults inserts every catalog pattern whose ID is not present yet.
// Existing rules, including edited defaults, are never overwritten.
func (s *Store) seedDefaults() {
	for _, dp := range defaultPatterns() {
		if _, exists := s.patterns[dp.ID]; exists {
			continue
		}
		s.patterns[dp.ID] = &model.PatternRule{
			ID:                dp.ID,
			DocumentType:      dp.DocumentType,
			Pattern:           dp.Pattern,
			Name:              dp.Name,
			Description:       dp.Description,
			MatchKeywords:     dp.MatchKeywords,
			MatchInstitutions: nil,
			Priority:          dp.Priority,
			CreatedAt:         time.Now(),
		}
	}
}

// persist writes both artifacts. Each is written to a temporary file and
// renamed into place so a failure writing one cannot corrupt the other's
// committed content.
func (s *Store) persist() error {
	rules := make([]model.PatternRule, 0, len(s.patterns))
	for _, rule := range s.patterns {
		rules = append(rules, *rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	if err := writeArtifact(s.patternsPath, patternsArtifact{
		Version:   artifactVersion,
		UpdatedAt: time.Now(),
		Patterns:  rules,
	}); err != nil {
		return fmt.Errorf("failed to save patterns: %w", err)
	}

	if len(s.history) > maxHistoryEntries {
		s.history = s.history[len(s.history)-maxHistoryEntries:]
	}
	if err := writeArtifact(s.historyPath, historyArtifact{
		Version:   artifactVersion,
		UpdatedAt: time.Now(),
		History:   s.history,
	}); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}

	return nil
}

func writeArtifact(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// AllPatterns returns every rule, ordered by document type then priority.
func (s *Store) AllPatterns(_ context.Context) []model.PatternRule {
	rules := make([]model.PatternRule, 0, len(s.patterns))
	for _, rule := range s.patterns {
		rules = append(rules, *rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].DocumentType != rules[j].DocumentType {
			return rules[i].DocumentType < rules[j].DocumentType
		}
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// PatternsForType returns the rules for one document type, sorted descending
// by priority then use count.
func (s *Store) PatternsForType(_ context.Context, docType model.DocumentType) []model.PatternRule {
	rules := make([]model.PatternRule, 0)
	for _, rule := range s.patterns {
		if rule.DocumentType == docType {
			rules = append(rules, *rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		if rules[i].UseCount != rules[j].UseCount {
			return rules[i].UseCount > rules[j].UseCount
		}
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// GetPattern returns the rule with the given ID.
func (s *Store) GetPattern(_ context.Context, id string) (*model.PatternRule, error) {
	rule, ok := s.patterns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatternNotFound, id)
	}
	copied := *rule
	return &copied, nil
}

// GetBestPattern selects the most appropriate rule for a document. Rules
// with matching criteria are tried first in priority order; then the
// highest-ranked general rule; then the highest-ranked rule of the type
// regardless of criteria. ErrPatternNotFound is returned only when the type
// has no rules at all.
func (s *Store) GetBestPattern(ctx context.Context, doc model.DocumentInfo) (*model.PatternRule, error) {
	rules := s.PatternsForType(ctx, doc.DocumentType)
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules for type %s", ErrPatternNotFound, doc.DocumentType)
	}

	for i := range rules {
		if !rules[i].IsGeneral() && pattern.Matches(rules[i], doc) {
			return &rules[i], nil
		}
	}

	for i := range rules {
		if rules[i].IsGeneral() {
			return &rules[i], nil
		}
	}

	return &rules[0], nil
}

// AddPattern creates a new custom rule and persists the store.
func (s *Store) AddPattern(_ context.Context, np NewPattern) (*model.PatternRule, error) {
	priority := defaultCustomPriority
	if np.Priority != nil {
		priority = *np.Priority
	}

	name := np.Name
	if name == "" {
		name = fmt.Sprintf("Custom %s Pattern", np.DocumentType)
	}

	rule := &model.PatternRule{
		ID:                newCustomID(),
		DocumentType:      np.DocumentType,
		Pattern:           np.Pattern,
		Name:              name,
		Description:       np.Description,
		MatchKeywords:     np.MatchKeywords,
		MatchInstitutions: np.MatchInstitutions,
		Priority:          priority,
		IsCustom:          true,
		CreatedAt:         time.Now(),
	}

	s.patterns[rule.ID] = rule
	if err := s.persist(); err != nil {
		return nil, err
	}

	copied := *rule
	return &copied, nil
}

// UpdatePattern applies a partial update to an existing rule and persists.
func (s *Store) UpdatePattern(_ context.Context, id string, update PatternUpdate) (*model.PatternRule, error) {
	rule, ok := s.patterns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatternNotFound, id)
	}

	if update.Pattern != nil {
		rule.Pattern = *update.Pattern
	}
	if update.Name != nil {
		rule.Name = *update.Name
	}
	if update.Description != nil {
		rule.Description = *update.Description
	}
	if update.MatchKeywords != nil {
		rule.MatchKeywords = update.MatchKeywords
	}
	if update.MatchInstitutions != nil {
		rule.MatchInstitutions = update.MatchInstitutions
	}
	if update.Priority != nil {
		rule.Priority = *update.Priority
	}

	if err := s.persist(); err != nil {
		return nil, err
	}

	copied := *rule
	return &copied, nil
}

// DeletePattern removes a custom rule. Default rules are protected.
func (s *Store) DeletePattern(_ context.Context, id string) error {
	rule, ok := s.patterns[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPatternNotFound, id)
	}
	if !rule.IsCustom {
		return fmt.Errorf("%w: %s", ErrDefaultPattern, id)
	}

	delete(s.patterns, id)
	return s.persist()
}

// RecordUsage bumps a rule's usage counters and appends a history entry.
// An unknown pattern ID skips the counter bump but still records history.
func (s *Store) RecordUsage(_ context.Context, patternID string, doc model.DocumentInfo, newName string) error {
	now := time.Now()

	if rule, ok := s.patterns[patternID]; ok {
		rule.UseCount++
		rule.LastUsed = &now
	}

	s.history = append(s.history, HistoryEntry{
		Timestamp:    now,
		PatternID:    patternID,
		DocumentType: string(doc.DocumentType),
		OriginalName: doc.OriginalName,
		NewName:      newName,
		Institution:  doc.Institution,
	})

	return s.persist()
}

// LearnFromBatch promotes a pattern observed during batch processing into a
// reusable rule. When an existing rule of the type already lists the
// institution, its template is updated in place; otherwise a new custom rule
// is created at learned priority, keyed to the institution when given.
func (s *Store) LearnFromBatch(ctx context.Context, docType model.DocumentType, tmpl, institution string) (*model.PatternRule, error) {
	if institution != "" {
		for _, id := range s.sortedIDs() {
			rule := s.patterns[id]
			if rule.DocumentType != docType {
				continue
			}
			if !containsFold(rule.MatchInstitutions, institution) {
				continue
			}

			now := time.Now()
			rule.Pattern = tmpl
			rule.UseCount++
			rule.LastUsed = &now
			if err := s.persist(); err != nil {
				return nil, err
			}
			copied := *rule
			return &copied, nil
		}
	}

	name := institution
	if name == "" {
		name = string(docType)
	}
	var institutions []string
	if institution != "" {
		institutions = []string{institution}
	}

	priority := learnedPriority
	return s.AddPattern(ctx, NewPattern{
		DocumentType:      docType,
		Pattern:           tmpl,
		Name:              fmt.Sprintf("%s Pattern", name),
		MatchInstitutions: institutions,
		Priority:          &priority,
	})
}

// History returns up to limit entries, most recent first.
func (s *Store) History(_ context.Context, limit int) []HistoryEntry {
	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	entries := make([]HistoryEntry, 0, limit)
	for i := len(s.history) - 1; i >= len(s.history)-limit; i-- {
		entries = append(entries, s.history[i])
	}
	return entries
}

// Stats aggregates rule counts and usage per document type.
func (s *Store) Stats(_ context.Context) Stats {
	stats := Stats{
		ByType:       make(map[string]TypeStats),
		TotalRenames: len(s.history),
	}

	for _, rule := range s.patterns {
		stats.TotalPatterns++
		if rule.IsCustom {
			stats.CustomPatterns++
		}
		ts := stats.ByType[string(rule.DocumentType)]
		ts.Patterns++
		ts.Uses += rule.UseCount
		stats.ByType[string(rule.DocumentType)] = ts
	}

	return stats
}

// DataDir returns the directory this store persists into.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) sortedIDs() []string {
	ids := make([]string, 0, len(s.patterns))
	for id := range s.patterns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func newCustomID() string {
	return "custom_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
