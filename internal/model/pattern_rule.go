package model

import (
	"time"
)

// PatternRule is a named naming-pattern template for one document type,
// selected by priority and matching criteria and mutated in place as usage
// accumulates.
type PatternRule struct {
	CreatedAt         time.Time    `json:"created_at"`
	LastUsed          *time.Time   `json:"last_used,omitempty"`
	ID                string       `json:"id"`
	DocumentType      DocumentType `json:"document_type"`
	Pattern           string       `json:"pattern"` // e.g. "{Date:YYYY} - {Form Type} - {Institution}"
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	MatchKeywords     []string     `json:"match_keywords"`
	MatchInstitutions []string     `json:"match_institutions"`
	UseCount          int          `json:"use_count"`
	Priority          int          `json:"priority"` // higher priority rules are tried first
	IsCustom          bool         `json:"is_custom"`
}

// IsGeneral reports whether the rule declares no matching criteria and
// therefore applies to every document of its type.
func (r PatternRule) IsGeneral() bool {
	return len(r.MatchKeywords) == 0 && len(r.MatchInstitutions) == 0
}
