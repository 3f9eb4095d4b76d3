package pattern

import (
	"strings"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

// Matches reports whether a rule is eligible for a document. The document
// type must agree; beyond that, any match keyword found in the document's
// combined text, or any match institution found in the document's
// institution field, qualifies. A rule with no criteria is a general rule
// for its type and matches unconditionally.
func Matches(rule model.PatternRule, doc model.DocumentInfo) bool {
	if rule.DocumentType != doc.DocumentType {
		return false
	}

	blob := documentText(doc)

	for _, keyword := range rule.MatchKeywords {
		if keyword != "" && strings.Contains(blob, strings.ToLower(keyword)) {
			return true
		}
	}

	if doc.Institution != "" {
		institution := strings.ToLower(doc.Institution)
		for _, candidate := range rule.MatchInstitutions {
			if candidate != "" && strings.Contains(institution, strings.ToLower(candidate)) {
				return true
			}
		}
	}

	return rule.IsGeneral()
}

// documentText joins the document's text-bearing fields into one lowercase
// blob for keyword matching.
func documentText(doc model.DocumentInfo) string {
	parts := make([]string, 0, 4)
	for _, field := range []string{doc.Description, doc.Institution, doc.Merchant, doc.FormType} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
