package pattern

import (
	"testing"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		rule model.PatternRule
		doc  model.DocumentInfo
		want bool
	}{
		{
			name: "type mismatch always fails",
			rule: model.PatternRule{DocumentType: model.DocTypeReceipt},
			doc:  model.DocumentInfo{DocumentType: model.DocTypeBill, Merchant: "receipt"},
			want: false,
		},
		{
			name: "general rule matches on type alone",
			rule: model.PatternRule{DocumentType: model.DocTypeReceipt},
			doc:  model.DocumentInfo{DocumentType: model.DocTypeReceipt},
			want: true,
		},
		{
			name: "keyword found in description",
			rule: model.PatternRule{
				DocumentType:  model.DocTypeTaxDocument,
				MatchKeywords: []string{"k-1"},
			},
			doc: model.DocumentInfo{
				DocumentType: model.DocTypeTaxDocument,
				Description:  "Schedule K-1 partnership income",
			},
			want: true,
		},
		{
			name: "keyword found in form type",
			rule: model.PatternRule{
				DocumentType:  model.DocTypeTaxDocument,
				MatchKeywords: []string{"1099"},
			},
			doc: model.DocumentInfo{
				DocumentType: model.DocTypeTaxDocument,
				FormType:     "1099-INT",
			},
			want: true,
		},
		{
			name: "keyword match is case-insensitive",
			rule: model.PatternRule{
				DocumentType:  model.DocTypeMedical,
				MatchKeywords: []string{"EOB"},
			},
			doc: model.DocumentInfo{
				DocumentType: model.DocTypeMedical,
				Description:  "eob for visit",
			},
			want: true,
		},
		{
			name: "institution substring match",
			rule: model.PatternRule{
				DocumentType:      model.DocTypeBankStatement,
				MatchInstitutions: []string{"chase"},
			},
			doc: model.DocumentInfo{
				DocumentType: model.DocTypeBankStatement,
				Institution:  "JPMorgan Chase Bank",
			},
			want: true,
		},
		{
			name: "criteria rule with no hits fails",
			rule: model.PatternRule{
				DocumentType:      model.DocTypeBankStatement,
				MatchKeywords:     []string{"savings"},
				MatchInstitutions: []string{"chase"},
			},
			doc: model.DocumentInfo{
				DocumentType: model.DocTypeBankStatement,
				Institution:  "Wells Fargo",
				Description:  "checking statement",
			},
			want: false,
		},
		{
			name: "institution criteria ignored when document has none",
			rule: model.PatternRule{
				DocumentType:      model.DocTypeBill,
				MatchInstitutions: []string{"comcast"},
			},
			doc:  model.DocumentInfo{DocumentType: model.DocTypeBill},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.rule, tt.doc))
		})
	}
}

func TestMatches_TypeMismatchNeverMatches(t *testing.T) {
	rule := model.PatternRule{
		DocumentType:      model.DocTypeReceipt,
		MatchKeywords:     []string{"anything"},
		MatchInstitutions: []string{"anywhere"},
	}

	for _, dt := range model.AllDocumentTypes() {
		if dt == model.DocTypeReceipt {
			continue
		}
		doc := model.DocumentInfo{
			DocumentType: dt,
			Description:  "anything",
			Institution:  "anywhere",
		}
		assert.False(t, Matches(rule, doc), "type %s should not match", dt)
	}
}
