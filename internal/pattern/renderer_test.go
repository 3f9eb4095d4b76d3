package pattern

import (
	"strings"
	"testing"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		doc  model.DocumentInfo
		want string
	}{
		{
			name: "receipt with all tokens",
			tmpl: "{Date:YYYY-MM-DD} - {Merchant} - {Amount}",
			doc: model.DocumentInfo{
				Date:     "2024-03-15",
				Merchant: "Whole Foods",
				Amount:   "$42.10",
			},
			want: "2024-03-15 - Whole Foods - $42.10",
		},
		{
			name: "literal text survives around tokens",
			tmpl: "{Year} - K-1 - {Institution}",
			doc: model.DocumentInfo{
				Year:        "2023",
				Institution: "Fidelity",
			},
			want: "2023 - K-1 - Fidelity",
		},
		{
			name: "unresolved token in the middle collapses separators",
			tmpl: "{Date:YYYY-MM-DD} - {Merchant} - {Amount}",
			doc: model.DocumentInfo{
				Date:   "2024-03-15",
				Amount: "$10.00",
			},
			want: "2024-03-15 - $10.00",
		},
		{
			name: "unresolved leading token trims",
			tmpl: "{Date:YYYY-MM-DD} - {Description}",
			doc:  model.DocumentInfo{Description: "warranty card"},
			want: "warranty card",
		},
		{
			name: "unresolved trailing token trims",
			tmpl: "{Description} - {Date:YYYY}",
			doc:  model.DocumentInfo{Description: "passport"},
			want: "passport",
		},
		{
			name: "nothing resolves and no literal text",
			tmpl: "{Merchant} - {Amount}",
			doc:  model.DocumentInfo{},
			want: "",
		},
		{
			name: "year wins Date:YYYY over date",
			tmpl: "{Date:YYYY}",
			doc:  model.DocumentInfo{Date: "2024-03-15", Year: "2023"},
			want: "2023",
		},
		{
			name: "whitespace runs collapse",
			tmpl: "{Merchant}   statement",
			doc:  model.DocumentInfo{Merchant: "Acme"},
			want: "Acme statement",
		},
		{
			name: "unmatched brace stays literal",
			tmpl: "{Merchant",
			doc:  model.DocumentInfo{Merchant: "Acme"},
			want: "{Merchant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.tmpl, tt.doc))
		})
	}
}

func TestRender_NeverLeavesPlaceholders(t *testing.T) {
	templates := []string{
		"{Date} - {Merchant} - {Amount}",
		"{Unknown Token} and {Another}",
		"{Form Type} {Last 4 Digits} {Service Provider}",
		"{} - {Description}",
	}
	docs := []model.DocumentInfo{
		{},
		{Merchant: "Acme", Amount: "$5"},
		{Date: "2024-01-01", Institution: "Chase", AccountNumber: "998877"},
	}

	for _, tmpl := range templates {
		for _, doc := range docs {
			got := Render(tmpl, doc)
			assert.False(t, strings.ContainsAny(got, "{}"),
				"render of %q left placeholder braces: %q", tmpl, got)
		}
	}
}
