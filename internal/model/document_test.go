package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  DocumentType
	}{
		{name: "exact match", input: "receipt", want: DocTypeReceipt},
		{name: "uppercase", input: "RECEIPT", want: DocTypeReceipt},
		{name: "spaces become underscores", input: "tax document", want: DocTypeTaxDocument},
		{name: "mixed case with spaces", input: "Bank Statement", want: DocTypeBankStatement},
		{name: "surrounding whitespace", input: "  invoice  ", want: DocTypeInvoice},
		{name: "unknown falls back to general", input: "spreadsheet", want: DocTypeGeneral},
		{name: "empty falls back to general", input: "", want: DocTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDocumentType(tt.input))
		})
	}
}

func TestDocumentInfo_Tokens(t *testing.T) {
	tests := []struct {
		name    string
		doc     DocumentInfo
		want    map[string]string
		missing []string
	}{
		{
			name: "date derives all formats",
			doc:  DocumentInfo{Date: "2024-03-15"},
			want: map[string]string{
				"Date":            "2024-03-15",
				"Date:YYYY-MM-DD": "2024-03-15",
				"Date:YYYY":       "2024",
				"Date:YYYY-MM":    "2024-03",
				"Date:MM-DD":      "03-15",
			},
		},
		{
			name: "unparseable date keeps only raw tokens",
			doc:  DocumentInfo{Date: "March 2024"},
			want: map[string]string{
				"Date":            "March 2024",
				"Date:YYYY-MM-DD": "March 2024",
			},
			missing: []string{"Date:YYYY", "Date:YYYY-MM", "Date:MM-DD"},
		},
		{
			name: "year overrides date-derived Date:YYYY",
			doc:  DocumentInfo{Date: "2024-03-15", Year: "2023"},
			want: map[string]string{
				"Year":      "2023",
				"Date:YYYY": "2023",
				"Date":      "2024-03-15",
			},
		},
		{
			name: "merchant doubles as vendor",
			doc:  DocumentInfo{Merchant: "Whole Foods"},
			want: map[string]string{
				"Merchant": "Whole Foods",
				"Vendor":   "Whole Foods",
			},
		},
		{
			name: "account number last four digits",
			doc:  DocumentInfo{AccountNumber: "12345678"},
			want: map[string]string{
				"Account Number": "12345678",
				"Last 4 Digits":  "5678",
			},
		},
		{
			name: "short account number stays whole",
			doc:  DocumentInfo{AccountNumber: "123"},
			want: map[string]string{
				"Last 4 Digits": "123",
			},
		},
		{
			name: "institution aliases",
			doc:  DocumentInfo{Institution: "Chase"},
			want: map[string]string{
				"Institution":      "Chase",
				"Bank Name":        "Chase",
				"Service Provider": "Chase",
			},
		},
		{
			name: "description aliases",
			doc:  DocumentInfo{Description: "groceries"},
			want: map[string]string{
				"Description": "groceries",
				"Title":       "groceries",
				"Subject":     "groceries",
				"Items":       "groceries",
			},
		},
		{
			name:    "absent fields produce no tokens",
			doc:     DocumentInfo{},
			want:    map[string]string{},
			missing: []string{"Date", "Year", "Merchant", "Amount", "Institution"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tt.doc.Tokens()
			for k, v := range tt.want {
				assert.Equal(t, v, tokens[k], "token %q", k)
			}
			for _, k := range tt.missing {
				_, ok := tokens[k]
				assert.False(t, ok, "token %q should be absent", k)
			}
		})
	}
}

func TestDocumentInfoFromFields(t *testing.T) {
	doc := DocumentInfoFromFields(map[string]any{
		"file_path":     "/tmp/scan0001.pdf",
		"original_name": "scan0001.pdf",
		"document_type": "Tax Document",
		"year":          "2023",
		"institution":   "Fidelity",
		"file_size":     float64(2048),
		"confidence":    0.92,
		"unknown_key":   "ignored",
	})

	assert.Equal(t, DocTypeTaxDocument, doc.DocumentType)
	assert.Equal(t, "/tmp/scan0001.pdf", doc.FilePath)
	assert.Equal(t, "2023", doc.Year)
	assert.Equal(t, "Fidelity", doc.Institution)
	assert.Equal(t, int64(2048), doc.FileSize)
	assert.InDelta(t, 0.92, doc.Confidence, 0.001)
}

func TestDocumentTypeCatalog(t *testing.T) {
	catalog := DocumentTypeCatalog()
	assert.Len(t, catalog, len(AllDocumentTypes()))

	seen := make(map[DocumentType]bool)
	for _, spec := range catalog {
		assert.NotEmpty(t, spec.Name)
		assert.NotEmpty(t, spec.Description)
		assert.False(t, seen[spec.Type], "duplicate catalog entry for %s", spec.Type)
		seen[spec.Type] = true
	}
}
