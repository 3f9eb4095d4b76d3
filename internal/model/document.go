// Package model defines the core data structures for the papers application.
package model

import (
	"strings"
	"time"
)

// DocumentType classifies a document for naming purposes.
type DocumentType string

// Supported document types.
const (
	DocTypeReceipt        DocumentType = "receipt"
	DocTypeBill           DocumentType = "bill"
	DocTypeTaxDocument    DocumentType = "tax_document"
	DocTypeBankStatement  DocumentType = "bank_statement"
	DocTypeInvoice        DocumentType = "invoice"
	DocTypeContract       DocumentType = "contract"
	DocTypeMedical        DocumentType = "medical"
	DocTypeInsurance      DocumentType = "insurance"
	DocTypeInvestment     DocumentType = "investment"
	DocTypePayslip        DocumentType = "payslip"
	DocTypeIdentity       DocumentType = "identity"
	DocTypeCorrespondence DocumentType = "correspondence"
	DocTypeManual         DocumentType = "manual"
	DocTypePhoto          DocumentType = "photo"
	DocTypeGeneral        DocumentType = "general"
)

// AllDocumentTypes lists every supported document type in catalog order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocTypeReceipt,
		DocTypeBill,
		DocTypeTaxDocument,
		DocTypeBankStatement,
		DocTypeInvoice,
		DocTypeContract,
		DocTypeMedical,
		DocTypeInsurance,
		DocTypeInvestment,
		DocTypePayslip,
		DocTypeIdentity,
		DocTypeCorrespondence,
		DocTypeManual,
		DocTypePhoto,
		DocTypeGeneral,
	}
}

// ParseDocumentType converts free-form text to a DocumentType. Matching is
// case-insensitive and treats spaces as underscores. Unrecognized input maps
// to DocTypeGeneral; the function never fails.
func ParseDocumentType(value string) DocumentType {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
	for _, dt := range AllDocumentTypes() {
		if normalized == string(dt) {
			return dt
		}
	}
	return DocTypeGeneral
}

func (dt DocumentType) String() string {
	return string(dt)
}

// DocumentInfo describes one physical file for naming purposes. It is built
// per rename request from classifier output and is never persisted; the
// pattern engine only reads from it.
type DocumentInfo struct {
	FilePath     string       `json:"file_path"`
	OriginalName string       `json:"original_name"`
	DocumentType DocumentType `json:"document_type"`

	// Extracted fields, all optional.
	Date          string `json:"date,omitempty"` // ISO YYYY-MM-DD
	Year          string `json:"year,omitempty"`
	Month         string `json:"month,omitempty"`
	Merchant      string `json:"merchant,omitempty"`
	Amount        string `json:"amount,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	FormType      string `json:"form_type,omitempty"`
	Institution   string `json:"institution,omitempty"`
	Description   string `json:"description,omitempty"`

	// Non-semantic metadata.
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`

	Confidence float64 `json:"confidence,omitempty"`
}

// Tokens derives the token values available for pattern substitution.
// Fields are processed in a fixed order so overlapping tokens overwrite
// deterministically; in particular a year field always wins the Date:YYYY
// token over a value derived from the date field.
func (d DocumentInfo) Tokens() map[string]string {
	values := make(map[string]string)

	if d.Date != "" {
		values["Date"] = d.Date
		values["Date:YYYY-MM-DD"] = d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			values["Date:YYYY"] = t.Format("2006")
			values["Date:YYYY-MM"] = t.Format("2006-01")
			values["Date:MM-DD"] = t.Format("01-02")
		}
	}

	if d.Year != "" {
		values["Year"] = d.Year
		values["Date:YYYY"] = d.Year
	}

	if d.Month != "" {
		values["Month"] = d.Month
	}

	if d.Merchant != "" {
		values["Merchant"] = d.Merchant
		values["Vendor"] = d.Merchant
	}

	if d.Amount != "" {
		values["Amount"] = d.Amount
	}

	if d.AccountNumber != "" {
		values["Account Number"] = d.AccountNumber
		values["Last 4 Digits"] = lastN(d.AccountNumber, 4)
	}

	if d.FormType != "" {
		values["Form Type"] = d.FormType
		values["Form"] = d.FormType
	}

	if d.Institution != "" {
		values["Institution"] = d.Institution
		values["Bank Name"] = d.Institution
		values["Service Provider"] = d.Institution
	}

	if d.Description != "" {
		values["Description"] = d.Description
		values["Title"] = d.Description
		values["Subject"] = d.Description
		values["Items"] = d.Description
	}

	return values
}

func lastN(s string, n int) string {
	runes := []rune(s)
	if len(runes) < n {
		return s
	}
	return string(runes[len(runes)-n:])
}

// DocumentInfoFromFields builds a DocumentInfo from an untyped field mapping,
// the shape classifier output arrives in at the tool boundary. Unknown keys
// are ignored and absent fields stay empty; only the document type is coerced.
func DocumentInfoFromFields(fields map[string]any) DocumentInfo {
	doc := DocumentInfo{
		FilePath:      stringField(fields, "file_path"),
		OriginalName:  stringField(fields, "original_name"),
		DocumentType:  ParseDocumentType(stringField(fields, "document_type")),
		Date:          stringField(fields, "date"),
		Year:          stringField(fields, "year"),
		Month:         stringField(fields, "month"),
		Merchant:      stringField(fields, "merchant"),
		Amount:        stringField(fields, "amount"),
		AccountNumber: stringField(fields, "account_number"),
		FormType:      stringField(fields, "form_type"),
		Institution:   stringField(fields, "institution"),
		Description:   stringField(fields, "description"),
		MimeType:      stringField(fields, "mime_type"),
	}

	switch v := fields["file_size"].(type) {
	case float64:
		doc.FileSize = int64(v)
	case int64:
		doc.FileSize = v
	case int:
		doc.FileSize = int64(v)
	}

	switch v := fields["confidence"].(type) {
	case float64:
		doc.Confidence = v
	case int:
		doc.Confidence = float64(v)
	}

	return doc
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
