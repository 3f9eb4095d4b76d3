package store

import (
	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

// defaultPattern is one entry of the built-in pattern catalog.
type defaultPattern struct {
	ID            string
	DocumentType  model.DocumentType
	Pattern       string
	Name          string
	Description   string
	MatchKeywords []string
	Priority      int
}

// defaultPatterns returns the built-in pattern catalog. Seeding inserts each
// entry only when no rule with its ID exists yet, so the catalog can be
// re-applied on every store construction without clobbering user edits.
func defaultPatterns() []defaultPattern {
	return []defaultPattern{
		{
			ID:           "receipt_default",
			DocumentType: model.DocTypeReceipt,
			Pattern:      "{Date:YYYY-MM-DD} - {Merchant} - {Amount}",
			Name:         "Standard Receipt",
			Description:  "Date, merchant name, and amount",
		},
		{
			ID:           "receipt_detailed",
			DocumentType: model.DocTypeReceipt,
			Pattern:      "{Date:YYYY-MM-DD} - {Merchant} - {Items} - {Amount}",
			Name:         "Detailed Receipt",
			Description:  "Includes item description",
			Priority:     -1,
		},
		{
			ID:           "bill_default",
			DocumentType: model.DocTypeBill,
			Pattern:      "{Date:YYYY-MM} - {Service Provider} - {Amount}",
			Name:         "Standard Bill",
			Description:  "Month, provider, and amount",
		},
		{
			ID:           "bill_with_account",
			DocumentType: model.DocTypeBill,
			Pattern:      "{Date:YYYY-MM} - {Service Provider} - {Account Number}",
			Name:         "Bill with Account",
			Description:  "Includes account number",
			Priority:     -1,
		},
		{
			ID:            "tax_k1",
			DocumentType:  model.DocTypeTaxDocument,
			Pattern:       "{Year} - K-1 - {Institution}",
			Name:          "K-1 Form",
			Description:   "K-1 partnership/S-corp tax forms",
			MatchKeywords: []string{"k-1", "k1", "schedule k"},
			Priority:      10,
		},
		{
			ID:            "tax_1099",
			DocumentType:  model.DocTypeTaxDocument,
			Pattern:       "{Year} - 1099 - {Institution}",
			Name:          "1099 Form",
			Description:   "1099 tax forms",
			MatchKeywords: []string{"1099"},
			Priority:      10,
		},
		{
			ID:            "tax_w2",
			DocumentType:  model.DocTypeTaxDocument,
			Pattern:       "{Year} - W-2 - {Institution}",
			Name:          "W-2 Form",
			Description:   "W-2 wage statements",
			MatchKeywords: []string{"w-2", "w2"},
			Priority:      10,
		},
		{
			ID:           "tax_default",
			DocumentType: model.DocTypeTaxDocument,
			Pattern:      "{Year} - {Form Type} - {Institution}",
			Name:         "Standard Tax Document",
			Description:  "Generic tax document pattern",
		},
		{
			ID:           "bank_default",
			DocumentType: model.DocTypeBankStatement,
			Pattern:      "{Date:YYYY-MM} - {Bank Name} - Statement",
			Name:         "Monthly Statement",
			Description:  "Bank monthly statement",
		},
		{
			ID:           "bank_with_account",
			DocumentType: model.DocTypeBankStatement,
			Pattern:      "{Date:YYYY-MM} - {Bank Name} - {Last 4 Digits}",
			Name:         "Statement with Account",
			Description:  "Includes last 4 digits of account",
			Priority:     -1,
		},
		{
			ID:           "invoice_default",
			DocumentType: model.DocTypeInvoice,
			Pattern:      "{Date:YYYY-MM-DD} - Invoice - {Merchant} - {Amount}",
			Name:         "Standard Invoice",
			Description:  "Date, vendor, and amount",
		},
		{
			ID:           "contract_default",
			DocumentType: model.DocTypeContract,
			Pattern:      "{Date:YYYY-MM-DD} - {Institution} - {Description}",
			Name:         "Standard Contract",
			Description:  "Date, party, and description",
		},
		{
			ID:           "medical_default",
			DocumentType: model.DocTypeMedical,
			Pattern:      "{Date:YYYY-MM-DD} - {Institution} - {Description}",
			Name:         "Standard Medical",
			Description:  "Date, provider, and description",
		},
		{
			ID:            "medical_eob",
			DocumentType:  model.DocTypeMedical,
			Pattern:       "{Date:YYYY-MM-DD} - EOB - {Institution}",
			Name:          "Explanation of Benefits",
			Description:   "Insurance EOB documents",
			MatchKeywords: []string{"eob", "explanation of benefits"},
			Priority:      10,
		},
		{
			ID:           "insurance_default",
			DocumentType: model.DocTypeInsurance,
			Pattern:      "{Date:YYYY} - {Institution} - {Description}",
			Name:         "Standard Insurance",
			Description:  "Year, insurer, and description",
		},
		{
			ID:            "insurance_policy",
			DocumentType:  model.DocTypeInsurance,
			Pattern:       "{Date:YYYY} - {Institution} - Policy - {Account Number}",
			Name:          "Insurance Policy",
			Description:   "Policy document with number",
			MatchKeywords: []string{"policy"},
			Priority:      5,
		},
		{
			ID:           "investment_statement",
			DocumentType: model.DocTypeInvestment,
			Pattern:      "{Date:YYYY-MM} - {Institution} - Statement",
			Name:         "Investment Statement",
			Description:  "Monthly/quarterly statement",
		},
		{
			ID:            "investment_trade",
			DocumentType:  model.DocTypeInvestment,
			Pattern:       "{Date:YYYY-MM-DD} - {Institution} - {Description}",
			Name:          "Trade Confirmation",
			Description:   "Individual trade confirmations",
			MatchKeywords: []string{"confirmation", "trade", "buy", "sell"},
			Priority:      5,
		},
		{
			ID:           "payslip_default",
			DocumentType: model.DocTypePayslip,
			Pattern:      "{Date:YYYY-MM-DD} - {Institution} - Pay Stub",
			Name:         "Standard Pay Stub",
			Description:  "Pay date and employer",
		},
		{
			ID:           "identity_default",
			DocumentType: model.DocTypeIdentity,
			Pattern:      "{Description} - {Date:YYYY}",
			Name:         "Identity Document",
			Description:  "Document type and year",
		},
		{
			ID:           "correspondence_default",
			DocumentType: model.DocTypeCorrespondence,
			Pattern:      "{Date:YYYY-MM-DD} - {Institution} - {Description}",
			Name:         "Standard Correspondence",
			Description:  "Date, sender, and subject",
		},
		{
			ID:           "manual_default",
			DocumentType: model.DocTypeManual,
			Pattern:      "{Institution} - {Description} - Manual",
			Name:         "Product Manual",
			Description:  "Brand and product name",
		},
		{
			ID:           "photo_default",
			DocumentType: model.DocTypePhoto,
			Pattern:      "{Date:YYYY-MM-DD} - {Description}",
			Name:         "Standard Photo",
			Description:  "Date and description",
		},
		{
			ID:           "general_default",
			DocumentType: model.DocTypeGeneral,
			Pattern:      "{Date:YYYY-MM-DD} - {Description}",
			Name:         "General Document",
			Description:  "Date and description",
		},
	}
}
