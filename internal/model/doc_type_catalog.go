package model

// DocumentTypeSpec describes a document type for classification collaborators:
// what the type means, the keywords that hint at it, and which fields are
// worth extracting for naming.
type DocumentTypeSpec struct {
	Type          DocumentType `json:"type"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Keywords      []string     `json:"keywords"`
	ExtractFields []string     `json:"extract_fields"`
}

// DocumentTypeCatalog returns the specs for every supported document type,
// in catalog order.
func DocumentTypeCatalog() []DocumentTypeSpec {
	return []DocumentTypeSpec{
		{
			Type:          DocTypeReceipt,
			Name:          "Receipt",
			Description:   "Purchase receipts from stores, restaurants, online orders",
			Keywords:      []string{"receipt", "purchase", "order", "transaction", "payment"},
			ExtractFields: []string{"date", "merchant", "amount", "description"},
		},
		{
			Type:          DocTypeBill,
			Name:          "Bill",
			Description:   "Utility bills, service provider statements, subscription charges",
			Keywords:      []string{"bill", "statement", "due", "utility", "service"},
			ExtractFields: []string{"date", "institution", "amount", "account_number"},
		},
		{
			Type:          DocTypeTaxDocument,
			Name:          "Tax Document",
			Description:   "Tax forms like W-2, 1099, K-1, tax returns, tax statements",
			Keywords:      []string{"tax", "w-2", "w2", "1099", "k-1", "k1", "irs", "return", "1040"},
			ExtractFields: []string{"year", "form_type", "institution"},
		},
		{
			Type:          DocTypeBankStatement,
			Name:          "Bank Statement",
			Description:   "Bank account statements, transaction histories",
			Keywords:      []string{"bank", "statement", "account", "balance", "transaction"},
			ExtractFields: []string{"date", "institution", "account_number"},
		},
		{
			Type:          DocTypeInvoice,
			Name:          "Invoice",
			Description:   "Business invoices, billing statements",
			Keywords:      []string{"invoice", "inv", "billing", "due"},
			ExtractFields: []string{"date", "merchant", "amount", "description"},
		},
		{
			Type:          DocTypeContract,
			Name:          "Contract",
			Description:   "Legal contracts, agreements, terms of service",
			Keywords:      []string{"contract", "agreement", "terms", "signed"},
			ExtractFields: []string{"date", "institution", "description"},
		},
		{
			Type:          DocTypeMedical,
			Name:          "Medical Document",
			Description:   "Medical records, lab results, prescriptions, EOBs",
			Keywords:      []string{"medical", "health", "doctor", "hospital", "lab", "prescription", "eob"},
			ExtractFields: []string{"date", "institution", "description"},
		},
		{
			Type:          DocTypeInsurance,
			Name:          "Insurance Document",
			Description:   "Insurance policies, claims, ID cards",
			Keywords:      []string{"insurance", "policy", "claim", "coverage", "premium"},
			ExtractFields: []string{"date", "institution", "account_number", "description"},
		},
		{
			Type:          DocTypeInvestment,
			Name:          "Investment Document",
			Description:   "Brokerage statements, 401k, IRA, stock transactions",
			Keywords:      []string{"investment", "brokerage", "401k", "ira", "stock", "dividend", "capital gain"},
			ExtractFields: []string{"date", "institution", "account_number"},
		},
		{
			Type:          DocTypePayslip,
			Name:          "Pay Slip",
			Description:   "Paycheck stubs, salary statements",
			Keywords:      []string{"pay", "salary", "wage", "paycheck", "stub", "earnings"},
			ExtractFields: []string{"date", "institution", "amount"},
		},
		{
			Type:          DocTypeIdentity,
			Name:          "Identity Document",
			Description:   "ID cards, passports, licenses, certifications",
			Keywords:      []string{"passport", "license", "id", "identification", "certificate"},
			ExtractFields: []string{"date", "description"},
		},
		{
			Type:          DocTypeCorrespondence,
			Name:          "Correspondence",
			Description:   "Letters, notices, official communications",
			Keywords:      []string{"letter", "notice", "dear", "sincerely", "correspondence"},
			ExtractFields: []string{"date", "institution", "description"},
		},
		{
			Type:          DocTypeManual,
			Name:          "Manual/Guide",
			Description:   "Product manuals, user guides, instructions",
			Keywords:      []string{"manual", "guide", "instructions", "user", "setup"},
			ExtractFields: []string{"description", "institution"},
		},
		{
			Type:          DocTypePhoto,
			Name:          "Photo",
			Description:   "Photographs, images, screenshots",
			Keywords:      []string{"photo", "image", "picture", "screenshot"},
			ExtractFields: []string{"date", "description"},
		},
		{
			Type:          DocTypeGeneral,
			Name:          "General Document",
			Description:   "Documents that don't fit other categories",
			Keywords:      []string{},
			ExtractFields: []string{"date", "description"},
		},
	}
}
