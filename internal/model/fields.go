package model

// Canonical snapshot field keys. The data-assembly collaborator maps source
// documents onto these names; the engine never sees raw documents.
const (
	FieldSectorCode = "sector_code"

	// Liquidity.
	FieldCashBalance        = "cash_balance"
	FieldCurrentLiabilities = "current_liabilities"

	// Trade receivables / payables.
	FieldReceivablesTrade   = "receivables_trade"
	FieldReceivablesOverdue = "receivables_overdue"
	FieldPayablesTrade      = "payables_trade"
	FieldPayablesOverdue    = "payables_overdue"

	// Related party.
	FieldRelatedPartyReceivable   = "related_party_receivable"
	FieldRelatedPartyPayable      = "related_party_payable"
	FieldRelatedPartyInterestFree = "related_party_loans_interest_free"

	// VAT.
	FieldVATCarryForward        = "vat_carry_forward"
	FieldVATCarryForwardMonthly = "vat_carry_forward_monthly"
	FieldVATPayable             = "vat_payable"
	FieldVATDeclared            = "vat_declared"

	// Tax / social security and historical flags.
	FieldTaxArrears             = "has_tax_arrears"
	FieldSocialSecurityDebt     = "social_security_debt"
	FieldPriorInspectionCount   = "prior_inspection_findings"
	FieldFalsifiedDocumentFlag  = "has_falsified_document_finding"

	// Capital / equity.
	FieldEquity            = "equity"
	FieldRegisteredCapital = "registered_capital"

	// Income / expense.
	FieldNetSales          = "net_sales"
	FieldCostOfSales       = "cost_of_sales"
	FieldOperatingExpenses = "operating_expenses"
	FieldOtherIncome       = "other_income"
	FieldAvgWage           = "avg_monthly_wage"
	FieldHeadcount         = "headcount"

	// Inventory.
	FieldInventory          = "inventory"
	FieldInventoryWritedown = "inventory_writedown"

	// Fixed assets.
	FieldFixedAssetsGross    = "fixed_assets_gross"
	FieldDepreciation        = "depreciation"
	FieldFixedAssetDisposals = "fixed_asset_disposals"
)
