package catalogue

import "github.com/sells-group/taxrisk-cli/internal/model"

// Version of the builtin catalogue. Criterion IDs are stable: a new version
// may add criteria or tune weights, but never reuses an ID.
const Version = "2026.1"

// Builtin returns the builtin criterion catalogue.
func Builtin() *Catalogue {
	return &Catalogue{Version: Version, Criteria: builtinCriteria()}
}

func builtinCriteria() []CriterionDefinition {
	return []CriterionDefinition{
		{
			ID: 1, Code: "KRG-01", Category: model.CategoryLiquidity, Weight: 4,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldCashBalance},
				Denominator: []string{model.FieldCurrentLiabilities},
				Comparator:  CompareLT, Limit: 0.10,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium, EscalateAt: 2, Escalated: model.SeverityHigh},
			AnomalyKey: "liquidity_shortfall",
			LegalRefs:  []string{"Szt. 2000. évi C. tv. 46. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Cash coverage below 10% of current liabilities",
					Detail:         "Cash balance covers only {ratio} of current liabilities (limit {limit}).",
					Recommendation: "Review short-term financing and the realism of the reported cash position.",
				},
				"hu": {
					Title:          "Pénzeszközök a rövid lejáratú kötelezettségek 10%-a alatt",
					Detail:         "A pénzeszközök a rövid lejáratú kötelezettségek {ratio} részét fedezik (határérték {limit}).",
					Recommendation: "Vizsgálja felül a rövid távú finanszírozást és a kimutatott pénzeszköz-állomány realitását.",
				},
			},
		},
		{
			ID: 2, Code: "KRG-02", Category: model.CategoryLiquidity, Weight: 6,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:  []string{model.FieldCashBalance},
				Comparator: CompareLT, Limit: 0,
			},
			Severity:   SeverityRule{Base: model.SeverityCritical},
			AnomalyKey: "negative_cash",
			LegalRefs:  []string{"Szt. 2000. évi C. tv. 31. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Negative cash balance",
					Detail:         "Reported cash balance is {value}, which cannot occur with lawful bookkeeping.",
					Recommendation: "A negative cash balance usually signals unrecorded revenue or fabricated payments.",
				},
				"hu": {
					Title:          "Negatív pénztáregyenleg",
					Detail:         "A kimutatott pénztáregyenleg {value}, ami szabályos könyvvezetés mellett nem fordulhat elő.",
					Recommendation: "A negatív pénztáregyenleg jellemzően be nem vallott bevételre vagy fiktív kifizetésre utal.",
				},
			},
		},
		{
			ID: 3, Code: "KRG-03", Category: model.CategoryLiquidity, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldCashBalance, model.FieldReceivablesTrade},
				Denominator: []string{model.FieldCurrentLiabilities},
				Comparator:  CompareLT, Limit: 0.50,
			},
			Severity:   SeverityRule{Base: model.SeverityLow, EscalateAt: 2, Escalated: model.SeverityMedium},
			AnomalyKey: "liquidity_shortfall",
			Text: map[string]Text{
				"en": {
					Title:  "Quick ratio below 0.5",
					Detail: "Cash plus trade receivables cover {ratio} of current liabilities (limit {limit}).",
				},
				"hu": {
					Title:  "Likviditási gyorsráta 0,5 alatt",
					Detail: "A pénzeszközök és vevőkövetelések a rövid lejáratú kötelezettségek {ratio} részét fedezik (határérték {limit}).",
				},
			},
		},
		{
			ID: 4, Code: "KRG-04", Category: model.CategoryRelatedParty, Weight: 6,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldRelatedPartyReceivable},
				Denominator: []string{model.FieldEquity},
				Comparator:  CompareGT, Limit: 3,
			},
			Severity:   SeverityRule{Base: model.SeverityHigh, EscalateAt: 2, Escalated: model.SeverityCritical},
			AnomalyKey: "related_party_exposure",
			LegalRefs:  []string{"Tao. tv. 1996. évi LXXXI. 18. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Related-party receivables exceed 3x equity",
					Detail:         "Related-party receivables are {ratio}x equity (limit {limit}x).",
					Recommendation: "Check transfer pricing documentation and the commercial substance of intra-group balances.",
				},
				"hu": {
					Title:          "Kapcsolt követelések a saját tőke háromszorosa felett",
					Detail:         "A kapcsolt vállalkozással szembeni követelés a saját tőke {ratio}-szorosa (határérték {limit}).",
					Recommendation: "Ellenőrizze a transzferár-nyilvántartást és a csoporton belüli egyenlegek valós gazdasági tartalmát.",
				},
			},
		},
		{
			ID: 5, Code: "KRG-05", Category: model.CategoryRelatedParty, Weight: 5,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldRelatedPartyPayable},
				Denominator: []string{model.FieldEquity},
				Comparator:  CompareGT, Limit: 3,
			},
			Severity:   SeverityRule{Base: model.SeverityHigh, EscalateAt: 2, Escalated: model.SeverityCritical},
			AnomalyKey: "related_party_exposure",
			LegalRefs:  []string{"Tao. tv. 1996. évi LXXXI. 8. § (1) j)"},
			Text: map[string]Text{
				"en": {
					Title:  "Related-party payables exceed 3x equity",
					Detail: "Related-party payables are {ratio}x equity (limit {limit}x).",
				},
				"hu": {
					Title:  "Kapcsolt kötelezettségek a saját tőke háromszorosa felett",
					Detail: "A kapcsolt vállalkozással szembeni kötelezettség a saját tőke {ratio}-szorosa (határérték {limit}).",
				},
			},
		},
		{
			ID: 6, Code: "KRG-06", Category: model.CategoryRelatedParty, Weight: 3,
			Kind: RuleBooleanFlag,
			Flag: &FlagRule{Field: model.FieldRelatedPartyInterestFree},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "related_party_financing",
			Text: map[string]Text{
				"en": {
					Title:  "Interest-free related-party loans",
					Detail: "The taxpayer reports interest-free loans to or from related parties.",
				},
				"hu": {
					Title:  "Kamatmentes kapcsolt kölcsönök",
					Detail: "Az adózó kamatmentes kölcsönt nyújt kapcsolt vállalkozásnak vagy kap tőle.",
				},
			},
		},
		{
			ID: 7, Code: "KRG-07", Category: model.CategoryVAT, Weight: 5,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldVATCarryForward},
				Denominator: []string{model.FieldNetSales},
				Comparator:  CompareGT, Limit: 0.25,
			},
			Severity:    SeverityRule{Base: model.SeverityHigh, EscalateAt: 2, Escalated: model.SeverityCritical},
			AnomalyKey:  "vat_carry_forward",
			SeriesField: model.FieldVATCarryForwardMonthly,
			LegalRefs:   []string{"Áfa tv. 2007. évi CXXVII. 186. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Persistent VAT carry-forward above 25% of net sales",
					Detail:         "The VAT carry-forward is {ratio} of net sales (limit {limit}).",
					Recommendation: "Sustained reclaimable VAT without refund requests is a classic missing-trader indicator.",
				},
				"hu": {
					Title:          "Tartós áfa-visszaigénylés a nettó árbevétel 25%-a felett",
					Detail:         "A következő időszakra átvihető áfa a nettó árbevétel {ratio} része (határérték {limit}).",
					Recommendation: "A tartósan görgetett, vissza nem igényelt áfa jellemzően körhinta-csalásra utaló jel.",
				},
			},
		},
		{
			ID: 8, Code: "KRG-08", Category: model.CategoryVAT, Weight: 4,
			Kind:    RuleFormula,
			Formula: &FormulaRule{Name: FormulaVATBalanceGap},
			Severity:   SeverityRule{Base: model.SeverityMedium, EscalateAt: 2, Escalated: model.SeverityHigh},
			AnomalyKey: "vat_declaration_gap",
			LegalRefs:  []string{"Art. 2017. évi CL. 2. melléklet"},
			Text: map[string]Text{
				"en": {
					Title:  "Gap between declared and ledger VAT",
					Detail: "Declared VAT differs from the ledger VAT payable by {ratio} of the declared amount (limit {limit}).",
				},
				"hu": {
					Title:  "Eltérés a bevallott és a könyvelt áfa között",
					Detail: "A bevallott áfa a könyvelt fizetendő áfától a bevallott összeg {ratio} részével tér el (határérték {limit}).",
				},
			},
		},
		{
			ID: 9, Code: "KRG-09", Category: model.CategoryTrade, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldReceivablesOverdue},
				Denominator: []string{model.FieldReceivablesTrade},
				Comparator:  CompareGT, Limit: 0.40,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "overdue_receivables",
			Text: map[string]Text{
				"en": {
					Title:  "Overdue receivables above 40% of trade receivables",
					Detail: "Overdue receivables make up {ratio} of trade receivables (limit {limit}).",
				},
				"hu": {
					Title:  "Lejárt vevőkövetelések a teljes állomány 40%-a felett",
					Detail: "A lejárt követelések a vevőkövetelések {ratio} részét teszik ki (határérték {limit}).",
				},
			},
		},
		{
			ID: 10, Code: "KRG-10", Category: model.CategoryTrade, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldPayablesOverdue},
				Denominator: []string{model.FieldPayablesTrade},
				Comparator:  CompareGT, Limit: 0.40,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "overdue_payables",
			Text: map[string]Text{
				"en": {
					Title:  "Overdue payables above 40% of trade payables",
					Detail: "Overdue payables make up {ratio} of trade payables (limit {limit}).",
				},
				"hu": {
					Title:  "Lejárt szállítói tartozások a teljes állomány 40%-a felett",
					Detail: "A lejárt tartozások a szállítói kötelezettségek {ratio} részét teszik ki (határérték {limit}).",
				},
			},
		},
		{
			ID: 11, Code: "KRG-11", Category: model.CategoryTrade, Weight: 2,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldReceivablesTrade},
				Denominator: []string{model.FieldNetSales},
				Comparator:  CompareGTE, Limit: 0.50,
			},
			Severity:   SeverityRule{Base: model.SeverityLow},
			AnomalyKey: "receivables_concentration",
			Text: map[string]Text{
				"en": {
					Title:  "Trade receivables at or above half of net sales",
					Detail: "Trade receivables equal {ratio} of net sales (limit {limit}, inclusive).",
				},
				"hu": {
					Title:  "Vevőkövetelések a nettó árbevétel felét elérik",
					Detail: "A vevőkövetelések a nettó árbevétel {ratio} részét érik el (határérték {limit}, megengedő).",
				},
			},
		},
		{
			ID: 12, Code: "KRG-12", Category: model.CategoryTaxSocial, Weight: 5,
			Kind: RuleBooleanFlag,
			Flag: &FlagRule{Field: model.FieldTaxArrears},
			Severity:   SeverityRule{Base: model.SeverityHigh},
			AnomalyKey: "tax_arrears",
			LegalRefs:  []string{"Art. 2017. évi CL. 260. §"},
			Text: map[string]Text{
				"en": {
					Title:  "Registered tax arrears",
					Detail: "The taxpayer appears in the tax arrears register for the assessed period.",
				},
				"hu": {
					Title:  "Nyilvántartott adótartozás",
					Detail: "Az adózó a vizsgált időszakban szerepel az adótartozók nyilvántartásában.",
				},
			},
		},
		{
			ID: 13, Code: "KRG-13", Category: model.CategoryTaxSocial, Weight: 5,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:  []string{model.FieldSocialSecurityDebt},
				Comparator: CompareGT, Limit: 0,
			},
			Severity:   SeverityRule{Base: model.SeverityHigh},
			AnomalyKey: "social_security_debt",
			LegalRefs:  []string{"Tbj. 2019. évi CXXII. 77. §"},
			Text: map[string]Text{
				"en": {
					Title:  "Outstanding social security debt",
					Detail: "Outstanding social security debt of {value} at period end.",
				},
				"hu": {
					Title:  "Fennálló járuléktartozás",
					Detail: "Az időszak végén {value} összegű járuléktartozás áll fenn.",
				},
			},
		},
		{
			ID: 14, Code: "KRG-14", Category: model.CategoryTaxSocial, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:  []string{model.FieldPriorInspectionCount},
				Comparator: CompareGTE, Limit: 2,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "inspection_history",
			Text: map[string]Text{
				"en": {
					Title:  "Two or more prior inspection findings",
					Detail: "The taxpayer has {value} prior inspection findings (limit {limit}, inclusive).",
				},
				"hu": {
					Title:  "Két vagy több korábbi ellenőrzési megállapítás",
					Detail: "Az adózónál {value} korábbi ellenőrzési megállapítás történt (határérték {limit}, megengedő).",
				},
			},
		},
		{
			ID: 15, Code: "KRG-15", Category: model.CategoryTaxSocial, Weight: 8,
			Kind: RuleBooleanFlag,
			Flag: &FlagRule{Field: model.FieldFalsifiedDocumentFlag},
			Severity:   SeverityRule{Base: model.SeverityCritical},
			AnomalyKey: "document_fraud_history",
			LegalRefs:  []string{"Btk. 2012. évi C. 396. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Prior falsified-document finding",
					Detail:         "A prior inspection established the use of falsified documents.",
					Recommendation: "Prior document fraud findings warrant a full document-level review.",
				},
				"hu": {
					Title:          "Korábbi fiktív bizonylat megállapítás",
					Detail:         "Korábbi ellenőrzés fiktív bizonylatok felhasználását állapította meg.",
					Recommendation: "A korábbi bizonylati csalás teljes körű bizonylati szintű vizsgálatot indokol.",
				},
			},
		},
		{
			ID: 16, Code: "KRG-16", Category: model.CategoryCapital, Weight: 5,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldEquity},
				Denominator: []string{model.FieldRegisteredCapital},
				Comparator:  CompareLT, Limit: 0.50,
			},
			Severity:   SeverityRule{Base: model.SeverityHigh},
			AnomalyKey: "capital_impairment",
			LegalRefs:  []string{"Ptk. 2013. évi V. 3:189. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Equity below half of registered capital",
					Detail:         "Equity is {ratio} of registered capital (limit {limit}).",
					Recommendation: "Statutory capital-loss rules require member action; verify whether it happened.",
				},
				"hu": {
					Title:          "Saját tőke a jegyzett tőke fele alatt",
					Detail:         "A saját tőke a jegyzett tőke {ratio} része (határérték {limit}).",
					Recommendation: "A tőkevesztési szabályok taggyűlési intézkedést írnak elő; ellenőrizze, megtörtént-e.",
				},
			},
		},
		{
			ID: 17, Code: "KRG-17", Category: model.CategoryCapital, Weight: 7,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:  []string{model.FieldEquity},
				Comparator: CompareLT, Limit: 0,
			},
			Severity:   SeverityRule{Base: model.SeverityCritical},
			AnomalyKey: "capital_impairment",
			LegalRefs:  []string{"Ptk. 2013. évi V. 3:189. §"},
			Text: map[string]Text{
				"en": {
					Title:  "Negative equity",
					Detail: "Reported equity is {value}.",
				},
				"hu": {
					Title:  "Negatív saját tőke",
					Detail: "A kimutatott saját tőke {value}.",
				},
			},
		},
		{
			ID: 18, Code: "KRG-18", Category: model.CategoryIncome, Weight: 4,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldCostOfSales},
				Denominator: []string{model.FieldNetSales},
				Comparator:  CompareGT, Limit: 1,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium, EscalateAt: 1.5, Escalated: model.SeverityHigh},
			AnomalyKey: "trading_below_cost",
			Text: map[string]Text{
				"en": {
					Title:  "Cost of sales exceeds net sales",
					Detail: "Cost of sales is {ratio}x net sales (limit {limit}x).",
				},
				"hu": {
					Title:  "Az eladott áruk beszerzési értéke meghaladja az árbevételt",
					Detail: "Az ELÁBÉ a nettó árbevétel {ratio}-szorosa (határérték {limit}).",
				},
			},
		},
		{
			ID: 19, Code: "KRG-19", Category: model.CategoryIncome, Weight: 4,
			Kind: RulePeerComparison,
			Peer: &PeerRule{Metric: MetricProfitMargin, Direction: PeerBelow, ToleranceFrac: 0.5},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "profitability_outlier",
			Text: map[string]Text{
				"en": {
					Title:  "Profit margin far below sector average",
					Detail: "Profit margin of {value}% against a sector average of {sector_avg}% ({sector}).",
				},
				"hu": {
					Title:  "Az ágazati átlagnál lényegesen alacsonyabb jövedelmezőség",
					Detail: "A jövedelmezőség {value}%, az ágazati átlag {sector_avg}% ({sector}).",
				},
			},
		},
		{
			ID: 20, Code: "KRG-20", Category: model.CategoryIncome, Weight: 2,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldOtherIncome},
				Denominator: []string{model.FieldNetSales},
				Comparator:  CompareGT, Limit: 0.30,
			},
			Severity:   SeverityRule{Base: model.SeverityLow},
			AnomalyKey: "other_income_concentration",
			Text: map[string]Text{
				"en": {
					Title:  "Other income above 30% of net sales",
					Detail: "Other income equals {ratio} of net sales (limit {limit}).",
				},
				"hu": {
					Title:  "Egyéb bevételek a nettó árbevétel 30%-a felett",
					Detail: "Az egyéb bevételek a nettó árbevétel {ratio} részét teszik ki (határérték {limit}).",
				},
			},
		},
		{
			ID: 21, Code: "KRG-21", Category: model.CategoryInventory, Weight: 3,
			Kind: RulePeerComparison,
			Peer: &PeerRule{Metric: MetricInventoryToSales, Direction: PeerAbove, ToleranceFrac: 1.0},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "inventory_outlier",
			Text: map[string]Text{
				"en": {
					Title:  "Inventory level far above sector average",
					Detail: "Inventory-to-sales of {value} against a sector average of {sector_avg} ({sector}).",
				},
				"hu": {
					Title:  "Az ágazati átlagot jelentősen meghaladó készletszint",
					Detail: "A készlet/árbevétel arány {value}, az ágazati átlag {sector_avg} ({sector}).",
				},
			},
		},
		{
			ID: 22, Code: "KRG-22", Category: model.CategoryInventory, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldInventoryWritedown},
				Denominator: []string{model.FieldInventory},
				Comparator:  CompareGT, Limit: 0.20,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "inventory_writedown",
			Text: map[string]Text{
				"en": {
					Title:  "Inventory write-down above 20% of inventory",
					Detail: "Write-downs equal {ratio} of closing inventory (limit {limit}).",
				},
				"hu": {
					Title:  "Készlet-értékvesztés a záró készlet 20%-a felett",
					Detail: "Az értékvesztés a záró készlet {ratio} része (határérték {limit}).",
				},
			},
		},
		{
			ID: 23, Code: "KRG-23", Category: model.CategoryFixedAssets, Weight: 2,
			Kind:    RuleFormula,
			Formula: &FormulaRule{Name: FormulaDepreciationOutlier},
			Severity:   SeverityRule{Base: model.SeverityLow},
			AnomalyKey: "depreciation_anomaly",
			Text: map[string]Text{
				"en": {
					Title:  "Depreciation rate outside the plausible band",
					Detail: "Depreciation equals {ratio} of gross fixed assets, outside the 1%-50% band.",
				},
				"hu": {
					Title:  "A szokásos sávon kívüli értékcsökkenési kulcs",
					Detail: "Az értékcsökkenés a bruttó tárgyi eszközök {ratio} része, az 1%-50% sávon kívül.",
				},
			},
		},
		{
			ID: 24, Code: "KRG-24", Category: model.CategoryFixedAssets, Weight: 3,
			Kind: RuleThresholdRatio,
			Threshold: &ThresholdRule{
				Numerator:   []string{model.FieldFixedAssetDisposals},
				Denominator: []string{model.FieldFixedAssetsGross},
				Comparator:  CompareGT, Limit: 0.50,
			},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "asset_disposals",
			Text: map[string]Text{
				"en": {
					Title:  "Fixed-asset disposals above half of gross assets",
					Detail: "Disposals equal {ratio} of gross fixed assets (limit {limit}).",
				},
				"hu": {
					Title:  "Tárgyieszköz-kivezetések a bruttó érték fele felett",
					Detail: "A kivezetések a bruttó tárgyieszköz-érték {ratio} részét teszik ki (határérték {limit}).",
				},
			},
		},
		{
			ID: 25, Code: "KRG-25", Category: model.CategoryIncome, Weight: 4,
			Kind: RulePeerComparison,
			Peer: &PeerRule{Metric: MetricAvgWage, Direction: PeerBelow, ToleranceFrac: 0.4},
			Severity:   SeverityRule{Base: model.SeverityMedium},
			AnomalyKey: "wage_outlier",
			LegalRefs:  []string{"Tbj. 2019. évi CXXII. 27. §"},
			Text: map[string]Text{
				"en": {
					Title:          "Average wage far below sector average",
					Detail:         "Average monthly wage of {value} against a sector average of {sector_avg} ({sector}).",
					Recommendation: "Wages well under the sector norm often mask envelope-wage arrangements.",
				},
				"hu": {
					Title:          "Az ágazati átlagnál lényegesen alacsonyabb átlagbér",
					Detail:         "Az átlagos havi bér {value}, az ágazati átlag {sector_avg} ({sector}).",
					Recommendation: "Az ágazati átlagot jelentősen elmaradó bérszint gyakran zsebbe fizetést takar.",
				},
			},
		},
	}
}
