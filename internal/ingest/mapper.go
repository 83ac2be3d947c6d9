package ingest

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"claimlens/internal/model"
)

// claimConcepts is the canonical concept table for the claims sheet: one
// entry per field, with every accepted source spelling, consumed uniformly
// instead of per-field fallback chains.
var claimConcepts = []Concept{
	{Key: "clmId", Names: []string{"clmId", "Claim ID", "claimId", "clm_id", "Claim Number", "claimNumber", "Claim Identifier", "source"}, Keywords: []string{"claim", "id"}},
	{Key: "aaInd", Names: []string{"aaInd", "AA Ind", "aa_ind"}, Default: "N"},
	{Key: "priority", Names: []string{"Priority", "priority"}},
	{Key: "score", Names: []string{"Score", "score"}},
	{Key: "acctNum", Names: []string{"acctNum", "Account Number", "acct_num"}},
	{Key: "billTyCd", Names: []string{"billTyCd", "Bill Type", "bill_ty_cd"}},
	{Key: "clmBeginDt", Names: []string{"clmBeginDt", "Claim Begin Date"}, Date: true},
	{Key: "clmEndDt", Names: []string{"clmEndDt", "Claim End Date"}, Date: true},
	{Key: "clmTyCd", Names: []string{"clmTyCd", "Claim Type"}},
	{Key: "formTyCd", Names: []string{"formTyCd", "Form Type"}},
	{Key: "paperEdiCd", Names: []string{"paperEdiCd", "Paper EDI", "Input Method"}},
	{Key: "rcvdTs", Names: []string{"rcvdTs", "Received Date", "Received Timestamp"}, Date: true},
	{Key: "billProvCity", Names: []string{"billProv_city(pie chart)", "billProv_city", "Provider City"}},
	{Key: "billProvSpecialty", Names: []string{"billProv_dervCpfTyCd2", "Provider Specialty"}},
	{Key: "billProvStCd", Names: []string{"billProv_stCd", "Provider State"}},
	{Key: "billProvNm", Names: []string{"billProv_nm", "Provider Name"}},
	{Key: "billProvParInd", Names: []string{"billProv_dervParInd", "Provider Participation"}},
	{Key: "billProvNtCd", Names: []string{"billProv_ntCd", "Provider Network"}},
	{Key: "totChrgAmt", Names: []string{"clmAmt_totChrgAmt", "Total Charged Amount", "totChrgAmt"}},
	{Key: "totAllowAmt", Names: []string{"clmAmt_totAllowAmt", "Total Allowed Amount", "totAllowAmt"}},
	{Key: "patAge", Names: []string{"patDemo_patAge", "Patient Age"}},
	{Key: "patGndr", Names: []string{"patDemo_patGndr", "Patient Gender"}},
	{Key: "benopt", Names: []string{"benopt", "Benefit Option"}},
	{Key: "auditFlag", Names: []string{"Audit Flag", "auditFlag", "AuditFlag", "audit flag", "AUDIT FLAG", "Audit_Flag"}, Keywords: []string{"audit", "flag"}, BlankSensitive: true},
	{Key: "appealId", Names: []string{"Appeal ID", "appealId", "AppealId", "AppealID", "Appeal_ID"}, Keywords: []string{"appeal", "id"}},
	{Key: "appealReason", Names: []string{"Appeal Reason", "appealReason", "AppealReason", "Appeal_Reason"}, Keywords: []string{"appeal", "reason"}},
	{Key: "claimStatus", Names: []string{"Claim Status", "claimStatus", "ClaimStatus", "Claim_Status"}, Keywords: []string{"claim", "status"}},
	{Key: "historicalAdjRate", Names: []string{"historical_adj_rate_by_version", "historicalAdjRateByVersion"}, Keywords: []string{"historical", "adj", "rate"}},
	{Key: "benefitPlanUpdateDate", Names: []string{"Benefit plan update date", "benefitPlanUpdateDate", "Benefit_Plan_Update_Date"}, Keywords: []string{"benefit", "plan", "update", "date"}, Date: true},
	{Key: "providerContractUpdateDate", Names: []string{"Billing Provider contract update date", "billingProviderContractUpdateDate", "Billing_Provider_Contract_Update_Date"}, Keywords: []string{"billing", "provider", "contract", "update", "date"}, Date: true},
	{Key: "claimPaidDate", Names: []string{"Claim Paid date", "claimPaidDate", "Claim_Paid_Date"}, Keywords: []string{"claim", "paid", "date"}, Date: true},
}

// lineConcepts is the concept table for the line-items sheet.
var lineConcepts = []Concept{
	{Key: "clmId", Names: []string{"clmId", "Claim ID", "claimId", "clm_id", "source"}, Keywords: []string{"claim", "id"}},
	{Key: "clmLnNum", Names: []string{"clmLnNum", "Claim Line Number", "lineNum"}, Keywords: []string{"line", "num"}},
	{Key: "ediLnNum", Names: []string{"ediLnNum", "EDI Line Number"}},
	{Key: "chrgAmt", Names: []string{"chrgAmt", "Charged Amount"}},
	{Key: "paidAmt", Names: []string{"paidAmt", "Paid Amount"}},
	{Key: "cvrdAmt", Names: []string{"cvrdAmt", "Covered Amount"}},
	{Key: "coinsAmt", Names: []string{"coinsAmt", "Coinsurance Amount"}},
	{Key: "dedAmt", Names: []string{"dedAmt", "Deductible Amount"}},
	{Key: "lnBeginDt", Names: []string{"lnBeginDt", "Line Begin Date"}, Date: true},
	{Key: "lnEndDt", Names: []string{"lnEndDt", "Line End Date"}, Date: true},
	{Key: "ndc", Names: []string{"ndc", "NDC"}},
	{Key: "posCd", Names: []string{"posCd", "Place of Service"}},
	{Key: "preAuthInd", Names: []string{"preAuthInd", "Pre Auth Indicator"}},
	{Key: "revnuCd", Names: []string{"revnuCd", "Revenue Code"}},
	{Key: "rmTyp", Names: []string{"rmTyp", "Room Type"}},
	{Key: "serviceId", Names: []string{"serviceId", "Service ID"}},
	{Key: "procCd", Names: []string{"procCd", "Procedure Code"}},
	{Key: "diagCd", Names: []string{"diagCd", "Diagnosis Code"}},
	{Key: "rncCd", Names: []string{"rncCd", "Reason Not Covered"}},
	{Key: "drugUnits", Names: []string{"drugUnits", "Drug Units"}},
	{Key: "drugUom", Names: []string{"drugUom", "Drug UOM"}},
	{Key: "count", Names: []string{"count", "Count"}},
	{Key: "uom", Names: []string{"uom", "UOM"}},
}

// Mapper builds typed entities from raw sheet rows
type Mapper struct {
	log *logrus.Logger
}

// NewMapper creates a mapper that reports diagnostics to the given logger
func NewMapper(log *logrus.Logger) *Mapper {
	return &Mapper{log: log}
}

// MapClaims maps the claims sheet into typed Claim entities. Columns resolve
// once for the whole sheet; malformed cells default locally and never fail.
func (m *Mapper) MapClaims(sheet Sheet) []model.Claim {
	resolved := ResolveColumns(sheet.Headers, claimConcepts)
	m.reportUnresolved(sheet.Name, claimConcepts, resolved)

	claims := make([]model.Claim, 0, len(sheet.Rows))
	emptyIDs := 0

	for _, row := range sheet.Rows {
		r := rowReader{row: row, resolved: resolved}

		score := r.float("score")
		charged := r.float("totChrgAmt")

		priority := r.str("priority")
		if priority == "" {
			priority = model.RiskFromScore(score)
		}

		c := model.Claim{
			ClaimID:      r.str("clmId"),
			AAInd:        r.strDefault("aaInd", "N"),
			RiskLevel:    priority,
			Score:        score,
			AccountNum:   r.str("acctNum"),
			BillTypeCode: r.str("billTyCd"),
			ClaimBeginDt: r.date("clmBeginDt"),
			ClaimEndDt:   r.date("clmEndDt"),
			ClaimTypeCd:  r.str("clmTyCd"),
			FormTypeCd:   r.str("formTyCd"),
			PaperEdiCd:   r.str("paperEdiCd"),
			ReceivedTs:   r.date("rcvdTs"),

			ProviderCity:      r.str("billProvCity"),
			ProviderSpecialty: r.str("billProvSpecialty"),
			ProviderState:     r.str("billProvStCd"),
			ProviderName:      r.str("billProvNm"),
			ProviderParInd:    r.str("billProvParInd"),
			ProviderNetwork:   r.str("billProvNtCd"),

			TotalChargedAmount: charged,
			TotalAllowedAmount: r.float("totAllowAmt"),
			AmountBucket:       model.AmountBucket(charged),

			PatientAge:    r.integer("patAge"),
			PatientGender: r.str("patGndr"),
			BenefitOption: r.str("benopt"),

			AuditFlag:    r.blankSensitive("auditFlag"),
			AppealID:     r.str("appealId"),
			AppealReason: r.str("appealReason"),
			ClaimStatus:  r.str("claimStatus"),

			HistoricalAdjRate: r.str("historicalAdjRate"),

			BenefitPlanUpdateDate:      r.date("benefitPlanUpdateDate"),
			ProviderContractUpdateDate: r.date("providerContractUpdateDate"),
			ClaimPaidDate:              r.date("claimPaidDate"),
		}

		if c.ClaimID == "" {
			emptyIDs++
		}
		claims = append(claims, c)
	}

	if emptyIDs > 0 {
		m.log.WithFields(logrus.Fields{"sheet": sheet.Name, "rows": emptyIDs}).
			Warn("rows with unresolvable claim identifier kept but unlinkable")
	}

	return claims
}

// MapLines maps the line-items sheet into typed LineItem entities.
func (m *Mapper) MapLines(sheet Sheet) []model.LineItem {
	resolved := ResolveColumns(sheet.Headers, lineConcepts)
	m.reportUnresolved(sheet.Name, lineConcepts, resolved)

	lines := make([]model.LineItem, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		r := rowReader{row: row, resolved: resolved}

		lines = append(lines, model.LineItem{
			ClaimID:       r.str("clmId"),
			ClaimLineNum:  r.integer("clmLnNum"),
			EdiLineNum:    r.integer("ediLnNum"),
			ChargedAmount: r.float("chrgAmt"),
			PaidAmount:    r.float("paidAmt"),
			CoveredAmount: r.float("cvrdAmt"),
			CoinsAmount:   r.float("coinsAmt"),
			DeductAmount:  r.float("dedAmt"),

			LineBeginDt: r.date("lnBeginDt"),
			LineEndDt:   r.date("lnEndDt"),

			NDC:           r.str("ndc"),
			PlaceOfSvcCd:  r.str("posCd"),
			PreAuthInd:    r.str("preAuthInd"),
			RevenueCd:     r.str("revnuCd"),
			RoomType:      r.str("rmTyp"),
			ServiceID:     r.str("serviceId"),
			ProcedureCd:   r.str("procCd"),
			DiagnosisCd:   r.str("diagCd"),
			ReasonNotCvrd: r.str("rncCd"),
			DrugUnits:     r.str("drugUnits"),
			DrugUOM:       r.str("drugUom"),
			GenericCount:  r.integer("count"),
			GenericUOM:    r.str("uom"),
		})
	}

	return lines
}

func (m *Mapper) reportUnresolved(sheet string, concepts []Concept, resolved map[string]string) {
	for _, c := range concepts {
		if _, ok := resolved[c.Key]; !ok {
			m.log.WithFields(logrus.Fields{"sheet": sheet, "concept": c.Key}).
				Debug("concept column not found, defaulting")
		}
	}
}

// rowReader applies a sheet-level resolution map to one row
type rowReader struct {
	row      RawRow
	resolved map[string]string
}

func (r rowReader) str(key string) string {
	v, ok := conceptCell(r.row, r.resolved, key)
	if !ok {
		return ""
	}
	return cellString(v)
}

func (r rowReader) strDefault(key, def string) string {
	if s := r.str(key); s != "" {
		return s
	}
	return def
}

// blankSensitive returns "" both for a blank cell and a missing column; the
// distinction matters only to diagnostics, where a resolved-but-blank cell is
// a meaningful value rather than a missing concept.
func (r rowReader) blankSensitive(key string) string {
	v, ok := conceptCell(r.row, r.resolved, key)
	if !ok {
		return ""
	}
	return cellString(v)
}

func (r rowReader) float(key string) float64 {
	return parseFloatDefault(r.str(key))
}

func (r rowReader) integer(key string) int {
	return parseIntDefault(r.str(key))
}

func (r rowReader) date(key string) string {
	v, ok := conceptCell(r.row, r.resolved, key)
	if !ok {
		return ""
	}
	return NormalizeDate(v)
}

// parseFloatDefault treats non-numeric or missing values as 0
func parseFloatDefault(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseIntDefault treats non-numeric or missing values as 0, accepting
// float-formatted cells ("3.0")
func parseIntDefault(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
