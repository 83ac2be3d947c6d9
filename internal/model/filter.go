package model

// FilterSpec selects claims by categorical values and an optional claim-id
// substring. An empty value set for a field imposes no constraint; values
// within a field are OR-ed, fields are AND-ed.
type FilterSpec struct {
	AAInd       []string `json:"aaInd,omitempty"`
	ClaimTypeCd []string `json:"clmTyCd,omitempty"`
	FormTypeCd  []string `json:"formTyCd,omitempty"`
	RiskLevel   []string `json:"riskLevel,omitempty"`
	AuditFlag   []string `json:"auditFlag,omitempty"`
	ClaimStatus []string `json:"claimStatus,omitempty"`

	SearchClaimID string `json:"searchClaimId,omitempty"` // case-insensitive substring
}

// Empty reports whether the spec imposes no constraint at all.
func (s FilterSpec) Empty() bool {
	return len(s.AAInd) == 0 && len(s.ClaimTypeCd) == 0 && len(s.FormTypeCd) == 0 &&
		len(s.RiskLevel) == 0 && len(s.AuditFlag) == 0 && len(s.ClaimStatus) == 0 &&
		s.SearchClaimID == ""
}

// FilterOptions holds the sorted distinct observed values per filterable field,
// for populating selection controls.
type FilterOptions struct {
	AAInd       []string `json:"aaInd"`
	ClaimTypeCd []string `json:"clmTyCd"`
	FormTypeCd  []string `json:"formTyCd"`
	ClaimStatus []string `json:"claimStatus"`
}

// SortDirection orders a sorted view ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable claim fields. Score, amounts and age compare numerically; the rest
// compare as case-insensitive strings.
const (
	SortByClaimID      = "clmId"
	SortByRiskLevel    = "riskLevel"
	SortByScore        = "score"
	SortByReceivedTs   = "rcvdTs"
	SortByChargedAmt   = "totChrgAmt"
	SortByAllowedAmt   = "totAllowAmt"
	SortByFormTypeCd   = "formTyCd"
	SortByPaperEdiCd   = "paperEdiCd"
	SortByState        = "billProvStCd"
	SortByProviderName = "billProvNm"
	SortByPatientAge   = "patAge"
)

// KPIMetrics is the summary reduction over a (filtered) claim set.
type KPIMetrics struct {
	TotalClaims int     `json:"totalClaims"`
	TotalAmount float64 `json:"totalAmount"`
	HighRisk    int     `json:"highRisk"`
	MediumRisk  int     `json:"mediumRisk"`
	LowRisk     int     `json:"lowRisk"`
}

// GroupCount is one label/count pair in a chart grouping.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartGroupings holds the chart-ready aggregations over the filtered set.
type ChartGroupings struct {
	ByCity         []GroupCount `json:"byCity"`
	BySpecialty    []GroupCount `json:"bySpecialty"`
	ByAmountBucket []GroupCount `json:"byAmountBucket"`
	ByRisk         []GroupCount `json:"byRisk"`
}

// LineDetail summarizes the line items of a single claim.
type LineDetail struct {
	ClaimID            string  `json:"clmId"`
	LineCount          int     `json:"lineCount"`
	TotalChargedAmount float64 `json:"totalChargedAmount"`
	DistinctDiagCodes  int     `json:"distinctDiagCodes"`
	ProcedureCodeCount int     `json:"procedureCodeCount"`
	RevenueCodeCount   int     `json:"revenueCodeCount"`
}

// Page is one slice of a sorted claim set.
type Page struct {
	Claims     []Claim `json:"claims"`
	PageNumber int     `json:"pageNumber"`
	TotalPages int     `json:"totalPages"`
	TotalItems int     `json:"totalItems"`
}
