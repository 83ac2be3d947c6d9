package model

import "strconv"

// Claim represents one normalized insurance claim
type Claim struct {
	ClaimID      string  `json:"clmId"`
	AAInd        string  `json:"aaInd"`                // adjudication indicator (code, canonicalized for filtering)
	RiskLevel    string  `json:"riskLevel"`            // High/Medium/Low, explicit source value wins over the score
	Score        float64 `json:"score"`
	AccountNum   string  `json:"acctNum,omitempty"`
	BillTypeCode string  `json:"billTyCd,omitempty"`
	ClaimBeginDt string  `json:"clmBeginDt,omitempty"` // ISO-8601 or '' (or raw string when unparseable)
	ClaimEndDt   string  `json:"clmEndDt,omitempty"`
	ClaimTypeCd  string  `json:"clmTyCd,omitempty"`
	FormTypeCd   string  `json:"formTyCd,omitempty"`
	PaperEdiCd   string  `json:"paperEdiCd,omitempty"` // submission method: paper vs electronic
	ReceivedTs   string  `json:"rcvdTs,omitempty"`

	ProviderCity      string `json:"billProvCity,omitempty"`
	ProviderSpecialty string `json:"billProvSpecialty,omitempty"` // derived CPF type code 2
	ProviderState     string `json:"billProvStCd,omitempty"`
	ProviderName      string `json:"billProvNm,omitempty"`
	ProviderParInd    string `json:"billProvParInd,omitempty"`
	ProviderNetwork   string `json:"billProvNtCd,omitempty"`

	TotalChargedAmount float64 `json:"totChrgAmt"`
	TotalAllowedAmount float64 `json:"totAllowAmt"`
	AmountBucket       string  `json:"amountBucket"` // derived from TotalChargedAmount

	PatientAge    int    `json:"patAge,omitempty"`
	PatientGender string `json:"patGndr,omitempty"`
	BenefitOption string `json:"benopt,omitempty"`

	AuditFlag    string `json:"auditFlag,omitempty"`
	AppealID     string `json:"appealId,omitempty"`
	AppealReason string `json:"appealReason,omitempty"`
	ClaimStatus  string `json:"claimStatus,omitempty"`

	HistoricalAdjRate string `json:"historicalAdjRate,omitempty"` // string-encoded percentage, kept verbatim

	BenefitPlanUpdateDate      string `json:"benefitPlanUpdateDate,omitempty"`
	ProviderContractUpdateDate string `json:"providerContractUpdateDate,omitempty"`
	ClaimPaidDate              string `json:"claimPaidDate,omitempty"`
}

// LineItem represents one billed service or procedure within a claim.
// Lines are owned by the dataset; association to a claim is by ClaimID.
type LineItem struct {
	ClaimID       string  `json:"clmId"`
	ClaimLineNum  int     `json:"clmLnNum"`
	EdiLineNum    int     `json:"ediLnNum,omitempty"`
	ChargedAmount float64 `json:"chrgAmt"`
	PaidAmount    float64 `json:"paidAmt"`
	CoveredAmount float64 `json:"cvrdAmt"`
	CoinsAmount   float64 `json:"coinsAmt"`
	DeductAmount  float64 `json:"dedAmt"`

	LineBeginDt string `json:"lnBeginDt,omitempty"`
	LineEndDt   string `json:"lnEndDt,omitempty"`

	NDC           string `json:"ndc,omitempty"`
	PlaceOfSvcCd  string `json:"posCd,omitempty"`
	PreAuthInd    string `json:"preAuthInd,omitempty"`
	RevenueCd     string `json:"revnuCd,omitempty"`
	RoomType      string `json:"rmTyp,omitempty"`
	ServiceID     string `json:"serviceId,omitempty"`
	ProcedureCd   string `json:"procCd,omitempty"`
	DiagnosisCd   string `json:"diagCd,omitempty"`
	ReasonNotCvrd string `json:"rncCd,omitempty"`
	DrugUnits     string `json:"drugUnits,omitempty"`
	DrugUOM       string `json:"drugUom,omitempty"`
	GenericCount  int    `json:"count,omitempty"`
	GenericUOM    string `json:"uom,omitempty"`
}

// Risk level labels
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// RiskFromScore classifies a claim score into a risk level.
// Thresholds: >0.7 High, 0.3..0.7 Medium, <0.3 Low.
func RiskFromScore(score float64) string {
	if score > 0.7 {
		return RiskHigh
	}
	if score >= 0.3 {
		return RiskMedium
	}
	return RiskLow
}

// AmountBucket assigns a charged amount to a labeled band. Coarse bands start
// at 5000; below that the label is the 500-wide band containing the amount, so
// amounts in [4000,5000) yield "4000-4500"/"4500-5000".
func AmountBucket(amount float64) string {
	switch {
	case amount >= 100000:
		return "100000+"
	case amount >= 50000:
		return "50000-100000"
	case amount >= 30000:
		return "30000-50000"
	case amount >= 20000:
		return "20000-30000"
	case amount >= 10000:
		return "10000-20000"
	case amount >= 5000:
		return "5000-10000"
	}
	start := int(amount/500) * 500
	if start < 0 {
		start = 0
	}
	return fmtBucket(start, start+500)
}

// AmountBucketOrder is the histogram display order for amount buckets.
// Labels not in this list sort after all known labels.
var AmountBucketOrder = []string{
	"0-500", "500-1000", "1000-1500", "1500-2000", "2000-2500",
	"2500-3000", "3000-3500", "3500-4000", "4000-4500", "4500-5000",
	"5000-10000", "10000-20000", "20000-30000", "30000-50000",
	"50000-100000", "100000+",
}

func fmtBucket(start, end int) string {
	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}
