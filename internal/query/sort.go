package query

import (
	"sort"
	"strings"

	"claimlens/internal/model"
)

// Sort returns a sorted copy of the claim set. Numeric fields compare
// numerically, everything else as case-insensitive strings; the sort is
// stable, so equal keys keep their prior relative order.
func Sort(claims []model.Claim, field string, dir model.SortDirection) []model.Claim {
	sorted := make([]model.Claim, len(claims))
	copy(sorted, claims)

	desc := dir == model.SortDesc

	sort.SliceStable(sorted, func(i, j int) bool {
		less := claimLess(sorted[i], sorted[j], field)
		if desc {
			return claimLess(sorted[j], sorted[i], field)
		}
		return less
	})

	return sorted
}

func claimLess(a, b model.Claim, field string) bool {
	if av, bv, ok := numericKey(a, b, field); ok {
		return av < bv
	}
	return strings.ToLower(stringKey(a, field)) < strings.ToLower(stringKey(b, field))
}

func numericKey(a, b model.Claim, field string) (float64, float64, bool) {
	switch field {
	case model.SortByScore:
		return a.Score, b.Score, true
	case model.SortByChargedAmt:
		return a.TotalChargedAmount, b.TotalChargedAmount, true
	case model.SortByAllowedAmt:
		return a.TotalAllowedAmount, b.TotalAllowedAmount, true
	case model.SortByPatientAge:
		return float64(a.PatientAge), float64(b.PatientAge), true
	}
	return 0, 0, false
}

func stringKey(c model.Claim, field string) string {
	switch field {
	case model.SortByClaimID:
		return c.ClaimID
	case model.SortByRiskLevel:
		return c.RiskLevel
	case model.SortByReceivedTs:
		return c.ReceivedTs
	case model.SortByFormTypeCd:
		return c.FormTypeCd
	case model.SortByPaperEdiCd:
		return c.PaperEdiCd
	case model.SortByState:
		return c.ProviderState
	case model.SortByProviderName:
		return c.ProviderName
	}
	return c.ClaimID
}
