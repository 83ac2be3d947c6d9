package query

import "claimlens/internal/model"

// ComputeKPIs reduces a claim set to its summary metrics in one pass.
// Only the three known risk labels are counted; explicit source values
// outside High/Medium/Low fall into none of the buckets.
func ComputeKPIs(claims []model.Claim) model.KPIMetrics {
	kpi := model.KPIMetrics{TotalClaims: len(claims)}
	for _, c := range claims {
		kpi.TotalAmount += c.TotalChargedAmount
		switch c.RiskLevel {
		case model.RiskHigh:
			kpi.HighRisk++
		case model.RiskMedium:
			kpi.MediumRisk++
		case model.RiskLow:
			kpi.LowRisk++
		}
	}
	return kpi
}
