// Package validate cross-checks the claim set against the line-item set.
// Findings are an advisory integrity report, never a gate: the pipeline
// continues regardless of what is found here.
package validate

import (
	"math"

	"claimlens/internal/model"
)

// Validator produces referential-integrity findings
type Validator struct {
	amountTolerance float64
}

// NewValidator creates a validator with the given amount tolerance
func NewValidator(cfg model.ValidationConfig) *Validator {
	tolerance := cfg.AmountTolerance
	if tolerance <= 0 {
		tolerance = 0.01
	}
	return &Validator{amountTolerance: tolerance}
}

// Validate is pure: it never mutates its inputs, never fails, and only
// returns findings. Checks: duplicate line numbers within a claim, claims
// with no line items, and line charge totals that disagree with the claim
// total beyond the tolerance.
func (v *Validator) Validate(claims []model.Claim, lines []model.LineItem) []model.Finding {
	findings := []model.Finding{}

	linesByClaim := GroupLinesByClaim(lines)

	// Duplicate line numbers, reported in line-item encounter order
	for _, claimID := range claimOrder(lines) {
		seen := make(map[int]bool)
		var dups []int
		for _, line := range linesByClaim[claimID] {
			if seen[line.ClaimLineNum] {
				dups = append(dups, line.ClaimLineNum)
			} else {
				seen[line.ClaimLineNum] = true
			}
		}
		if len(dups) > 0 {
			findings = append(findings, model.Finding{
				Kind:              model.FindingDuplicateLineNums,
				ClaimID:           claimID,
				DuplicateLineNums: dups,
			})
		}
	}

	// Claims with no line data at all, one finding listing all of them
	var missing []string
	for _, c := range claims {
		if _, ok := linesByClaim[c.ClaimID]; !ok {
			missing = append(missing, c.ClaimID)
		}
	}
	if len(missing) > 0 {
		findings = append(findings, model.Finding{
			Kind:     model.FindingMissingLineData,
			ClaimIDs: missing,
		})
	}

	// Line totals vs claim totals, for claims that have at least one line
	for _, c := range claims {
		claimLines, ok := linesByClaim[c.ClaimID]
		if !ok || len(claimLines) == 0 {
			continue
		}
		var total float64
		for _, line := range claimLines {
			total += line.ChargedAmount
		}
		delta := math.Abs(total - c.TotalChargedAmount)
		if delta > v.amountTolerance {
			findings = append(findings, model.Finding{
				Kind:        model.FindingAmountMismatch,
				ClaimID:     c.ClaimID,
				LineTotal:   total,
				ClaimAmount: c.TotalChargedAmount,
				Delta:       delta,
			})
		}
	}

	return findings
}

// GroupLinesByClaim builds the claimId → lines index, preserving line order.
func GroupLinesByClaim(lines []model.LineItem) map[string][]model.LineItem {
	grouped := make(map[string][]model.LineItem)
	for _, line := range lines {
		grouped[line.ClaimID] = append(grouped[line.ClaimID], line)
	}
	return grouped
}

// claimOrder returns distinct claim ids in first-encounter order
func claimOrder(lines []model.LineItem) []string {
	var order []string
	seen := make(map[string]bool)
	for _, line := range lines {
		if !seen[line.ClaimID] {
			seen[line.ClaimID] = true
			order = append(order, line.ClaimID)
		}
	}
	return order
}
