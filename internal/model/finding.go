package model

import (
	"fmt"
	"strings"
)

// FindingKind classifies an integrity finding
type FindingKind string

const (
	FindingDuplicateLineNums FindingKind = "duplicate_line_numbers" // repeated clmLnNum within one claim
	FindingMissingLineData   FindingKind = "missing_line_data"      // claims with no line items at all
	FindingAmountMismatch    FindingKind = "amount_mismatch"        // line charges disagree with the claim total
)

// Finding is one advisory integrity-check result. Findings never block the
// pipeline or alter the returned data.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	ClaimID string      `json:"clmId,omitempty"` // empty for dataset-wide findings

	DuplicateLineNums []int    `json:"duplicateLineNums,omitempty"`
	ClaimIDs          []string `json:"clmIds,omitempty"` // missing_line_data: all affected claims

	LineTotal   float64 `json:"lineTotal,omitempty"`
	ClaimAmount float64 `json:"claimAmount,omitempty"`
	Delta       float64 `json:"delta,omitempty"`
}

// String renders the finding the way the diagnostics log reports it.
func (f Finding) String() string {
	switch f.Kind {
	case FindingDuplicateLineNums:
		nums := make([]string, len(f.DuplicateLineNums))
		for i, n := range f.DuplicateLineNums {
			nums[i] = fmt.Sprintf("%d", n)
		}
		return fmt.Sprintf("Claim %s: duplicate line numbers found: %s", f.ClaimID, strings.Join(nums, ", "))
	case FindingMissingLineData:
		return fmt.Sprintf("Claims missing line data: %s", strings.Join(f.ClaimIDs, ", "))
	case FindingAmountMismatch:
		return fmt.Sprintf("Claim %s: line total (%.2f) does not match claim amount (%.2f), difference: %.2f",
			f.ClaimID, f.LineTotal, f.ClaimAmount, f.Delta)
	}
	return string(f.Kind)
}
