package validate

import (
	"testing"

	"claimlens/internal/model"
)

func newTestValidator() *Validator {
	return NewValidator(model.ValidationConfig{AmountTolerance: 0.01})
}

func TestValidate_DuplicateLineNumbers(t *testing.T) {
	claims := []model.Claim{{ClaimID: "A", TotalChargedAmount: 100}}
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 60},
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 40},
	}

	findings := newTestValidator().Validate(claims, lines)

	if len(findings) != 1 {
		t.Fatalf("Expected exactly 1 finding, got %d: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Kind != model.FindingDuplicateLineNums || f.ClaimID != "A" {
		t.Errorf("Unexpected finding: %+v", f)
	}
	if len(f.DuplicateLineNums) != 1 || f.DuplicateLineNums[0] != 1 {
		t.Errorf("Expected duplicate line number [1], got %v", f.DuplicateLineNums)
	}
	// 60+40 matches the claim total, so no amount-mismatch finding
	for _, f := range findings {
		if f.Kind == model.FindingAmountMismatch {
			t.Error("Unexpected amount-mismatch finding for matching totals")
		}
	}
}

func TestValidate_OrphanedClaims(t *testing.T) {
	claims := []model.Claim{{ClaimID: "A", TotalChargedAmount: 100}}

	findings := newTestValidator().Validate(claims, nil)

	if len(findings) != 1 {
		t.Fatalf("Expected exactly 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Kind != model.FindingMissingLineData {
		t.Errorf("Expected missing_line_data, got %s", f.Kind)
	}
	if len(f.ClaimIDs) != 1 || f.ClaimIDs[0] != "A" {
		t.Errorf("Expected orphan list [A], got %v", f.ClaimIDs)
	}
}

func TestValidate_AmountMismatch(t *testing.T) {
	claims := []model.Claim{{ClaimID: "A", TotalChargedAmount: 100}}
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 60},
		{ClaimID: "A", ClaimLineNum: 2, ChargedAmount: 25},
	}

	findings := newTestValidator().Validate(claims, lines)

	if len(findings) != 1 {
		t.Fatalf("Expected exactly 1 finding, got %d: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Kind != model.FindingAmountMismatch || f.ClaimID != "A" {
		t.Errorf("Unexpected finding: %+v", f)
	}
	if f.LineTotal != 85 || f.ClaimAmount != 100 || f.Delta != 15 {
		t.Errorf("Expected 85/100/15, got %v/%v/%v", f.LineTotal, f.ClaimAmount, f.Delta)
	}
}

func TestValidate_ToleranceAbsorbsFloatNoise(t *testing.T) {
	claims := []model.Claim{{ClaimID: "A", TotalChargedAmount: 100}}
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 99.995},
	}

	if findings := newTestValidator().Validate(claims, lines); len(findings) != 0 {
		t.Errorf("Expected no findings within tolerance, got %v", findings)
	}
}

func TestValidate_CleanDataset(t *testing.T) {
	claims := []model.Claim{
		{ClaimID: "A", TotalChargedAmount: 100},
		{ClaimID: "B", TotalChargedAmount: 50},
	}
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 100},
		{ClaimID: "B", ClaimLineNum: 1, ChargedAmount: 30},
		{ClaimID: "B", ClaimLineNum: 2, ChargedAmount: 20},
	}

	if findings := newTestValidator().Validate(claims, lines); len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}

func TestValidate_LinesForUnknownClaimDoNotPanic(t *testing.T) {
	// A line whose claimId matches no claim is tolerated; association is
	// simply impossible, which the missing-line check does not cover.
	claims := []model.Claim{{ClaimID: "A", TotalChargedAmount: 100}}
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 1, ChargedAmount: 100},
		{ClaimID: "ZZZ", ClaimLineNum: 1, ChargedAmount: 5},
	}

	if findings := newTestValidator().Validate(claims, lines); len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}

func TestGroupLinesByClaim_PreservesOrder(t *testing.T) {
	lines := []model.LineItem{
		{ClaimID: "A", ClaimLineNum: 2},
		{ClaimID: "B", ClaimLineNum: 1},
		{ClaimID: "A", ClaimLineNum: 1},
	}

	grouped := GroupLinesByClaim(lines)
	if len(grouped["A"]) != 2 || len(grouped["B"]) != 1 {
		t.Fatalf("Unexpected grouping: %v", grouped)
	}
	if grouped["A"][0].ClaimLineNum != 2 || grouped["A"][1].ClaimLineNum != 1 {
		t.Error("Expected line order within a claim to be preserved")
	}
}
