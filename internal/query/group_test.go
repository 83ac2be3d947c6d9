package query

import (
	"testing"

	"claimlens/internal/model"
)

func TestGroupBy_CountDescendingInsertionOrderTies(t *testing.T) {
	claims := []model.Claim{
		{ProviderCity: "Austin"},
		{ProviderCity: "Boston"},
		{ProviderCity: "Boston"},
		{ProviderCity: "Chicago"},
	}

	groups := GroupBy(claims, GroupByCity, 0)

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	if groups[0].Label != "Boston" || groups[0].Count != 2 {
		t.Errorf("Top group = %+v", groups[0])
	}
	// Austin and Chicago tie at 1; Austin was seen first
	if groups[1].Label != "Austin" || groups[2].Label != "Chicago" {
		t.Errorf("Tie-break order wrong: %v, %v", groups[1], groups[2])
	}
}

func TestGroupBy_TopN(t *testing.T) {
	claims := []model.Claim{
		{ProviderCity: "A"}, {ProviderCity: "B"}, {ProviderCity: "C"},
	}

	groups := GroupBy(claims, GroupByCity, 2)
	if len(groups) != 2 {
		t.Errorf("Expected topN to truncate to 2, got %d", len(groups))
	}
}

func TestGroupBy_UnknownLabelForEmpty(t *testing.T) {
	claims := []model.Claim{{ProviderCity: ""}, {ProviderSpecialty: "Cardiology", ProviderCity: "X"}}

	groups := GroupBy(claims, GroupByCity, 0)
	found := false
	for _, g := range groups {
		if g.Label == "Unknown" && g.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an Unknown group, got %v", groups)
	}
}

func TestGroupBy_AmountBucketHistogramOrder(t *testing.T) {
	claims := []model.Claim{
		{AmountBucket: "5000-10000"},
		{AmountBucket: "0-500"},
		{AmountBucket: "0-500"},
		{AmountBucket: "4500-5000"},
		{AmountBucket: "100000+"},
	}

	groups := GroupBy(claims, GroupByAmountBucket, 0)

	want := []string{"0-500", "4500-5000", "5000-10000", "100000+"}
	if len(groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
	}
	for i, label := range want {
		if groups[i].Label != label {
			t.Errorf("Position %d: got %q, want %q", i, groups[i].Label, label)
		}
	}
}

func TestGroupBy_RiskFixedOrderWithZeros(t *testing.T) {
	claims := []model.Claim{{RiskLevel: "Low"}, {RiskLevel: "Low"}}

	groups := GroupBy(claims, GroupByRisk, 0)

	if len(groups) != 3 {
		t.Fatalf("Expected the three risk labels, got %d", len(groups))
	}
	if groups[0].Label != "High" || groups[0].Count != 0 {
		t.Errorf("High = %+v", groups[0])
	}
	if groups[1].Label != "Medium" || groups[1].Count != 0 {
		t.Errorf("Medium = %+v", groups[1])
	}
	if groups[2].Label != "Low" || groups[2].Count != 2 {
		t.Errorf("Low = %+v", groups[2])
	}
}
