package query

import (
	"testing"

	"claimlens/internal/model"
)

func TestSort_NumericField(t *testing.T) {
	claims := []model.Claim{
		{ClaimID: "A", Score: 0.9},
		{ClaimID: "B", Score: 0.1},
		{ClaimID: "C", Score: 0.5},
	}

	asc := Sort(claims, model.SortByScore, model.SortAsc)
	if asc[0].ClaimID != "B" || asc[1].ClaimID != "C" || asc[2].ClaimID != "A" {
		t.Errorf("Ascending order wrong: %v %v %v", asc[0].ClaimID, asc[1].ClaimID, asc[2].ClaimID)
	}

	desc := Sort(claims, model.SortByScore, model.SortDesc)
	if desc[0].ClaimID != "A" || desc[2].ClaimID != "B" {
		t.Errorf("Descending order wrong: %v ... %v", desc[0].ClaimID, desc[2].ClaimID)
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	claims := []model.Claim{
		{ClaimID: "B", Score: 5},
		{ClaimID: "A", Score: 5},
	}

	sorted := Sort(claims, model.SortByScore, model.SortAsc)
	if sorted[0].ClaimID != "B" || sorted[1].ClaimID != "A" {
		t.Errorf("Equal keys must preserve relative order, got %v, %v", sorted[0].ClaimID, sorted[1].ClaimID)
	}
}

func TestSort_StringFieldCaseInsensitive(t *testing.T) {
	claims := []model.Claim{
		{ClaimID: "1", ProviderName: "zeta clinic"},
		{ClaimID: "2", ProviderName: "Alpha Medical"},
		{ClaimID: "3", ProviderName: "BETA Health"},
	}

	sorted := Sort(claims, model.SortByProviderName, model.SortAsc)
	if sorted[0].ClaimID != "2" || sorted[1].ClaimID != "3" || sorted[2].ClaimID != "1" {
		t.Errorf("Case-insensitive order wrong: %v %v %v", sorted[0].ClaimID, sorted[1].ClaimID, sorted[2].ClaimID)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	claims := []model.Claim{{ClaimID: "B"}, {ClaimID: "A"}}

	_ = Sort(claims, model.SortByClaimID, model.SortAsc)
	if claims[0].ClaimID != "B" {
		t.Error("Sort must not mutate its input")
	}
}

func TestPaginate_EmptySet(t *testing.T) {
	page := Paginate(nil, 10, 1)

	if len(page.Claims) != 0 {
		t.Errorf("Expected empty page, got %d items", len(page.Claims))
	}
	if page.TotalPages != 1 {
		t.Errorf("Empty set still has 1 page, got %d", page.TotalPages)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	claims := make([]model.Claim, 23)
	page := Paginate(claims, 10, 3)

	if len(page.Claims) != 3 {
		t.Errorf("Page 3 of 23 should hold 3 items, got %d", len(page.Claims))
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestPaginate_ClampsPageNumber(t *testing.T) {
	claims := make([]model.Claim, 15)

	if page := Paginate(claims, 10, 99); page.PageNumber != 2 {
		t.Errorf("Page beyond end should clamp to 2, got %d", page.PageNumber)
	}
	if page := Paginate(claims, 10, 0); page.PageNumber != 1 {
		t.Errorf("Page below 1 should clamp to 1, got %d", page.PageNumber)
	}
}
