// Package query implements the pure read-side computations over a normalized
// claim set: filtering, KPI reduction, chart groupings, sorting, pagination.
package query

import (
	"strings"

	"claimlens/internal/codes"
	"claimlens/internal/model"
)

// Apply filters a claim set. A claim passes when, for every field with a
// non-empty selection, its value is a member of the selection (after code
// canonicalization where codes and labels coexist in the wild), and when its
// id contains the search substring case-insensitively. An all-empty spec
// returns the input set unchanged, same elements, same order.
func Apply(claims []model.Claim, spec model.FilterSpec, table *codes.Table) []model.Claim {
	if spec.Empty() {
		return claims
	}

	search := strings.ToLower(spec.SearchClaimID)

	filtered := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		if !matchCanonical(table, codes.FieldAAInd, c.AAInd, spec.AAInd) {
			continue
		}
		if !matchExact(c.ClaimTypeCd, spec.ClaimTypeCd) {
			continue
		}
		if !matchCanonical(table, codes.FieldFormType, c.FormTypeCd, spec.FormTypeCd) {
			continue
		}
		if !matchExact(c.RiskLevel, spec.RiskLevel) {
			continue
		}
		if !matchFolded(c.AuditFlag, spec.AuditFlag) {
			continue
		}
		if !matchExact(c.ClaimStatus, spec.ClaimStatus) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.ClaimID), search) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

// matchExact: trimmed equality against any selected value
func matchExact(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	v := strings.TrimSpace(value)
	for _, s := range selected {
		if v == strings.TrimSpace(s) {
			return true
		}
	}
	return false
}

// matchFolded: trimmed, case-insensitive equality (audit flags arrive as
// "Y"/"y"/" Y ")
func matchFolded(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, s := range selected {
		if v == strings.ToUpper(strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

// matchCanonical: both sides run through the code table before comparison so
// that a stored "N" matches a selected "Manual" and vice versa
func matchCanonical(table *codes.Table, field, value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if table.Equal(field, value, s) {
			return true
		}
	}
	return false
}
