package query

import (
	"sort"

	"claimlens/internal/model"
)

// GroupKey selects the claim field a grouping counts over
type GroupKey string

const (
	GroupByCity         GroupKey = "city"
	GroupBySpecialty    GroupKey = "specialty"
	GroupByAmountBucket GroupKey = "amountBucket"
	GroupByRisk         GroupKey = "risk"
)

// GroupBy counts claims per label. City and specialty groupings sort by count
// descending with insertion order breaking ties; empty labels become
// "Unknown". The amount-bucket grouping is a histogram and keeps the natural
// monetary order instead. Risk keeps the fixed High/Medium/Low order with
// zero counts included. topN > 0 truncates the result.
func GroupBy(claims []model.Claim, key GroupKey, topN int) []model.GroupCount {
	if key == GroupByRisk {
		return groupByRisk(claims)
	}

	counts := make(map[string]int)
	var order []string

	for _, c := range claims {
		label := groupLabel(c, key)
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	groups := make([]model.GroupCount, 0, len(order))
	for _, label := range order {
		groups = append(groups, model.GroupCount{Label: label, Count: counts[label]})
	}

	if key == GroupByAmountBucket {
		sortByBucketOrder(groups)
	} else {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Count > groups[j].Count
		})
	}

	if topN > 0 && len(groups) > topN {
		groups = groups[:topN]
	}
	return groups
}

func groupLabel(c model.Claim, key GroupKey) string {
	var label string
	switch key {
	case GroupByCity:
		label = c.ProviderCity
	case GroupBySpecialty:
		label = c.ProviderSpecialty
	case GroupByAmountBucket:
		return c.AmountBucket
	}
	if label == "" {
		return "Unknown"
	}
	return label
}

func groupByRisk(claims []model.Claim) []model.GroupCount {
	counts := map[string]int{}
	for _, c := range claims {
		counts[c.RiskLevel]++
	}
	return []model.GroupCount{
		{Label: model.RiskHigh, Count: counts[model.RiskHigh]},
		{Label: model.RiskMedium, Count: counts[model.RiskMedium]},
		{Label: model.RiskLow, Count: counts[model.RiskLow]},
	}
}

// sortByBucketOrder orders histogram labels by their monetary sequence;
// labels outside the known band list sort after all known ones.
func sortByBucketOrder(groups []model.GroupCount) {
	rank := make(map[string]int, len(model.AmountBucketOrder))
	for i, label := range model.AmountBucketOrder {
		rank[label] = i
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ri, iKnown := rank[groups[i].Label]
		rj, jKnown := rank[groups[j].Label]
		if iKnown && jKnown {
			return ri < rj
		}
		return iKnown && !jKnown
	})
}
