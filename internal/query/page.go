package query

import "claimlens/internal/model"

// Paginate slices a claim set into 1-indexed pages. The page number clamps to
// [1, totalPages]; an empty set still has one (empty) page.
func Paginate(claims []model.Claim, pageSize, pageNumber int) model.Page {
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := (len(claims) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(claims) {
		start = len(claims)
	}
	if end > len(claims) {
		end = len(claims)
	}

	return model.Page{
		Claims:     claims[start:end],
		PageNumber: pageNumber,
		TotalPages: totalPages,
		TotalItems: len(claims),
	}
}
