package projections

import (
	"context"

	"kingrun/internal/application/listutil"
	domainRanking "kingrun/internal/domain/ranking"
)

// RankingRow is one line of the ranking list.
type RankingRow struct {
	domainRanking.Entry
	IsCurrentUser bool
}

// GetRankingQuery carries query parameters.
type GetRankingQuery struct {
	Category string
	UserID   string
	Page     listutil.PageParams
}

// GetRankingResult carries the query result.
type GetRankingResult struct {
	Category   string
	Categories []string
	UserEntry  *domainRanking.Entry // nil when the user is not ranked in Category
	Rows       []RankingRow
	PageInfo   listutil.PageInfo
}

// GetRankingDeps holds dependencies for GetRanking.
type GetRankingDeps struct {
	RankingStore RankingStore
}

// QueryGetRanking returns one page of a category ranking.
// PRE: none
// POST: Unknown categories fall back to the overall ranking; rows keep position order
func QueryGetRanking(ctx context.Context, query GetRankingQuery, deps GetRankingDeps) (GetRankingResult, error) {
	category := query.Category
	if !domainRanking.IsCategory(category) {
		category = domainRanking.CategoryOverall
	}

	entries, err := deps.RankingStore.ListRanking(ctx, category)
	if err != nil {
		return GetRankingResult{}, err
	}

	result := GetRankingResult{
		Category:   category,
		Categories: domainRanking.Categories,
	}
	if own, ok := domainRanking.FindUser(entries, query.UserID); ok && query.UserID != "" {
		result.UserEntry = &own
	}

	page, info := listutil.Paginate(entries, query.Page)
	result.PageInfo = info
	for _, e := range page {
		result.Rows = append(result.Rows, RankingRow{
			Entry:         e,
			IsCurrentUser: query.UserID != "" && e.UserID == query.UserID,
		})
	}
	return result, nil
}
