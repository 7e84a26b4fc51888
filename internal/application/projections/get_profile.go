package projections

import (
	"context"

	domainResult "kingrun/internal/domain/result"
	domainUser "kingrun/internal/domain/user"
)

// GetProfileQuery carries query parameters.
type GetProfileQuery struct {
	User domainUser.User
}

// GetProfileResult carries the query result.
type GetProfileResult struct {
	User    domainUser.User
	Results []domainResult.Result
}

// GetProfileDeps holds dependencies for GetProfile.
type GetProfileDeps struct {
	ResultStore ResultStore
}

// QueryGetProfile returns the runner's profile and race history, newest first.
func QueryGetProfile(ctx context.Context, query GetProfileQuery, deps GetProfileDeps) (GetProfileResult, error) {
	results, err := deps.ResultStore.ListResultsByUser(ctx, query.User.ID)
	if err != nil {
		return GetProfileResult{}, err
	}
	return GetProfileResult{User: query.User, Results: results}, nil
}
