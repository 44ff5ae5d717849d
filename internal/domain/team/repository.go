package team

import "context"

// Repository describes team persistence needs from use cases.
// Lists are returned in draft order (the order teams were registered).
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Team, error)
	ListByDivision(ctx context.Context, divisionID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
