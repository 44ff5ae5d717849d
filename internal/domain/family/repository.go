package family

import "context"

// Repository describes family persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Family, error)
	GetByID(ctx context.Context, familyID string) (Family, bool, error)
	GetByIDs(ctx context.Context, familyIDs []string) ([]Family, error)
	// FindByEmail matches either guardian email case-insensitively.
	FindByEmail(ctx context.Context, email string) (Family, bool, error)
	Create(ctx context.Context, f Family) error
}
