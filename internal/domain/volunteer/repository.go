package volunteer

import "context"

// Repository describes volunteer persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Volunteer, error)
	GetByID(ctx context.Context, volunteerID string) (Volunteer, bool, error)
	Create(ctx context.Context, v Volunteer) error
	Update(ctx context.Context, v Volunteer) error
}
