package draft

import "context"

// Repository describes draft persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, sessionID string) (Session, bool, error)
	GetByDivision(ctx context.Context, seasonID, divisionID string) (Session, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Session, error)
	Create(ctx context.Context, s Session) error
	// AppendPick stores pick only if the session still has pick.PickNumber-1
	// picks and the player is not yet picked; otherwise it returns
	// ErrOutOfOrder or ErrAlreadyPicked.
	AppendPick(ctx context.Context, sessionID string, pick Pick) error
}
