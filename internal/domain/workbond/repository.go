package workbond

import "context"

// Repository describes workbond persistence needs from use cases.
type Repository interface {
	ListShifts(ctx context.Context, seasonID string) ([]Shift, error)
	GetShift(ctx context.Context, shiftID string) (Shift, bool, error)
	CreateShift(ctx context.Context, s Shift) error
	ListSignupsBySeason(ctx context.Context, seasonID string) ([]Signup, error)
	GetSignup(ctx context.Context, signupID string) (Signup, bool, error)
	// CreateSignup enforces the shift capacity and one signup per family
	// per shift, returning ErrShiftFull or ErrAlreadySignedUp.
	CreateSignup(ctx context.Context, s Signup, capacity int) error
	UpdateSignupStatus(ctx context.Context, signupID string, status SignupStatus) error
}
