package workbond

import "errors"

var (
	ErrShiftFull       = errors.New("shift is full")
	ErrAlreadySignedUp = errors.New("family already signed up for shift")
)
