package draft

import "errors"

var (
	ErrNoManagers       = errors.New("draft has no managers")
	ErrOutOfOrder       = errors.New("pick number is not the current pick")
	ErrNotOnTheClock    = errors.New("team is not on the clock")
	ErrAlreadyPicked    = errors.New("player has already been picked")
	ErrPlayerIneligible = errors.New("player is not in this draft's division")
	ErrSynthesized      = errors.New("draft session is a local fallback and cannot take picks")
	ErrSessionExists    = errors.New("draft session already exists for division")
)
