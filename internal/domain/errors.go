package domain

import "errors"

// Errors
var (
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrReleaseRequired        = errors.New("job must be released before advancing")
	ErrOutputRequired         = errors.New("production output required before advancing")
	ErrInvalidStageTransition = errors.New("target stage is not the next planned stage")
	ErrNotAtFinalStage        = errors.New("job has remaining planned stages")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrBlockReasonRequired    = errors.New("block reason required")
)
