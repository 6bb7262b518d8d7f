package store

import "errors"

// Sentinel errors returned by store operations. Handlers map these onto
// HTTP statuses; none of them is fatal to the application.
var (
	ErrDuplicateEmail        = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateAcceptance   = errors.New("request already accepted by this user")
	ErrIncompatibleBloodType = errors.New("blood type not compatible with this request")
	ErrReasonRequired        = errors.New("a reason is required")
	ErrNoAcceptedOffer       = errors.New("request has no accepted offer")
	ErrRequestClosed         = errors.New("request is already completed")
)
