package repositories

import "errors"

// Sentinel errors surfaced by repositories and translated into the
// apperrors taxonomy at the service boundary.
var (
	ErrMemberCapReached        = errors.New("community member cap reached")
	ErrMembershipAlreadyActive = errors.New("active membership already exists")
)
