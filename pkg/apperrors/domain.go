package apperrors

import (
	"net/http"
)

// Factories for common domain errors. Repository errors such as
// gorm.ErrRecordNotFound get converted here before leaving a service.

// ErrNotFound is also used when an access filter hides an existing row:
// the caller must not be able to tell the two cases apart.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// Predefined errors for the frequent static cases.

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Community membership ---

var ErrNotCommunityMember = New(
	CodeForbidden,
	"community",
	"You are not an active member of this community",
	http.StatusForbidden,
)

var ErrAlreadyMember = New(
	CodeConflict,
	"community",
	"Active membership already exists",
	http.StatusConflict,
)

var ErrMemberCapReached = New(
	CodeConflict,
	"community",
	"Community member limit has been reached",
	http.StatusConflict,
)

var ErrOwnerImmutable = New(
	CodeInvalidOperation,
	"community",
	"The owner role cannot be reassigned or removed",
	http.StatusBadRequest,
)

var ErrOwnerCannotLeave = New(
	CodeInvalidOperation,
	"community",
	"The owner cannot leave their own community",
	http.StatusBadRequest,
)

var ErrInviteRequired = New(
	CodeForbidden,
	"community",
	"This community is private; an invitation is required to join",
	http.StatusForbidden,
)

// --- Job posts ---

var ErrDesignatedUserUnreachable = New(
	CodeForbidden,
	"job_post",
	"Designated user does not share any community with you",
	http.StatusForbidden,
)

// --- OAuth login ---

var ErrProviderUnavailable = New(
	CodeExternalServiceError,
	"oauth",
	"Identity provider error",
	http.StatusServiceUnavailable,
)

var ErrProviderTokenRejected = New(
	CodeUnauthorized,
	"oauth",
	"Identity provider rejected the access token",
	http.StatusUnauthorized,
)
