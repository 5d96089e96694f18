package auth

import "skillbridge/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "Email or password is incorrect")
	ErrEmailAlreadyExists = apperr.Conflict("EMAIL_EXISTS", "This email is already registered")
	ErrProfileNotFound    = apperr.NotFound("PROFILE_NOT_FOUND", "Profile not found")
	ErrInvalidRole        = apperr.Validation("INVALID_ROLE", "Role must be worker or customer")
)
