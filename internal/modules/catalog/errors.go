package catalog

import "skillbridge/internal/pkg/apperr"

var (
	ErrServiceNotFound = apperr.NotFound("SERVICE_NOT_FOUND", "Service not found")
	ErrNothingToUpdate = apperr.Validation("NOTHING_TO_UPDATE", "No fields to update")
	ErrInvalidPrice    = apperr.Validation("INVALID_PRICE", "min_price must not exceed max_price")
)
