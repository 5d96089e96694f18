package review

import "skillbridge/internal/pkg/apperr"

var (
	ErrBookingNotFound = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrReviewNotFound  = apperr.NotFound("REVIEW_NOT_FOUND", "Review not found")
	ErrServiceNotFound = apperr.NotFound("SERVICE_NOT_FOUND", "Service not found")

	ErrReviewNotAllowed = apperr.State("REVIEW_NOT_ALLOWED", "You can review only after a completed booking")
	ErrAlreadyReviewed  = apperr.Conflict("ALREADY_REVIEWED", "This booking has already been reviewed")
	ErrAlreadyResponded = apperr.Conflict("ALREADY_RESPONDED", "You have already responded to this review")

	ErrResponseRequired = apperr.Validation("RESPONSE_REQUIRED", "Response text is required")
	ErrResponseTooLong  = apperr.Validation("RESPONSE_TOO_LONG", "Response must be at most 2000 characters")
	ErrInvalidID        = apperr.Validation("INVALID_ID", "Invalid ID")
)
