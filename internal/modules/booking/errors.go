package booking

import "skillbridge/internal/pkg/apperr"

var (
	ErrBookingNotFound = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrServiceNotFound = apperr.NotFound("SERVICE_NOT_FOUND", "Service not found")

	ErrServiceInactive   = apperr.State("SERVICE_INACTIVE", "This service is not accepting bookings")
	ErrNotEditable       = apperr.State("BOOKING_NOT_EDITABLE", "Only pending bookings can be updated")
	ErrNotConfirmable    = apperr.State("BOOKING_NOT_PENDING", "Only pending bookings can be confirmed")
	ErrNotCompletable    = apperr.State("BOOKING_NOT_CONFIRMED", "Only confirmed bookings can be completed")
	ErrNotCancellable    = apperr.State("BOOKING_NOT_CANCELLABLE", "Completed or cancelled bookings cannot be cancelled")
	ErrInvalidTransition = apperr.State("INVALID_STATUS_TRANSITION", "This status change is not allowed")
	ErrStatusChanged     = apperr.State("BOOKING_STATUS_CHANGED", "Booking status has changed, please reload")
	ErrPaymentNotAllowed = apperr.State("PAYMENT_NOT_ALLOWED", "Only a refund can be recorded on a cancelled booking")

	ErrDateInPast      = apperr.Validation("DATE_IN_PAST", "Booking date cannot be in the past")
	ErrEndBeforeStart  = apperr.Validation("INVALID_TIME_RANGE", "End time must be after start time")
	ErrReasonRequired  = apperr.Validation("REASON_REQUIRED", "Cancellation reason is required")
	ErrReasonTooLong   = apperr.Validation("REASON_TOO_LONG", "Cancellation reason must be at most 500 characters")
	ErrInvalidPayment  = apperr.Validation("INVALID_PAYMENT_STATUS", "Payment status must be paid or refunded")
	ErrInvalidStatus   = apperr.Validation("INVALID_STATUS", "Unknown booking status")
	ErrUnknownAction   = apperr.Validation("UNKNOWN_ACTION", "Unknown booking action")
	ErrNothingToUpdate = apperr.Validation("NOTHING_TO_UPDATE", "No fields to update")
)
