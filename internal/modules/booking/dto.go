package booking

import "skillbridge/internal/domain"

type CreateBookingRequest struct {
	ServiceID   int64   `json:"service_id" validate:"required,gt=0"`
	BookingDate string  `json:"booking_date" validate:"required,isodate"`
	StartTime   string  `json:"start_time" validate:"required,clock"`
	EndTime     *string `json:"end_time" validate:"omitempty,clock"`
	Notes       string  `json:"notes" validate:"max=2000"`
	Address     string  `json:"address" validate:"max=500"`
}

// UpdateBookingRequest carries the fields a customer may edit while the
// booking is pending. Nil fields are left unchanged.
type UpdateBookingRequest struct {
	BookingDate *string `json:"booking_date" validate:"omitempty,isodate"`
	StartTime   *string `json:"start_time" validate:"omitempty,clock"`
	EndTime     *string `json:"end_time" validate:"omitempty,clock"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type UpdatePaymentRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

type ListFilter struct {
	Status domain.BookingStatus
	Limit  int
	Offset int
}

type ListResult struct {
	Items  []domain.Booking `json:"items"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
