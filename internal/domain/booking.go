package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid || s == PaymentRefunded
}

// Booking links a customer to a worker service. ServiceID and CustomerID are
// fixed at creation; the worker is reached through the service.
type Booking struct {
	ID                 int64         `json:"id" gorm:"primaryKey"`
	ServiceID          int64         `json:"service_id" gorm:"not null;index"`
	CustomerID         int64         `json:"customer_id" gorm:"not null;index"`
	BookingDate        string        `json:"booking_date" gorm:"type:varchar(10);not null"`
	StartTime          string        `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime            *string       `json:"end_time,omitempty" gorm:"type:varchar(5)"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	Price              *float64      `json:"price,omitempty"`
	PaymentStatus      PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	Address            string        `json:"address,omitempty"`
	CancellationReason *string       `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledBy        *Role         `json:"cancelled_by,omitempty" gorm:"type:varchar(16)"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Service *WorkerService `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

func (Booking) TableName() string { return "bookings" }
