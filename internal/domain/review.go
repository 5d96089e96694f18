package domain

import "time"

// Review is written by the customer of a completed booking. BookingID is
// unique so a booking can carry at most one review.
type Review struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	BookingID        int64      `json:"booking_id" gorm:"not null;uniqueIndex"`
	ServiceID        int64      `json:"service_id" gorm:"not null;index"`
	CustomerID       int64      `json:"customer_id" gorm:"not null;index"`
	WorkerID         int64      `json:"worker_id" gorm:"not null;index"`
	Rating           int        `json:"rating" gorm:"not null"`
	Comment          string     `json:"comment,omitempty" gorm:"type:text"`
	WorkerResponse   *string    `json:"worker_response,omitempty" gorm:"type:text"`
	WorkerResponseAt *time.Time `json:"worker_response_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }

type RatingSummary struct {
	ServiceID int64   `json:"service_id"`
	Count     int64   `json:"count"`
	Average   float64 `json:"average"`
}
