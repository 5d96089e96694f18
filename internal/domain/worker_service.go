package domain

import "time"

// WorkerService is an offering published by a worker. Services are
// deactivated, never deleted, because bookings reference them.
type WorkerService struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	WorkerID    int64     `json:"worker_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Category    string    `json:"category" gorm:"index"`
	Price       float64   `json:"price" gorm:"not null"`
	Location    string    `json:"location,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WorkerService) TableName() string { return "worker_services" }
