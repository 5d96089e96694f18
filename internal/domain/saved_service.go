package domain

import "time"

// SavedService is a bookmark of a worker service, unique per user.
type SavedService struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_service"`
	ServiceID int64     `json:"service_id" gorm:"not null;uniqueIndex:idx_user_service"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Service *WorkerService `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

func (SavedService) TableName() string { return "saved_services" }

// Models lists every table for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&Profile{},
		&WorkerService{},
		&Booking{},
		&Review{},
		&SavedService{},
	}
}
