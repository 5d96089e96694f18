package domain

import "time"

type Role string

const (
	RoleWorker   Role = "worker"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleCustomer
}

// Profile is one row per user. SelectedRole stays nil until the user picks a
// role and may be switched afterwards.
type Profile struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	SelectedRole *Role     `json:"selected_role" gorm:"type:varchar(16)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// Role returns the selected role or "" when none was chosen yet.
func (p *Profile) Role() Role {
	if p == nil || p.SelectedRole == nil {
		return ""
	}
	return *p.SelectedRole
}
