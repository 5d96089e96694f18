package auth

import (
	"time"

	"skillbridge/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SelectRoleRequest struct {
	Role domain.Role `json:"role"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Profile     *domain.Profile `json:"user"`
	AccessToken string          `json:"token"`
}

// BookingStats counts the caller's bookings in the current role.
type BookingStats struct {
	Total     int64 `json:"total_bookings"`
	Pending   int64 `json:"pending_bookings"`
	Confirmed int64 `json:"confirmed_bookings"`
	Completed int64 `json:"completed_bookings"`
	Cancelled int64 `json:"cancelled_bookings"`
}

// ProfileResponse is the /me payload.
type ProfileResponse struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	Phone        string        `json:"phone,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	SelectedRole *domain.Role  `json:"selected_role"`
	CreatedAt    time.Time     `json:"created_at"`
	Stats        *BookingStats `json:"stats,omitempty"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     p.FullName,
		Phone:        p.Phone,
		AvatarURL:    p.AvatarURL,
		SelectedRole: p.SelectedRole,
		CreatedAt:    p.CreatedAt,
	}
}

func toBookingStats(counts map[domain.BookingStatus]int64) *BookingStats {
	s := &BookingStats{
		Pending:   counts[domain.BookingPending],
		Confirmed: counts[domain.BookingConfirmed],
		Completed: counts[domain.BookingCompleted],
		Cancelled: counts[domain.BookingCancelled],
	}
	s.Total = s.Pending + s.Confirmed + s.Completed + s.Cancelled
	return s
}
