package auth

import (
	"context"

	"skillbridge/internal/domain"
)

// ProfileRepository lists only the methods the auth service uses.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetRole(ctx context.Context, id int64, role domain.Role) error
	UpdateDetails(ctx context.Context, id int64, fullName, phone *string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// BookingStatsReader is implemented by the booking repository.
type BookingStatsReader interface {
	CountByStatusForCustomer(ctx context.Context, customerID int64) (map[domain.BookingStatus]int64, error)
	CountByStatusForWorker(ctx context.Context, workerID int64) (map[domain.BookingStatus]int64, error)
}
