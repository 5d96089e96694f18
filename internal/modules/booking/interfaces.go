package booking

import (
	"context"

	"skillbridge/internal/domain"
	"skillbridge/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateWhereStatus(ctx context.Context, id int64, from domain.BookingStatus, fields map[string]any) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	ListByCustomer(ctx context.Context, customerID int64, f repository.BookingFilter) ([]domain.Booking, int64, error)
	ListByWorker(ctx context.Context, workerID int64, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

// ServiceLookup resolves the worker service a booking points to.
type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkerService, error)
}

// Notifier is told about every successful booking write.
type Notifier interface {
	Notify(ctx context.Context, event string, b *domain.Booking, workerID int64) error
}
