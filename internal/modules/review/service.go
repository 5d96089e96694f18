package review

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/validator"
	"skillbridge/internal/repository"
)

const maxResponseLen = 2000

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	SetWorkerResponse(ctx context.Context, id int64, text string, at time.Time) (bool, error)
	ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, int64, error)
	Summary(ctx context.Context, serviceID int64) (domain.RatingSummary, error)
}

type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ServiceGate interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkerService, error)
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
	services ServiceGate
	now      func() time.Time
}

func NewService(reviews ReviewRepository, bookings BookingGate, services ServiceGate) *Service {
	return &Service{reviews: reviews, bookings: bookings, services: services, now: time.Now}
}

// Create stores the customer's review of a completed booking. One review per
// booking; the unique index on booking_id settles concurrent submissions.
func (s *Service) Create(ctx context.Context, a access.ActorContext, req CreateReviewRequest) (*domain.Review, error) {
	if err := access.RequireRole(a, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperr.Store(err)
	}
	if err := access.RequireOwner(a, b.CustomerID); err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	workerID, err := s.workerOf(ctx, b.ServiceID, b.Service)
	if err != nil {
		return nil, err
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		CustomerID: a.ID,
		WorkerID:   workerID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, apperr.Store(err)
	}
	return rv, nil
}

// Respond sets the worker's response. It can be written once.
func (s *Service) Respond(ctx context.Context, a access.ActorContext, reviewID int64, text string) (*domain.Review, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrResponseRequired
	}
	if utf8.RuneCountInString(text) > maxResponseLen {
		return nil, ErrResponseTooLong
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, apperr.Store(err)
	}

	workerID, err := s.workerOf(ctx, rv.ServiceID, nil)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(a, workerID); err != nil {
		return nil, err
	}
	if rv.WorkerResponse != nil {
		return nil, ErrAlreadyResponded
	}

	at := s.now().UTC()
	ok, err := s.reviews.SetWorkerResponse(ctx, rv.ID, text, at)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !ok {
		return nil, ErrAlreadyResponded
	}

	rv.WorkerResponse = &text
	rv.WorkerResponseAt = &at
	rv.UpdatedAt = at
	return rv, nil
}

func (s *Service) ListForService(ctx context.Context, serviceID int64, limit, offset int) (*ListResult, error) {
	if serviceID <= 0 {
		return nil, ErrInvalidID
	}
	items, total, err := s.reviews.ListByService(ctx, serviceID, limit, offset)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &ListResult{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) Summary(ctx context.Context, serviceID int64) (*domain.RatingSummary, error) {
	if serviceID <= 0 {
		return nil, ErrInvalidID
	}
	sum, err := s.reviews.Summary(ctx, serviceID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	sum.Average = math.Round(sum.Average*100) / 100
	return &sum, nil
}

// GetForBooking returns the review of a booking to either of its parties.
func (s *Service) GetForBooking(ctx context.Context, a access.ActorContext, bookingID int64) (*domain.Review, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperr.Store(err)
	}
	workerID, err := s.workerOf(ctx, b.ServiceID, b.Service)
	if err != nil {
		return nil, err
	}
	if a.ID != b.CustomerID && a.ID != workerID {
		return nil, access.ErrNotOwner
	}

	rv, err := s.reviews.GetByBookingID(ctx, b.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, apperr.Store(err)
	}
	return rv, nil
}

func (s *Service) workerOf(ctx context.Context, serviceID int64, loaded *domain.WorkerService) (int64, error) {
	if loaded != nil {
		return loaded.WorkerID, nil
	}
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrServiceNotFound
		}
		return 0, apperr.Store(err)
	}
	return svc.WorkerID, nil
}
