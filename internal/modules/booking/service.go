package booking

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/validator"
	"skillbridge/internal/repository"
)

const maxReasonLen = 500

type Service struct {
	bookings BookingRepository
	services ServiceLookup
	notifier Notifier
	now      func() time.Time
}

func NewService(bookings BookingRepository, services ServiceLookup, notifier Notifier) *Service {
	return &Service{
		bookings: bookings,
		services: services,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}

func (s *Service) Create(ctx context.Context, a access.ActorContext, req CreateBookingRequest) (*domain.Booking, error) {
	if err := CheckRole(ActionCreate, a); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}
	if err := s.checkSchedule(req.BookingDate, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.Store(err)
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	d, err := Decide(Request{Action: ActionCreate, Actor: a})
	if err != nil {
		return nil, err
	}

	price := svc.Price
	b := &domain.Booking{
		ServiceID:     svc.ID,
		CustomerID:    a.ID,
		BookingDate:   req.BookingDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        d.Next,
		Price:         &price,
		PaymentStatus: domain.PaymentUnpaid,
		Notes:         strings.TrimSpace(req.Notes),
		Address:       strings.TrimSpace(req.Address),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, apperr.Store(err)
	}
	b.Service = svc

	s.notify(ctx, d.Event, b, svc.WorkerID)
	return b, nil
}

// Update edits date, time, notes or address of the caller's pending booking.
func (s *Service) Update(ctx context.Context, a access.ActorContext, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := CheckRole(ActionUpdate, a); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	b, workerID, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	d, err := Decide(s.request(ActionUpdate, a, b, workerID))
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	date, start, end := b.BookingDate, b.StartTime, b.EndTime
	if req.BookingDate != nil {
		date = *req.BookingDate
		fields["booking_date"] = date
	}
	if req.StartTime != nil {
		start = *req.StartTime
		fields["start_time"] = start
	}
	if req.EndTime != nil {
		end = req.EndTime
		fields["end_time"] = *end
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	// past dates stored earlier are kept unless the date itself changes
	checkDate := date
	if req.BookingDate == nil {
		checkDate = ""
	}
	if err := s.checkSchedule(checkDate, start, end); err != nil {
		return nil, err
	}

	ok, err := s.bookings.UpdateWhereStatus(ctx, b.ID, b.Status, fields)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !ok {
		return nil, ErrNotEditable
	}

	b.BookingDate, b.StartTime, b.EndTime = date, start, end
	if v, ok := fields["notes"].(string); ok {
		b.Notes = v
	}
	if v, ok := fields["address"].(string); ok {
		b.Address = v
	}
	b.UpdatedAt = s.now().UTC()

	s.notify(ctx, d.Event, b, workerID)
	return b, nil
}

func (s *Service) Confirm(ctx context.Context, a access.ActorContext, id int64) (*domain.Booking, error) {
	return s.transition(ctx, a, id, ActionConfirm, "")
}

func (s *Service) Complete(ctx context.Context, a access.ActorContext, id int64) (*domain.Booking, error) {
	return s.transition(ctx, a, id, ActionComplete, "")
}

// Cancel is open to the booking's customer and the service's worker.
func (s *Service) Cancel(ctx context.Context, a access.ActorContext, id int64, reason string) (*domain.Booking, error) {
	if err := CheckRole(ActionCancel, a); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if utf8.RuneCountInString(reason) > maxReasonLen {
		return nil, ErrReasonTooLong
	}
	return s.transition(ctx, a, id, ActionCancel, reason)
}

func (s *Service) transition(ctx context.Context, a access.ActorContext, id int64, action Action, reason string) (*domain.Booking, error) {
	if err := CheckRole(action, a); err != nil {
		return nil, err
	}

	b, workerID, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	d, err := Decide(s.request(action, a, b, workerID))
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"status": d.Next}
	if action == ActionCancel {
		fields["cancellation_reason"] = reason
		fields["cancelled_by"] = d.CancelledBy
	}

	ok, err := s.bookings.UpdateWhereStatus(ctx, b.ID, b.Status, fields)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !ok {
		return nil, ErrStatusChanged
	}

	b.Status = d.Next
	if action == ActionCancel {
		by := d.CancelledBy
		b.CancellationReason = &reason
		b.CancelledBy = &by
	}
	b.UpdatedAt = s.now().UTC()

	logger.Info("booking status changed",
		zap.Int64("booking_id", b.ID),
		zap.String("action", string(action)),
		zap.String("status", string(b.Status)),
		zap.Int64("actor_id", a.ID))

	s.notify(ctx, d.Event, b, workerID)
	return b, nil
}

// Get returns a booking to either of its parties.
func (s *Service) Get(ctx context.Context, a access.ActorContext, id int64) (*domain.Booking, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, err
	}

	b, workerID, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ID != b.CustomerID && a.ID != workerID {
		return nil, access.ErrNotOwner
	}
	return b, nil
}

func (s *Service) ListForCustomer(ctx context.Context, a access.ActorContext, f ListFilter) (*ListResult, error) {
	if err := access.RequireRole(a, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	items, total, err := s.bookings.ListByCustomer(ctx, a.ID, repository.BookingFilter(f))
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &ListResult{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *Service) ListForWorker(ctx context.Context, a access.ActorContext, f ListFilter) (*ListResult, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	items, total, err := s.bookings.ListByWorker(ctx, a.ID, repository.BookingFilter(f))
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &ListResult{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// UpdatePaymentStatus records a payment or refund. Only the service's worker
// may do it.
func (s *Service) UpdatePaymentStatus(ctx context.Context, a access.ActorContext, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	if status != domain.PaymentPaid && status != domain.PaymentRefunded {
		return nil, ErrInvalidPayment
	}

	b, workerID, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(a, workerID); err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCancelled && status != domain.PaymentRefunded {
		return nil, ErrPaymentNotAllowed
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, b.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, repository.ErrGuardFailed) {
			return nil, ErrPaymentNotAllowed
		}
		return nil, apperr.Store(err)
	}
	b.PaymentStatus = status
	b.UpdatedAt = s.now().UTC()
	return b, nil
}

// load reads a booking and resolves the worker who owns its service.
func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, int64, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrBookingNotFound
		}
		return nil, 0, apperr.Store(err)
	}

	if b.Service != nil {
		return b, b.Service.WorkerID, nil
	}

	svc, err := s.services.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrServiceNotFound
		}
		return nil, 0, apperr.Store(err)
	}
	b.Service = svc
	return b, svc.WorkerID, nil
}

func (s *Service) request(action Action, a access.ActorContext, b *domain.Booking, workerID int64) Request {
	return Request{
		Action:     action,
		Current:    b.Status,
		Actor:      a,
		IsCustomer: a.ID == b.CustomerID,
		IsWorker:   a.ID == workerID,
	}
}

func (s *Service) checkSchedule(date, start string, end *string) error {
	if date != "" && date < s.today() {
		return ErrDateInPast
	}
	if end != nil && *end != "" && *end <= start {
		return ErrEndBeforeStart
	}
	return nil
}

func (s *Service) notify(ctx context.Context, event string, b *domain.Booking, workerID int64) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event, b, workerID); err != nil {
		logger.Warn("booking notification failed",
			zap.String("event", event),
			zap.Int64("booking_id", b.ID),
			zap.Error(err))
	}
}
