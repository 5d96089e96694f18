package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillbridge/internal/domain"
)

type BookingFilter struct {
	Status domain.BookingStatus
	Limit  int
	Offset int
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit("Service").Create(b).Error
}

// GetByID loads a booking with its service so the owning worker is known.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Service").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateWhereStatus applies fields only while the booking is still in
// status from. It reports false when the row moved on or does not exist.
func (r *BookingRepository) UpdateWhereStatus(ctx context.Context, id int64, from domain.BookingStatus, fields map[string]any) (bool, error) {
	fields["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// UpdatePaymentStatus writes the payment status. Marking a booking paid
// is refused with ErrGuardFailed once the booking is cancelled.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id)
	if status == domain.PaymentPaid {
		q = q.Where("status <> ?", domain.BookingCancelled)
	}

	tx := q.Updates(map[string]any{
		"payment_status": status,
		"updated_at":     time.Now().UTC(),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrGuardFailed
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("bookings.customer_id = ?", customerID)
	return r.list(q, f)
}

func (r *BookingRepository) ListByWorker(ctx context.Context, workerID int64, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Joins("JOIN worker_services ON worker_services.id = bookings.service_id").
		Where("worker_services.worker_id = ?", workerID)
	return r.list(q, f)
}

func (r *BookingRepository) list(q *gorm.DB, f BookingFilter) ([]domain.Booking, int64, error) {
	limit, offset := normalizePage(f.Limit, f.Offset)
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Booking
	err := q.Preload("Service").
		Order("bookings.booking_date DESC").
		Order("bookings.start_time DESC").
		Order("bookings.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type statusCount struct {
	Status domain.BookingStatus
	Total  int64
}

func (r *BookingRepository) CountByStatusForCustomer(ctx context.Context, customerID int64) (map[domain.BookingStatus]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("bookings.customer_id = ?", customerID)
	return countByStatus(q)
}

func (r *BookingRepository) CountByStatusForWorker(ctx context.Context, workerID int64) (map[domain.BookingStatus]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Joins("JOIN worker_services ON worker_services.id = bookings.service_id").
		Where("worker_services.worker_id = ?", workerID)
	return countByStatus(q)
}

func countByStatus(q *gorm.DB) (map[domain.BookingStatus]int64, error) {
	var rows []statusCount
	err := q.Select("bookings.status AS status, COUNT(*) AS total").
		Group("bookings.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
