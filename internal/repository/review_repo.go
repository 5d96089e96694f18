package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillbridge/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create returns ErrDuplicate when the booking already has a review.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&rv).Error
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

// SetWorkerResponse writes the response once. It reports false when a
// response already exists.
func (r *ReviewRepository) SetWorkerResponse(ctx context.Context, id int64, text string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ? AND worker_response IS NULL", id).
		Updates(map[string]any{
			"worker_response":    text,
			"worker_response_at": at,
			"updated_at":         at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, int64, error) {
	limit, offset = normalizePage(limit, offset)
	q := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("service_id = ?", serviceID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.Review
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ReviewRepository) Summary(ctx context.Context, serviceID int64) (domain.RatingSummary, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("service_id = ?", serviceID).
		Scan(&row).Error
	if err != nil {
		return domain.RatingSummary{}, err
	}

	s := domain.RatingSummary{ServiceID: serviceID, Count: row.Count}
	if row.Average != nil {
		s.Average = *row.Average
	}
	return s, nil
}
