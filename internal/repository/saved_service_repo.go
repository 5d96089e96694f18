package repository

import (
	"context"

	"gorm.io/gorm"

	"skillbridge/internal/domain"
)

type SavedServiceRepository struct {
	db *gorm.DB
}

func NewSavedServiceRepository(db *gorm.DB) *SavedServiceRepository {
	return &SavedServiceRepository{db: db}
}

func (r *SavedServiceRepository) Add(ctx context.Context, userID, serviceID int64) (*domain.SavedService, error) {
	s := &domain.SavedService{UserID: userID, ServiceID: serviceID}
	if err := r.db.WithContext(ctx).Omit("Service").Create(s).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s, nil
}

// Remove reports whether a row was deleted.
func (r *SavedServiceRepository) Remove(ctx context.Context, userID, serviceID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Delete(&domain.SavedService{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *SavedServiceRepository) Exists(ctx context.Context, userID, serviceID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SavedService{}).
		Where("user_id = ? AND service_id = ?", userID, serviceID).
		Count(&count).Error
	return count > 0, err
}

func (r *SavedServiceRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.SavedService, int64, error) {
	limit, offset = normalizePage(limit, offset)
	q := r.db.WithContext(ctx).
		Model(&domain.SavedService{}).
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.SavedService
	err := q.Preload("Service").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
