package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"skillbridge/internal/domain"
)

type ServiceFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type WorkerServiceRepository struct {
	db *gorm.DB
}

func NewWorkerServiceRepository(db *gorm.DB) *WorkerServiceRepository {
	return &WorkerServiceRepository{db: db}
}

func (r *WorkerServiceRepository) Create(ctx context.Context, s *domain.WorkerService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *WorkerServiceRepository) GetByID(ctx context.Context, id int64) (*domain.WorkerService, error) {
	var s domain.WorkerService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateFields patches a service. worker_id is never part of the patch.
func (r *WorkerServiceRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	delete(fields, "worker_id")
	fields["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.WorkerService{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WorkerServiceRepository) List(ctx context.Context, f ServiceFilter) ([]domain.WorkerService, int64, error) {
	limit, offset := normalizePage(f.Limit, f.Offset)

	q := r.db.WithContext(ctx).Model(&domain.WorkerService{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.WorkerService
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *WorkerServiceRepository) ListByWorker(ctx context.Context, workerID int64) ([]domain.WorkerService, error) {
	var rows []domain.WorkerService
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
