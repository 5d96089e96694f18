package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/cache"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/validator"
	"skillbridge/internal/repository"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.WorkerService) error
	GetByID(ctx context.Context, id int64) (*domain.WorkerService, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	List(ctx context.Context, f repository.ServiceFilter) ([]domain.WorkerService, int64, error)
	ListByWorker(ctx context.Context, workerID int64) ([]domain.WorkerService, error)
}

type Service struct {
	repo  ServiceRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewService(repo ServiceRepository, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{repo: repo, cache: c, ttl: ttl}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("service:%d", id)
}

/* ---------- WRITES ---------- */

func (s *Service) Create(ctx context.Context, a access.ActorContext, req CreateServiceRequest) (*domain.WorkerService, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	svc := &domain.WorkerService{
		WorkerID:    a.ID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Price:       req.Price,
		Location:    strings.TrimSpace(req.Location),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, apperr.Store(err)
	}

	logger.Info("service created", zap.Int64("service_id", svc.ID), zap.Int64("worker_id", a.ID))
	return svc, nil
}

func (s *Service) Update(ctx context.Context, a access.ActorContext, id int64, req UpdateServiceRequest) (*domain.WorkerService, error) {
	if _, err := s.EnsureOwner(ctx, a, id); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	return s.write(ctx, id, fields)
}

// SetActive publishes or hides a service. Services are never deleted.
func (s *Service) SetActive(ctx context.Context, a access.ActorContext, id int64, active bool) (*domain.WorkerService, error) {
	if _, err := s.EnsureOwner(ctx, a, id); err != nil {
		return nil, err
	}
	return s.write(ctx, id, map[string]any{"is_active": active})
}

// SetImageURL records an uploaded image on a service owned by the caller.
func (s *Service) SetImageURL(ctx context.Context, a access.ActorContext, id int64, url string) (*domain.WorkerService, error) {
	if _, err := s.EnsureOwner(ctx, a, id); err != nil {
		return nil, err
	}
	return s.write(ctx, id, map[string]any{"image_url": url})
}

// EnsureOwner runs the worker gate for a service: role first, then ownership.
func (s *Service) EnsureOwner(ctx context.Context, a access.ActorContext, id int64) (*domain.WorkerService, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(a, svc.WorkerID); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) write(ctx context.Context, id int64, fields map[string]any) (*domain.WorkerService, error) {
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.Store(err)
	}
	s.invalidate(ctx, id)
	return s.load(ctx, id)
}

/* ---------- READS ---------- */

// Get returns a service. Inactive services are visible to their owner only;
// everyone else gets not found.
func (s *Service) Get(ctx context.Context, viewer access.ActorContext, id int64) (*domain.WorkerService, error) {
	svc, err := s.cached(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive && (!viewer.Authenticated() || viewer.ID != svc.WorkerID) {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, ErrInvalidPrice
	}
	rows, total, err := s.repo.List(ctx, repository.ServiceFilter(f))
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &ListResult{Items: rows, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// ListMine returns all of the worker's services, hidden ones included.
func (s *Service) ListMine(ctx context.Context, a access.ActorContext) ([]domain.WorkerService, error) {
	if err := access.RequireRole(a, domain.RoleWorker); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByWorker(ctx, a.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return rows, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.WorkerService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, apperr.Store(err)
	}
	return svc, nil
}

// cached reads through the cache. Cache failures fall back to the store.
func (s *Service) cached(ctx context.Context, id int64) (*domain.WorkerService, error) {
	key := cacheKey(id)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("catalog cache get failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var svc domain.WorkerService
		if err := json.Unmarshal(raw, &svc); err == nil {
			return &svc, nil
		}
	}

	svc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(svc); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			logger.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return svc, nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		logger.Warn("catalog cache delete failed", zap.Int64("service_id", id), zap.Error(err))
	}
}
