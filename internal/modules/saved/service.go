package saved

import (
	"context"
	"errors"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/repository"
)

var ErrServiceNotFound = apperr.NotFound("SERVICE_NOT_FOUND", "Service not found")

type SavedRepository interface {
	Add(ctx context.Context, userID, serviceID int64) (*domain.SavedService, error)
	Remove(ctx context.Context, userID, serviceID int64) (bool, error)
	Exists(ctx context.Context, userID, serviceID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.SavedService, int64, error)
}

type ServiceLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkerService, error)
}

// Service manages bookmarks. Any signed-in user may save, whatever the role.
type Service struct {
	repo     SavedRepository
	services ServiceLookup
}

func NewService(repo SavedRepository, services ServiceLookup) *Service {
	return &Service{repo: repo, services: services}
}

// Toggle removes the bookmark when present and adds it otherwise.
func (s *Service) Toggle(ctx context.Context, a access.ActorContext, serviceID int64) (bool, error) {
	if err := access.RequireIdentity(a); err != nil {
		return false, err
	}

	removed, err := s.repo.Remove(ctx, a.ID, serviceID)
	if err != nil {
		return false, apperr.Store(err)
	}
	if removed {
		return false, nil
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrServiceNotFound
		}
		return false, apperr.Store(err)
	}
	if !svc.IsActive {
		return false, ErrServiceNotFound
	}

	if _, err := s.repo.Add(ctx, a.ID, serviceID); err != nil {
		// a concurrent toggle already saved it
		if errors.Is(err, repository.ErrDuplicate) {
			return true, nil
		}
		return false, apperr.Store(err)
	}
	return true, nil
}

func (s *Service) List(ctx context.Context, a access.ActorContext, limit, offset int) ([]domain.SavedService, int64, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, 0, err
	}
	rows, total, err := s.repo.ListByUser(ctx, a.ID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Store(err)
	}
	return rows, total, nil
}

func (s *Service) IsSaved(ctx context.Context, a access.ActorContext, serviceID int64) (bool, error) {
	if err := access.RequireIdentity(a); err != nil {
		return false, err
	}
	ok, err := s.repo.Exists(ctx, a.ID, serviceID)
	if err != nil {
		return false, apperr.Store(err)
	}
	return ok, nil
}
