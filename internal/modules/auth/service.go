package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/validator"
	"skillbridge/internal/repository"
)

const maxPasswordBytes = 72

// Service contains all business logic for authentication and profiles
type Service struct {
	profiles ProfileRepository
	jwt      TokenIssuer
	stats    BookingStatsReader
	cost     int
}

func NewService(profiles ProfileRepository, jwt TokenIssuer, stats BookingStatsReader) *Service {
	return &Service{
		profiles: profiles,
		jwt:      jwt,
		stats:    stats,
		cost:     bcrypt.DefaultCost,
	}
}

// Register creates a profile without a role and signs the user in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	errs := validator.Validate(req)
	// bcrypt caps input at 72 bytes, the max tag counts runes
	if _, bad := errs["password"]; !bad && len(req.Password) > maxPasswordBytes {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["password"] = "max"
	}
	if errs != nil {
		return nil, apperr.Invalid(errs)
	}

	exists, err := s.profiles.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperr.Store(err)
	}

	p := &domain.Profile{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, apperr.Store(err)
	}

	token, err := s.jwt.GenerateToken(p.ID, p.Email)
	if err != nil {
		return nil, apperr.Store(err)
	}

	logger.Info("profile registered", zap.Int64("user_id", p.ID))
	return &AuthResult{Profile: p, AccessToken: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	p, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(p.ID, p.Email)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &AuthResult{Profile: p, AccessToken: token}, nil
}

// Me returns the caller's profile, with booking counts for the current role
// when withStats is set.
func (s *Service) Me(ctx context.Context, a access.ActorContext, withStats bool) (*ProfileResponse, error) {
	p, err := s.profile(ctx, a)
	if err != nil {
		return nil, err
	}
	out := toProfileResponse(p)

	if withStats && s.stats != nil {
		var counts map[domain.BookingStatus]int64
		switch p.Role() {
		case domain.RoleCustomer:
			counts, err = s.stats.CountByStatusForCustomer(ctx, p.ID)
		case domain.RoleWorker:
			counts, err = s.stats.CountByStatusForWorker(ctx, p.ID)
		}
		if err != nil {
			logger.Warn("profile stats failed", zap.Int64("user_id", p.ID), zap.Error(err))
		} else if counts != nil {
			out.Stats = toBookingStats(counts)
		}
	}
	return &out, nil
}

// SelectRole sets or switches the caller's role. Only identity is required.
func (s *Service) SelectRole(ctx context.Context, a access.ActorContext, role domain.Role) (*ProfileResponse, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.profiles.SetRole(ctx, a.ID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, apperr.Store(err)
	}

	logger.Info("role selected", zap.Int64("user_id", a.ID), zap.String("role", string(role)))
	return s.Me(ctx, a, false)
}

func (s *Service) UpdateProfile(ctx context.Context, a access.ActorContext, req UpdateProfileRequest) (*ProfileResponse, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, err
	}
	if req.FullName != nil {
		v := strings.TrimSpace(*req.FullName)
		req.FullName = &v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		req.Phone = &v
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperr.Invalid(errs)
	}

	if err := s.profiles.UpdateDetails(ctx, a.ID, req.FullName, req.Phone); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, apperr.Store(err)
	}
	return s.Me(ctx, a, false)
}

func (s *Service) profile(ctx context.Context, a access.ActorContext) (*domain.Profile, error) {
	if err := access.RequireIdentity(a); err != nil {
		return nil, err
	}
	p, err := s.profiles.GetByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, apperr.Store(err)
	}
	return p, nil
}
