package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/repository"
)

// Mock Profile Repository implementing the interface
type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockProfileRepo) SetRole(ctx context.Context, id int64, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *mockProfileRepo) UpdateDetails(ctx context.Context, id int64, fullName, phone *string) error {
	args := m.Called(ctx, id, fullName, phone)
	return args.Error(0)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

type mockStats struct {
	mock.Mock
}

func (m *mockStats) CountByStatusForCustomer(ctx context.Context, id int64) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func (m *mockStats) CountByStatusForWorker(ctx context.Context, id int64) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func newTestService() (*Service, *mockProfileRepo, *mockJWTService, *mockStats) {
	repo := new(mockProfileRepo)
	jwtSvc := new(mockJWTService)
	stats := new(mockStats)
	svc := NewService(repo, jwtSvc, stats)
	svc.cost = bcrypt.MinCost
	return svc, repo, jwtSvc, stats
}

func rolePtr(r domain.Role) *domain.Role { return &r }

func TestService_Register_Success(t *testing.T) {
	svc, repo, jwtSvc, _ := newTestService()

	repo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Email == "test@example.com" && p.SelectedRole == nil && p.PasswordHash != "password123"
	})).Return(nil)
	jwtSvc.On("GenerateToken", int64(42), "test@example.com").Return("fake-jwt-token", nil)

	res, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Test@Example.com ",
		Password: "password123",
		FullName: "Test User",
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", res.AccessToken)
	assert.Equal(t, int64(42), res.Profile.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.Profile.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("ExistsByEmail", mock.Anything, "dup@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "dup@example.com", Password: "password123", FullName: "Dup",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_RaceOnCreate(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("ExistsByEmail", mock.Anything, "race@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "race@example.com", Password: "password123", FullName: "Race",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Register_Validation(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "not-an-email", Password: "short", FullName: "X",
	})

	require.Error(t, err)
	ae := apperr.From(err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Details, "email")
	assert.Contains(t, ae.Details, "password")
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestService_Register_PasswordTooLongInBytes(t *testing.T) {
	svc, repo, _, _ := newTestService()

	// 70 runes, 140 bytes
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "accent@example.com", Password: strings.Repeat("é", 70), FullName: "Accent",
	})

	require.Error(t, err)
	ae := apperr.From(err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "max", ae.Details["password"])
	repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	stored := &domain.Profile{ID: 7, Email: "u@example.com", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		svc, repo, jwtSvc, _ := newTestService()
		repo.On("GetByEmail", mock.Anything, "u@example.com").Return(stored, nil)
		jwtSvc.On("GenerateToken", int64(7), "u@example.com").Return("tok", nil)

		res, err := svc.Login(context.Background(), LoginRequest{Email: "U@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "tok", res.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, jwtSvc, _ := newTestService()
		repo.On("GetByEmail", mock.Anything, "u@example.com").Return(stored, nil)

		_, err := svc.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not a credentials error", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", mock.Anything, "u@example.com").Return(nil, errors.New("db down"))

		_, err := svc.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "password123"})
		require.Error(t, err)
		assert.Equal(t, apperr.KindStore, apperr.From(err).Kind)
	})
}

func TestService_SelectRole(t *testing.T) {
	actor := access.ActorContext{ID: 5, Email: "a@example.com"}

	t.Run("no role yet", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("SetRole", mock.Anything, int64(5), domain.RoleWorker).Return(nil)
		repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Profile{ID: 5, SelectedRole: rolePtr(domain.RoleWorker)}, nil)

		p, err := svc.SelectRole(context.Background(), actor, domain.RoleWorker)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleWorker, *p.SelectedRole)
	})

	t.Run("switch", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		worker := actor
		worker.Role = domain.RoleWorker
		repo.On("SetRole", mock.Anything, int64(5), domain.RoleCustomer).Return(nil)
		repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Profile{ID: 5, SelectedRole: rolePtr(domain.RoleCustomer)}, nil)

		p, err := svc.SelectRole(context.Background(), worker, domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, *p.SelectedRole)
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		_, err := svc.SelectRole(context.Background(), actor, domain.Role("admin"))
		assert.ErrorIs(t, err, ErrInvalidRole)
		repo.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		_, err := svc.SelectRole(context.Background(), access.ActorContext{}, domain.RoleWorker)
		assert.ErrorIs(t, err, access.ErrUnauthenticated)
	})
}

func TestService_Me_WithStats(t *testing.T) {
	svc, repo, _, stats := newTestService()
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Profile{ID: 3, SelectedRole: rolePtr(domain.RoleCustomer)}, nil)
	stats.On("CountByStatusForCustomer", mock.Anything, int64(3)).Return(map[domain.BookingStatus]int64{
		domain.BookingPending:   2,
		domain.BookingCompleted: 1,
	}, nil)

	p, err := svc.Me(context.Background(), access.ActorContext{ID: 3, Role: domain.RoleCustomer}, true)
	require.NoError(t, err)
	require.NotNil(t, p.Stats)
	assert.Equal(t, int64(3), p.Stats.Total)
	assert.Equal(t, int64(2), p.Stats.Pending)
	stats.AssertNotCalled(t, "CountByStatusForWorker", mock.Anything, mock.Anything)
}

func TestService_Me_StatsFailureIsNotFatal(t *testing.T) {
	svc, repo, _, stats := newTestService()
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Profile{ID: 3, SelectedRole: rolePtr(domain.RoleWorker)}, nil)
	stats.On("CountByStatusForWorker", mock.Anything, int64(3)).Return(nil, errors.New("boom"))

	p, err := svc.Me(context.Background(), access.ActorContext{ID: 3, Role: domain.RoleWorker}, true)
	require.NoError(t, err)
	assert.Nil(t, p.Stats)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, repo, _, _ := newTestService()
	name := "  New Name "
	repo.On("UpdateDetails", mock.Anything, int64(9), mock.MatchedBy(func(s *string) bool {
		return s != nil && *s == "New Name"
	}), (*string)(nil)).Return(nil)
	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Profile{ID: 9, FullName: "New Name"}, nil)

	p, err := svc.UpdateProfile(context.Background(), access.ActorContext{ID: 9}, UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", p.FullName)
	repo.AssertExpectations(t)
}
