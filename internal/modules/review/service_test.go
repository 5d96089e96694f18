package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/repository"
)

/* ==================== MOCKS ==================== */

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if args.Error(0) == nil {
		rv.ID = 1
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) SetWorkerResponse(ctx context.Context, id int64, text string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, text, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByService(ctx context.Context, serviceID int64, limit, offset int) ([]domain.Review, int64, error) {
	args := m.Called(ctx, serviceID, limit, offset)
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) Summary(ctx context.Context, serviceID int64) (domain.RatingSummary, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(domain.RatingSummary), args.Error(1)
}

type MockBookingGate struct {
	mock.Mock
}

func (m *MockBookingGate) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockServiceGate struct {
	mock.Mock
}

func (m *MockServiceGate) GetByID(ctx context.Context, id int64) (*domain.WorkerService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkerService), args.Error(1)
}

/* ==================== HELPERS ==================== */

var (
	customerU1 = access.ActorContext{ID: 1, Role: domain.RoleCustomer}
	workerW1   = access.ActorContext{ID: 2, Role: domain.RoleWorker}
)

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:         10,
		ServiceID:  5,
		CustomerID: 1,
		Status:     domain.BookingCompleted,
		Service:    &domain.WorkerService{ID: 5, WorkerID: 2},
	}
}

func newTestService() (*Service, *MockReviewRepository, *MockBookingGate, *MockServiceGate) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingGate)
	services := new(MockServiceGate)
	return NewService(reviews, bookings, services), reviews, bookings, services
}

/* ==================== TESTS ==================== */

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	svc, reviews, bookings, _ := newTestService()

	bookings.On("GetByID", ctx, int64(10)).Return(completedBooking(), nil)
	reviews.On("ExistsForBooking", ctx, int64(10)).Return(false, nil)
	reviews.On("Create", ctx, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.BookingID == 10 && rv.ServiceID == 5 && rv.WorkerID == 2 && rv.CustomerID == 1
	})).Return(nil)

	rv, err := svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: 10, Rating: 5, Comment: " great "})

	require.NoError(t, err)
	assert.Equal(t, "great", rv.Comment)
	reviews.AssertExpectations(t)
}

func TestCreate_RequiresCompletedBooking(t *testing.T) {
	ctx := context.Background()
	svc, reviews, bookings, _ := newTestService()

	for _, status := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled} {
		b := completedBooking()
		b.Status = status
		bookings.On("GetByID", ctx, int64(10)).Return(b, nil).Once()

		_, err := svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: 10, Rating: 4})
		assert.ErrorIs(t, err, ErrReviewNotAllowed, string(status))
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_OnlyBookingCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings, _ := newTestService()

	bookings.On("GetByID", ctx, int64(10)).Return(completedBooking(), nil)

	other := access.ActorContext{ID: 99, Role: domain.RoleCustomer}
	_, err := svc.Create(ctx, other, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, access.ErrNotOwner)

	_, err = svc.Create(ctx, workerW1, CreateReviewRequest{BookingID: 10, Rating: 4})
	assert.ErrorIs(t, err, access.ErrRoleRequired)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, bookings, _ := newTestService()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), customerU1, CreateReviewRequest{BookingID: 10, Rating: rating})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "rating %d", rating)
	}
	bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreate_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, reviews, bookings, _ := newTestService()

	bookings.On("GetByID", ctx, int64(10)).Return(completedBooking(), nil)
	reviews.On("ExistsForBooking", ctx, int64(10)).Return(true, nil).Once()

	_, err := svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: 10, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// lost the race: the existence check passed but the insert hit the unique index
	reviews.On("ExistsForBooking", ctx, int64(10)).Return(false, nil).Once()
	reviews.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err = svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: 10, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestRespond_Success(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, services := newTestService()

	reviews.On("GetByID", ctx, int64(1)).Return(&domain.Review{ID: 1, ServiceID: 5, WorkerID: 2}, nil)
	services.On("GetByID", ctx, int64(5)).Return(&domain.WorkerService{ID: 5, WorkerID: 2}, nil)
	reviews.On("SetWorkerResponse", ctx, int64(1), "Thank you!", mock.AnythingOfType("time.Time")).Return(true, nil)

	rv, err := svc.Respond(ctx, workerW1, 1, "  Thank you! ")

	require.NoError(t, err)
	require.NotNil(t, rv.WorkerResponse)
	assert.Equal(t, "Thank you!", *rv.WorkerResponse)
	assert.NotNil(t, rv.WorkerResponseAt)
}

func TestRespond_SetOnce(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, services := newTestService()

	existing := "Thanks"
	reviews.On("GetByID", ctx, int64(1)).Return(&domain.Review{ID: 1, ServiceID: 5, WorkerResponse: &existing}, nil)
	reviews.On("GetByID", ctx, int64(2)).Return(&domain.Review{ID: 2, ServiceID: 5}, nil)
	services.On("GetByID", ctx, int64(5)).Return(&domain.WorkerService{ID: 5, WorkerID: 2}, nil)
	reviews.On("SetWorkerResponse", ctx, int64(2), "Again", mock.Anything).Return(false, nil)

	_, err := svc.Respond(ctx, workerW1, 1, "Again")
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	_, err = svc.Respond(ctx, workerW1, 2, "Again")
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestRespond_OnlyServiceOwner(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, services := newTestService()

	reviews.On("GetByID", ctx, int64(1)).Return(&domain.Review{ID: 1, ServiceID: 5}, nil)
	services.On("GetByID", ctx, int64(5)).Return(&domain.WorkerService{ID: 5, WorkerID: 2}, nil)

	otherWorker := access.ActorContext{ID: 3, Role: domain.RoleWorker}
	_, err := svc.Respond(ctx, otherWorker, 1, "Hi")
	assert.ErrorIs(t, err, access.ErrNotOwner)

	_, err = svc.Respond(ctx, customerU1, 1, "Hi")
	assert.ErrorIs(t, err, access.ErrRoleRequired)

	_, err = svc.Respond(ctx, workerW1, 1, "   ")
	assert.ErrorIs(t, err, ErrResponseRequired)
}

func TestRespond_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, _ := newTestService()

	reviews.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

	_, err := svc.Respond(ctx, workerW1, 9, "Hi")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestSummary_RoundsAverage(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, _ := newTestService()

	reviews.On("Summary", ctx, int64(5)).Return(domain.RatingSummary{ServiceID: 5, Count: 3, Average: 4.666666}, nil)

	sum, err := svc.Summary(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.Count)
	assert.Equal(t, 4.67, sum.Average)
}

func TestGetForBooking(t *testing.T) {
	ctx := context.Background()
	svc, reviews, bookings, _ := newTestService()

	bookings.On("GetByID", ctx, int64(10)).Return(completedBooking(), nil)
	reviews.On("GetByBookingID", ctx, int64(10)).Return(&domain.Review{ID: 1, BookingID: 10}, nil)

	_, err := svc.GetForBooking(ctx, customerU1, 10)
	assert.NoError(t, err)
	_, err = svc.GetForBooking(ctx, workerW1, 10)
	assert.NoError(t, err)
	_, err = svc.GetForBooking(ctx, access.ActorContext{ID: 42, Role: domain.RoleCustomer}, 10)
	assert.ErrorIs(t, err, access.ErrNotOwner)
}

func TestList_StoreErrorIsGeneric(t *testing.T) {
	ctx := context.Background()
	svc, reviews, _, _ := newTestService()

	reviews.On("ListByService", ctx, int64(5), 0, 0).Return([]domain.Review(nil), int64(0), errors.New("timeout"))

	_, err := svc.ListForService(ctx, 5, 0, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindStore))
}

// The unique index on booking_id rejects a second review even when both
// submissions pass the existence check.
func TestCreate_UniqueIndexClosesRace(t *testing.T) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: "file:review_race?mode=memory&cache=shared"}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	services := repository.NewWorkerServiceRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	ws := &domain.WorkerService{WorkerID: 2, Title: "Cleaning", Price: 10, IsActive: true}
	require.NoError(t, services.Create(ctx, ws))
	b := &domain.Booking{ServiceID: ws.ID, CustomerID: 1, BookingDate: "2026-01-01", StartTime: "10:00",
		Status: domain.BookingCompleted, PaymentStatus: domain.PaymentUnpaid}
	require.NoError(t, bookings.Create(ctx, b))

	svc := NewService(reviews, bookings, services)
	_, err = svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: b.ID, Rating: 5})
	require.NoError(t, err)

	// simulate the second submission that already passed its existence check
	err = reviews.Create(ctx, &domain.Review{BookingID: b.ID, ServiceID: ws.ID, CustomerID: 1, WorkerID: 2, Rating: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = svc.Create(ctx, customerU1, CreateReviewRequest{BookingID: b.ID, Rating: 3})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
