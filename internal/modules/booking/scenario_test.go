package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/repository"
)

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) Notify(_ context.Context, event string, _ *domain.Booking, _ int64) error {
	r.events = append(r.events, event)
	return nil
}

func setupScenario(t *testing.T) (*Service, *recordingNotifier, *domain.WorkerService) {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: "file:booking_" + t.Name() + "?mode=memory&cache=shared"}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	services := repository.NewWorkerServiceRepository(db)
	svc := &domain.WorkerService{WorkerID: 20, Title: "Tiling", Price: 120, IsActive: true}
	require.NoError(t, services.Create(context.Background(), svc))

	rec := &recordingNotifier{}
	s := NewService(repository.NewBookingRepository(db), services, rec)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }
	return s, rec, svc
}

func TestScenario_CustomerAndWorkerLifecycle(t *testing.T) {
	ctx := context.Background()
	s, rec, svc := setupScenario(t)

	u1 := access.ActorContext{ID: 10, Role: domain.RoleCustomer}
	w1 := access.ActorContext{ID: 20, Role: domain.RoleWorker}

	b, err := s.Create(ctx, u1, CreateBookingRequest{ServiceID: svc.ID, BookingDate: "2026-05-02", StartTime: "09:00"})
	require.NoError(t, err)

	notes := "second floor"
	_, err = s.Update(ctx, u1, b.ID, UpdateBookingRequest{Notes: &notes})
	require.NoError(t, err)

	b, err = s.Confirm(ctx, w1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	_, err = s.Update(ctx, u1, b.ID, UpdateBookingRequest{Notes: &notes})
	assert.ErrorIs(t, err, ErrNotEditable)

	b, err = s.Complete(ctx, w1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	_, err = s.Cancel(ctx, u1, b.ID, "too late")
	assert.ErrorIs(t, err, ErrNotCancellable)

	stored, err := s.Get(ctx, u1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, stored.Status)
	assert.Equal(t, "second floor", stored.Notes)

	assert.Equal(t, []string{EventCreated, EventUpdated, EventConfirmed, EventCompleted}, rec.events)
}

func TestScenario_CrossWorkerConfirmDenied(t *testing.T) {
	ctx := context.Background()
	s, _, svc := setupScenario(t)

	u1 := access.ActorContext{ID: 10, Role: domain.RoleCustomer}
	workerB := access.ActorContext{ID: 30, Role: domain.RoleWorker}

	b, err := s.Create(ctx, u1, CreateBookingRequest{ServiceID: svc.ID, BookingDate: "2026-05-02", StartTime: "09:00"})
	require.NoError(t, err)

	_, err = s.Confirm(ctx, workerB, b.ID)
	assert.ErrorIs(t, err, access.ErrNotOwner)

	stored, err := s.Get(ctx, u1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, stored.Status)
}

func TestScenario_WorkerCancelRecordsRole(t *testing.T) {
	ctx := context.Background()
	s, _, svc := setupScenario(t)

	u1 := access.ActorContext{ID: 10, Role: domain.RoleCustomer}
	w1 := access.ActorContext{ID: 20, Role: domain.RoleWorker}

	b, err := s.Create(ctx, u1, CreateBookingRequest{ServiceID: svc.ID, BookingDate: "2026-05-03", StartTime: "13:00"})
	require.NoError(t, err)

	_, err = s.Cancel(ctx, w1, b.ID, "sick")
	require.NoError(t, err)

	stored, err := s.Get(ctx, w1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
	require.NotNil(t, stored.CancelledBy)
	assert.Equal(t, domain.RoleWorker, *stored.CancelledBy)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "sick", *stored.CancellationReason)
}
