package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SCB-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SCB-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// Фейки контрактов

type fakeBookingRepo struct {
	getByIDFn            func(ctx context.Context, id int64) (*domain.Booking, error)
	getByIDsFn           func(ctx context.Context, ids []int64) ([]*domain.Booking, error)
	getByUserIDFn        func(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	confirmByIDsFn       func(ctx context.Context, ids []int64, userID int64, paymentID string) (int64, error)
	cancelPendingByIDsFn func(ctx context.Context, ids []int64, reason string) (int64, error)
	cancelIfStatusFn     func(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error
	expireStalePendingFn func(ctx context.Context, cutoff time.Time, reason string) (int64, error)
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBookingRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	return f.getByIDsFn(ctx, ids)
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.getByUserIDFn(ctx, userID, status)
}

func (f *fakeBookingRepo) ConfirmByIDs(ctx context.Context, ids []int64, userID int64, paymentID string) (int64, error) {
	return f.confirmByIDsFn(ctx, ids, userID, paymentID)
}

func (f *fakeBookingRepo) CancelPendingByIDs(ctx context.Context, ids []int64, reason string) (int64, error) {
	return f.cancelPendingByIDsFn(ctx, ids, reason)
}

func (f *fakeBookingRepo) CancelIfStatus(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
	return f.cancelIfStatusFn(ctx, id, expected, reason)
}

func (f *fakeBookingRepo) ExpireStalePending(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	return f.expireStalePendingFn(ctx, cutoff, reason)
}

type fakeFacilityClient struct {
	facility *facilityservice.Facility
	err      error
}

func (f *fakeFacilityClient) GetFacility(ctx context.Context, facilityID int64) (*facilityservice.Facility, error) {
	return f.facility, f.err
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func newTestService(repo *fakeBookingRepo, client *fakeFacilityClient, now time.Time) *Service {
	svc := NewService(repo, client, &fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func confirmedBooking(id, userID int64, date time.Time, start types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		FacilityID:  10,
		CourtID:     1,
		BookingDate: date,
		StartTime:   start,
		EndTime:     types.TimeString("10:00"),
		Amount:      500,
		Status:      domain.StatusConfirmed,
	}
}

func TestService_ConfirmBookings(t *testing.T) {
	t.Run("confirms full set", func(t *testing.T) {
		repo := &fakeBookingRepo{
			confirmByIDsFn: func(ctx context.Context, ids []int64, userID int64, paymentID string) (int64, error) {
				assert.Equal(t, []int64{1, 2}, ids)
				assert.Equal(t, int64(7), userID)
				assert.Equal(t, "pay_1", paymentID)
				return 2, nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, time.Now())

		err := svc.ConfirmBookings(context.Background(), []int64{1, 2}, 7, "pay_1")
		require.NoError(t, err)
	})

	t.Run("partial match fails the whole set", func(t *testing.T) {
		repo := &fakeBookingRepo{
			confirmByIDsFn: func(ctx context.Context, ids []int64, userID int64, paymentID string) (int64, error) {
				return 1, nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, time.Now())

		err := svc.ConfirmBookings(context.Background(), []int64{1, 2}, 7, "pay_1")
		require.ErrorIs(t, err, ErrConfirmConflict)
	})

	t.Run("empty ids rejected", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeFacilityClient{}, time.Now())

		err := svc.ConfirmBookings(context.Background(), nil, 7, "pay_1")
		require.ErrorIs(t, err, ErrInvalidInput)

		err = svc.ConfirmBookings(context.Background(), []int64{1}, 7, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_RollbackBookings_Idempotent(t *testing.T) {
	// Повторный откат того же набора не ошибка: уже отмененные строки
	// просто не затрагиваются
	cancelled := make(map[int64]bool)
	repo := &fakeBookingRepo{
		cancelPendingByIDsFn: func(ctx context.Context, ids []int64, reason string) (int64, error) {
			var n int64
			for _, id := range ids {
				if !cancelled[id] {
					cancelled[id] = true
					n++
				}
			}
			return n, nil
		},
	}
	svc := newTestService(repo, &fakeFacilityClient{}, time.Now())

	require.NoError(t, svc.RollbackBookings(context.Background(), []int64{1, 2}))
	require.NoError(t, svc.RollbackBookings(context.Background(), []int64{1, 2}))
	assert.Len(t, cancelled, 2)
}

func TestService_Cancel(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	slotStart := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	t.Run("cancels inside the window", func(t *testing.T) {
		booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
		casCalled := false
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				if casCalled {
					b := *booking
					b.Status = domain.StatusCancelled
					return &b, nil
				}
				return booking, nil
			},
			cancelIfStatusFn: func(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
				casCalled = true
				assert.Equal(t, domain.StatusConfirmed, expected)
				return nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, slotStart.Add(-3*time.Hour))

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("refuses exactly at the two hour boundary", func(t *testing.T) {
		booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return booking, nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, slotStart.Add(-2*time.Hour))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
		require.ErrorIs(t, err, ErrCancellationWindowExpired)
	})

	t.Run("refuses for foreign booking", func(t *testing.T) {
		booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return booking, nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, slotStart.Add(-3*time.Hour))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("refuses pending booking", func(t *testing.T) {
		booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
		booking.Status = domain.StatusPending
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return booking, nil
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, slotStart.Add(-3*time.Hour))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
		require.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("status conflict on concurrent update", func(t *testing.T) {
		booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return booking, nil
			},
			cancelIfStatusFn: func(ctx context.Context, id int64, expected domain.BookingStatus, reason string) error {
				return bookingRepo.ErrStatusConflict
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, slotStart.Add(-3*time.Hour))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
		require.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeBookingRepo{
			getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
				return nil, bookingRepo.ErrBookingNotFound
			},
		}
		svc := newTestService(repo, &fakeFacilityClient{}, time.Now())

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 7})
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetByID_Access(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	booking := confirmedBooking(1, 7, date, types.TimeString("09:00"))
	repo := &fakeBookingRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return booking, nil
		},
	}

	t.Run("owner sees own booking", func(t *testing.T) {
		svc := newTestService(repo, &fakeFacilityClient{}, time.Now())
		resp, err := svc.GetByID(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("facility owner sees facility bookings", func(t *testing.T) {
		client := &fakeFacilityClient{facility: &facilityservice.Facility{ID: 10, OwnerID: 42}}
		svc := newTestService(repo, client, time.Now())

		resp, err := svc.GetByID(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		client := &fakeFacilityClient{facility: &facilityservice.Facility{ID: 10, OwnerID: 42}}
		svc := newTestService(repo, client, time.Now())

		_, err := svc.GetByID(context.Background(), 1, 99)
		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_ExpireStalePending(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		expireStalePendingFn: func(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
			assert.Equal(t, now.Add(-15*time.Minute), cutoff)
			return 3, nil
		},
	}
	svc := newTestService(repo, &fakeFacilityClient{}, now)

	expired, err := svc.ExpireStalePending(context.Background(), 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
