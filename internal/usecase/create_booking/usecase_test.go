package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// Фейки контрактов

type fakeBookingRepo struct {
	createBatchFn func(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
	getActiveFn   func(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error)
}

func (f *fakeBookingRepo) CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	return f.createBatchFn(ctx, bookings)
}

func (f *fakeBookingRepo) GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	return f.getActiveFn(ctx, courtID, date)
}

type fakeCourtRepo struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.Court, error)
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	return f.getByIDFn(ctx, id)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Вспомогательные конструкторы

func activeCourt() *domain.Court {
	return &domain.Court{
		ID:          1,
		FacilityID:  10,
		Name:        "Court A",
		HourlyPrice: 50000,
		OpenHour:    6,
		CloseHour:   22,
		IsActive:    true,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:      7,
		FacilityID:  10,
		CourtID:     1,
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Slots:       []SlotInput{{StartTime: "09"}, {StartTime: "10"}},
		TotalAmount: 1001,
	}
}

func newTestUseCase(br BookingRepository, cr CourtRepository, now time.Time) *UseCase {
	return NewUseCase(br, cr, &fakeTxManager{}, &fakeTimeProvider{now: now}, nopLogger{})
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestUseCase_Execute_Success(t *testing.T) {
	var created []*domain.Booking

	br := &fakeBookingRepo{
		getActiveFn: func(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createBatchFn: func(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
			for i, b := range bookings {
				b.ID = int64(i + 1)
			}
			created = bookings
			return bookings, nil
		},
	}
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}

	uc := newTestUseCase(br, cr, testNow)
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(1001), resp.TotalAmount)

	// Каждому часу своя pending-запись
	assert.Equal(t, types.TimeString("09:00"), created[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), created[0].EndTime)
	assert.Equal(t, types.TimeString("10:00"), created[1].StartTime)
	assert.Equal(t, domain.StatusPending, created[0].Status)
	assert.Equal(t, domain.StatusPending, created[1].Status)

	// Остаток деления достается первому слоту, сумма сходится точно
	assert.Equal(t, int64(501), created[0].Amount)
	assert.Equal(t, int64(500), created[1].Amount)
}

func TestUseCase_Execute_SlotAlreadyTaken(t *testing.T) {
	br := &fakeBookingRepo{
		getActiveFn: func(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{CourtID: 1, StartTime: types.TimeString("09:00"), Status: domain.StatusConfirmed},
			}, nil
		},
		createBatchFn: func(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
			t.Fatal("CreateBatch must not be called when the conflict is visible on re-check")
			return nil, nil
		},
	}
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}

	uc := newTestUseCase(br, cr, testNow)
	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_UniqueViolationMapsToSlotNotAvailable(t *testing.T) {
	// Гонка, проскочившая мимо re-check, ловится уникальным индексом
	br := &fakeBookingRepo{
		getActiveFn: func(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createBatchFn: func(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		},
	}
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}

	uc := newTestUseCase(br, cr, testNow)
	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_CourtChecks(t *testing.T) {
	t.Run("court not found", func(t *testing.T) {
		cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
			return nil, courtRepo.ErrCourtNotFound
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, cr, testNow)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("court belongs to another facility", func(t *testing.T) {
		cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
			court := activeCourt()
			court.FacilityID = 99
			return court, nil
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, cr, testNow)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("court inactive", func(t *testing.T) {
		cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
			court := activeCourt()
			court.IsActive = false
			return court, nil
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, cr, testNow)

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrCourtInactive)
	})
}

func TestUseCase_Execute_DateValidation(t *testing.T) {
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, cr, testNow)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)

	// Бронь на сегодня допустима
	br := &fakeBookingRepo{
		getActiveFn: func(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createBatchFn: func(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc = newTestUseCase(br, cr, testNow)
	req = validRequest()
	req.Date = time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_SlotOutsideWindow(t *testing.T) {
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, cr, testNow)

	req := validRequest()
	req.Slots = []SlotInput{{StartTime: "23"}}
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotOutsideWindow)
}

// lockingBookingRepo имитирует хранилище с уникальным индексом по активному слоту
type lockingBookingRepo struct {
	mu     sync.Mutex
	nextID int64
	active map[string]struct{}
}

func newLockingBookingRepo() *lockingBookingRepo {
	return &lockingBookingRepo{active: make(map[string]struct{})}
}

func (r *lockingBookingRepo) GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *lockingBookingRepo) CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range bookings {
		key := b.StartTime.String()
		if _, taken := r.active[key]; taken {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	for _, b := range bookings {
		r.nextID++
		b.ID = r.nextID
		r.active[b.StartTime.String()] = struct{}{}
	}
	return bookings, nil
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	repo := newLockingBookingRepo()
	cr := &fakeCourtRepo{getByIDFn: func(ctx context.Context, id int64) (*domain.Court, error) {
		return activeCourt(), nil
	}}
	uc := newTestUseCase(repo, cr, testNow)

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Slots = []SlotInput{{StartTime: "09"}}
			req.TotalAmount = 500
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	// Ровно один победитель, остальные получают конфликт слота
	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrSlotNotAvailable)
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, repo.active, 1)
}
