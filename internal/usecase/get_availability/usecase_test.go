package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
	err     error
}

func (f *fakeBlockedSlotRepo) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, f.err
}

type fakeCourtRepo struct {
	court *domain.Court
	err   error
}

func (f *fakeCourtRepo) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	return f.court, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testCourt() *domain.Court {
	return &domain.Court{ID: 1, FacilityID: 10, OpenHour: 6, CloseHour: 22, IsActive: true}
}

func testRequest() *Request {
	return &Request{CourtID: 1, Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)}
}

func newTestUseCase(br BookingRepository, bsr BlockedSlotRepository, cr CourtRepository) *UseCase {
	return NewUseCase(br, bsr, cr, nopLogger{})
}

func TestUseCase_Execute_FullGridWhenEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedSlotRepo{}, &fakeCourtRepo{court: testCourt()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Каталог всегда возвращается целиком, каждый слот ровно один раз,
	// по возрастанию времени начала
	require.Len(t, resp.Slots, 16)
	for i, sa := range resp.Slots {
		assert.True(t, sa.IsAvailable)
		assert.Empty(t, sa.Reason)
		if i > 0 {
			assert.True(t, resp.Slots[i-1].Slot.StartTime.IsBefore(sa.Slot.StartTime))
		}
	}
	assert.Equal(t, types.TimeString("06:00"), resp.Slots[0].Slot.StartTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[15].Slot.StartTime)
}

func TestUseCase_Execute_OverlaysBookingsAndBlocks(t *testing.T) {
	br := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: types.TimeString("09:00"), Status: domain.StatusConfirmed},
		{StartTime: types.TimeString("12:00"), Status: domain.StatusPending},
	}}
	bsr := &fakeBlockedSlotRepo{blocked: []*domain.BlockedSlot{
		{StartTime: types.TimeString("15:00")},
	}}
	uc := newTestUseCase(br, bsr, &fakeCourtRepo{court: testCourt()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 16)

	byStart := make(map[types.TimeString]domain.SlotAvailability)
	for _, sa := range resp.Slots {
		byStart[sa.Slot.StartTime] = sa
	}

	assert.False(t, byStart["09:00"].IsAvailable)
	assert.Equal(t, domain.ReasonBooked, byStart["09:00"].Reason)

	// pending удерживает слот так же, как confirmed
	assert.False(t, byStart["12:00"].IsAvailable)
	assert.Equal(t, domain.ReasonBooked, byStart["12:00"].Reason)

	assert.False(t, byStart["15:00"].IsAvailable)
	assert.Equal(t, domain.ReasonMaintenance, byStart["15:00"].Reason)

	assert.True(t, byStart["10:00"].IsAvailable)
}

func TestUseCase_Execute_BookedWinsOverMaintenance(t *testing.T) {
	br := &fakeBookingRepo{bookings: []*domain.Booking{
		{StartTime: types.TimeString("09:00"), Status: domain.StatusConfirmed},
	}}
	bsr := &fakeBlockedSlotRepo{blocked: []*domain.BlockedSlot{
		{StartTime: types.TimeString("09:00")},
	}}
	uc := newTestUseCase(br, bsr, &fakeCourtRepo{court: testCourt()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	for _, sa := range resp.Slots {
		if sa.Slot.StartTime == "09:00" {
			assert.False(t, sa.IsAvailable)
			assert.Equal(t, domain.ReasonBooked, sa.Reason)
		}
	}
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	booking := &domain.Booking{StartTime: types.TimeString("09:00"), Status: domain.StatusConfirmed}
	br := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	uc := newTestUseCase(br, &fakeBlockedSlotRepo{}, &fakeCourtRepo{court: testCourt()})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	for _, sa := range resp.Slots {
		if sa.Slot.StartTime == "09:00" {
			assert.False(t, sa.IsAvailable)
		}
	}

	// Отмененное бронирование больше не приходит из репозитория активных,
	// слот снова доступен
	br.bookings = nil
	resp, err = uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	for _, sa := range resp.Slots {
		if sa.Slot.StartTime == "09:00" {
			assert.True(t, sa.IsAvailable)
			assert.Empty(t, sa.Reason)
		}
	}
}

func TestUseCase_Execute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedSlotRepo{}, &fakeCourtRepo{err: courtRepo.ErrCourtNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrCourtNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeBlockedSlotRepo{}, &fakeCourtRepo{court: testCourt()})

	_, err := uc.Execute(context.Background(), &Request{CourtID: 0, Date: time.Now()})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CourtID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
