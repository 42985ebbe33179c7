package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
)

// UseCase расписание слотов корта на дату
// Резолвер всегда возвращает полный каталог слотов операционного окна корта:
// занятые и заблокированные слоты помечаются недоступными, а не выбрасываются
type UseCase struct {
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	courtRepo       CourtRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр usecase расписания слотов
func NewUseCase(
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	courtRepo CourtRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		courtRepo:       courtRepo,
		logger:          logger,
	}
}

// Execute возвращает расписание корта на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get court: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get bookings: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedSlotRepo.GetByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocked slots for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get blocked slots: %v", ErrInternal, err)
	}

	slots := resolveAvailability(court, bookings, blocked)

	return &Response{
		CourtID: req.CourtID,
		Date:    req.Date,
		Slots:   slots,
	}, nil
}

// resolveAvailability накладывает активные бронирования и блокировки на
// базовую сетку слотов операционного окна корта
// Порядок наложения фиксирован: сначала бронирования, затем блокировки.
// Слот, занятый и бронированием, и блокировкой, получает причину Booked
func resolveAvailability(court *domain.Court, bookings []*domain.Booking, blocked []*domain.BlockedSlot) []domain.SlotAvailability {
	grid := domain.GenerateSlots(court.OpenHour, court.CloseHour)

	bookedAt := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		bookedAt[b.StartTime.String()] = struct{}{}
	}

	blockedAt := make(map[string]struct{}, len(blocked))
	for _, bs := range blocked {
		blockedAt[bs.StartTime.String()] = struct{}{}
	}

	result := make([]domain.SlotAvailability, 0, len(grid))
	for _, slot := range grid {
		sa := domain.SlotAvailability{Slot: slot, IsAvailable: true}

		key := slot.StartTime.String()
		if _, ok := bookedAt[key]; ok {
			sa.IsAvailable = false
			sa.Reason = domain.ReasonBooked
		} else if _, ok := blockedAt[key]; ok {
			sa.IsAvailable = false
			sa.Reason = domain.ReasonMaintenance
		}

		result = append(result, sa)
	}

	return result
}
