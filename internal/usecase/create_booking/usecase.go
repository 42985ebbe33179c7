package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
)

// UseCase создание бронирования
// Один запрос может охватывать несколько часовых слотов одного корта на одну
// дату. Все слоты создаются в статусе pending одной сериализуемой транзакцией:
// либо создаются все, либо ни один
type UseCase struct {
	bookingRepo  BookingRepository
	courtRepo    CourtRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase создания бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	courtRepo CourtRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает pending-бронирования для запрошенных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d court=%d date=%s slots=%d amount=%d",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), len(req.Slots), req.TotalAmount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDateNotPast(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	slots, err := normalizeSlots(req.Slots)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot normalization failed: %v", err)
		return nil, err
	}

	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get court: %v", ErrInternal, err)
	}

	if !court.BelongsTo(req.FacilityID) {
		uc.logger.Warn("CreateBooking: court id=%d does not belong to facility id=%d", req.CourtID, req.FacilityID)
		return nil, ErrCourtNotFound
	}

	if !court.IsActive {
		uc.logger.Warn("CreateBooking: court id=%d is not active", req.CourtID)
		return nil, ErrCourtInactive
	}

	if err := validateSlotsInWindow(court, slots); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	amounts := splitAmount(req.TotalAmount, len(slots))

	var created []*domain.Booking

	// Сериализуемая транзакция: повторная проверка занятости под FOR UPDATE
	// плюс частичный уникальный индекс в storage закрывают гонку двух
	// конкурентных запросов на один слот
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetActiveByCourtAndDate(txCtx, req.CourtID, req.Date)
		if err != nil {
			return fmt.Errorf("failed to get active bookings: %w", err)
		}

		taken := make(map[string]struct{}, len(existing))
		for _, b := range existing {
			taken[b.StartTime.String()] = struct{}{}
		}

		for _, slot := range slots {
			if _, ok := taken[slot.StartTime.String()]; ok {
				return fmt.Errorf("%w: slot %s on %s",
					ErrSlotNotAvailable, slot.StartTime, req.Date.Format(domain.DateFormat))
			}
		}

		bookings := make([]*domain.Booking, 0, len(slots))
		for i, slot := range slots {
			bookings = append(bookings, &domain.Booking{
				UserID:      req.UserID,
				FacilityID:  req.FacilityID,
				CourtID:     req.CourtID,
				BookingDate: req.Date,
				StartTime:   slot.StartTime,
				EndTime:     slot.EndTime,
				Amount:      amounts[i],
				Status:      domain.StatusPending,
			})
		}

		created, err = uc.bookingRepo.CreateBatch(txCtx, bookings)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			return fmt.Errorf("failed to create bookings: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created %d pending bookings for user=%d court=%d",
		len(created), req.UserID, req.CourtID)

	return &Response{
		Bookings:    created,
		TotalAmount: req.TotalAmount,
	}, nil
}
