package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/booking"
	facilityClient "github.com/m04kA/SCB-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SCB-BookingService/internal/service/bookings/models"
)

// Причины отмены, записываемые сервисом в cancellation_reason
const (
	reasonPaymentFailed  = "payment failed or abandoned"
	reasonUserCancelled  = "cancelled by user"
	reasonPendingExpired = "pending booking expired"
)

// Service сервис жизненного цикла бронирований: чтение, подтверждение
// по результату оплаты, откат и пользовательская отмена
type Service struct {
	bookingRepo    BookingRepository
	facilityClient FacilityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityClient FacilityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		facilityClient: facilityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свое бронирование; владелец площадки - любое
// бронирование своей площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ConfirmBookings переводит набор бронирований pending -> confirmed и
// проставляет payment_id. Атомарно по всему набору: если хотя бы одно
// бронирование не принадлежит пользователю или уже не pending, не
// подтверждается ни одно
func (s *Service) ConfirmBookings(ctx context.Context, bookingIDs []int64, userID int64, paymentID string) error {
	if len(bookingIDs) == 0 {
		return fmt.Errorf("%w: booking ids are required", ErrInvalidInput)
	}
	if paymentID == "" {
		return fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	s.logger.Info("ConfirmBookings: confirming %d bookings for user=%d, payment_id=%s",
		len(bookingIDs), userID, paymentID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rowsAffected, err := s.bookingRepo.ConfirmByIDs(txCtx, bookingIDs, userID, paymentID)
		if err != nil {
			return fmt.Errorf("%w: ConfirmBookings - repository error: %v", ErrInternal, err)
		}

		// Частичное совпадение означает, что часть набора чужая, отменена
		// или уже подтверждена - откатываем весь набор
		if rowsAffected != int64(len(bookingIDs)) {
			s.logger.Warn("ConfirmBookings: confirmed %d of %d bookings, rolling back",
				rowsAffected, len(bookingIDs))
			return ErrConfirmConflict
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("ConfirmBookings: successfully confirmed %d bookings, payment_id=%s",
		len(bookingIDs), paymentID)
	return nil
}

// RollbackBookings отменяет pending-бронирования набора (soft-cancel)
// Идемпотентна: уже отмененные бронирования пропускаются без ошибки.
// Используется при неудачной или брошенной оплате
func (s *Service) RollbackBookings(ctx context.Context, bookingIDs []int64) error {
	if len(bookingIDs) == 0 {
		return fmt.Errorf("%w: booking ids are required", ErrInvalidInput)
	}

	s.logger.Info("RollbackBookings: rolling back %d bookings", len(bookingIDs))

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rowsAffected, err := s.bookingRepo.CancelPendingByIDs(txCtx, bookingIDs, reasonPaymentFailed)
		if err != nil {
			return fmt.Errorf("%w: RollbackBookings - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("RollbackBookings: cancelled %d of %d bookings (rest already inactive)",
			rowsAffected, len(bookingIDs))
		return nil
	})

	return err
}

// Cancel отменяет подтвержденное бронирование по запросу пользователя
// Разрешено только владельцу бронирования и строго раньше, чем за
// MinCancellationNotice до начала слота. Переход confirmed -> cancelled
// выполняется по схеме compare-and-swap, чтобы не потерять одновременное
// обновление статуса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusConfirmed {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	if !booking.CanBeCancelledAt(now) {
		s.logger.Warn("Cancel: cancellation window expired for booking id=%d (start=%s %s)",
			bookingID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime)
		return nil, ErrCancellationWindowExpired
	}

	reason := req.CancellationReason
	if reason == "" {
		reason = reasonUserCancelled
	}

	if err := s.bookingRepo.CancelIfStatus(ctx, bookingID, domain.StatusConfirmed, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Статус изменился между чтением и обновлением
			s.logger.Warn("Cancel: status conflict for booking id=%d", bookingID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to re-read booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// ExpireStalePending отменяет pending-бронирования старше ttl
// Вызывается фоновой зачисткой; возвращает количество отмененных записей
func (s *Service) ExpireStalePending(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-ttl)

	expired, err := s.bookingRepo.ExpireStalePending(ctx, cutoff, reasonPendingExpired)
	if err != nil {
		s.logger.Error("ExpireStalePending: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireStalePending - repository error: %v", ErrInternal, err)
	}

	if expired > 0 {
		s.logger.Info("ExpireStalePending: cancelled %d stale pending bookings (older than %s)", expired, ttl)
	}
	return expired, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит свое бронирование; владелец площадки - бронирования
// своей площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	facility, err := s.facilityClient.GetFacility(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkUserAccess - failed to get facility: %v", ErrInternal, err)
	}

	if facility.OwnerID != userID {
		return ErrAccessDenied
	}

	return nil
}
