package timeslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	blockedSlotRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/blockedslot"
	courtRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/court"
	facilityClient "github.com/m04kA/SCB-BookingService/internal/integrations/facilityservice"
	"github.com/m04kA/SCB-BookingService/internal/service/timeslots/models"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// Service сервис управления блокировками слотов владельцем площадки
// (техобслуживание корта и прочие причины недоступности вне бронирований)
type Service struct {
	blockedSlotRepo BlockedSlotRepository
	courtRepo       CourtRepository
	facilityClient  FacilityServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockedSlotRepo BlockedSlotRepository,
	courtRepo CourtRepository,
	facilityClient FacilityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		blockedSlotRepo: blockedSlotRepo,
		courtRepo:       courtRepo,
		facilityClient:  facilityClient,
		logger:          logger,
	}
}

// Block создает блокировку слота
// Доступно только владельцу площадки, которой принадлежит корт
func (s *Service) Block(ctx context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("Block: user=%d blocking court=%d date=%s slot=%s-%s",
		req.UserID, req.CourtID, req.BlockDate.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateBlockRequest(req); err != nil {
		s.logger.Warn("Block: validation failed: %v", err)
		return nil, err
	}

	court, err := s.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Block: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("Block: repository error for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(ctx, court.FacilityID, req.UserID); err != nil {
		s.logger.Warn("Block: access denied for user=%d to court=%d", req.UserID, req.CourtID)
		return nil, err
	}

	if err := validateSlotInWindow(court, req.StartTime); err != nil {
		s.logger.Warn("Block: slot %s outside window %02d:00-%02d:00 of court=%d",
			req.StartTime, court.OpenHour, court.CloseHour, req.CourtID)
		return nil, err
	}

	blocked := &domain.BlockedSlot{
		CourtID:    req.CourtID,
		FacilityID: court.FacilityID,
		BlockDate:  req.BlockDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	}

	created, err := s.blockedSlotRepo.Create(ctx, blocked)
	if err != nil {
		s.logger.Error("Block: failed to create blocked slot: %v", err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Block: successfully blocked slot id=%d court=%d", created.ID, created.CourtID)
	return models.FromDomainBlockedSlot(created), nil
}

// Unblock снимает блокировку слота
// Доступно только владельцу площадки
func (s *Service) Unblock(ctx context.Context, req *models.UnblockSlotRequest) error {
	s.logger.Info("Unblock: user=%d unblocking slot id=%d", req.UserID, req.BlockedSlotID)

	blocked, err := s.blockedSlotRepo.GetByID(ctx, req.BlockedSlotID)
	if err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("Unblock: blocked slot id=%d not found", req.BlockedSlotID)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("Unblock: repository error for slot id=%d: %v", req.BlockedSlotID, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerAccess(ctx, blocked.FacilityID, req.UserID); err != nil {
		s.logger.Warn("Unblock: access denied for user=%d to slot id=%d", req.UserID, req.BlockedSlotID)
		return err
	}

	if err := s.blockedSlotRepo.Delete(ctx, req.BlockedSlotID); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("Unblock: failed to delete slot id=%d: %v", req.BlockedSlotID, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: successfully unblocked slot id=%d", req.BlockedSlotID)
	return nil
}

// checkOwnerAccess проверяет, что пользователь - владелец площадки
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID, userID int64) error {
	facility, err := s.facilityClient.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityClient.ErrFacilityNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkOwnerAccess - failed to get facility: %v", ErrInternal, err)
	}

	if facility.OwnerID != userID {
		return ErrAccessDenied
	}

	return nil
}

// validateBlockRequest валидирует запрос на блокировку
func validateBlockRequest(req *models.BlockSlotRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.BlockDate.IsZero() {
		return fmt.Errorf("%w: blockDate is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}

// validateSlotInWindow проверяет, что слот попадает в операционное окно корта
func validateSlotInWindow(court *domain.Court, startTime types.TimeString) error {
	hour, err := startTime.Hour()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if hour < court.OpenHour || hour >= court.CloseHour {
		return ErrSlotOutsideWindow
	}

	return nil
}
