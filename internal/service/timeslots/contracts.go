package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/integrations/facilityservice"
)

// BlockedSlotRepository интерфейс репозитория блокировок слотов
type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedSlot, error)
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// FacilityServiceClient интерфейс клиента для FacilityService
type FacilityServiceClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*facilityservice.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
