package block_slot

import (
	"context"

	"github.com/m04kA/SCB-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Block(ctx context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
