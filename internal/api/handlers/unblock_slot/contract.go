package unblock_slot

import (
	"context"

	"github.com/m04kA/SCB-BookingService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Unblock(ctx context.Context, req *models.UnblockSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
