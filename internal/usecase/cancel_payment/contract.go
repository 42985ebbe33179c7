package cancel_payment

import (
	"context"

	"github.com/m04kA/SCB-BookingService/internal/domain"
)

// PaymentOrderRepository интерфейс репозитория платежных заказов
type PaymentOrderRepository interface {
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.PaymentOrder, error)
	UpdateStatus(ctx context.Context, providerOrderID string, status domain.PaymentOrderStatus) error
}

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	RollbackBookings(ctx context.Context, bookingIDs []int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
