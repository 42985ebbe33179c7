package create_payment_order

import (
	"context"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/integrations/payprovider"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error)
}

// PaymentOrderRepository интерфейс репозитория платежных заказов
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error)
}

// PayProviderClient интерфейс клиента платежного провайдера
type PayProviderClient interface {
	CreateOrder(ctx context.Context, req *payprovider.CreateOrderRequest) (*payprovider.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
