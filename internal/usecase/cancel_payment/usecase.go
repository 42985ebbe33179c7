package cancel_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	paymentOrderRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/paymentorder"
)

// UseCase отказ пользователя от оплаты
// Откатывает pending-бронирования заказа и помечает заказ cancelled.
// К провайдеру не обращается: неоплаченный заказ истекает на его стороне сам
type UseCase struct {
	paymentOrderRepo PaymentOrderRepository
	bookingService   BookingService
	logger           Logger
}

// NewUseCase создает новый экземпляр usecase отказа от оплаты
func NewUseCase(
	paymentOrderRepo PaymentOrderRepository,
	bookingService BookingService,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentOrderRepo: paymentOrderRepo,
		bookingService:   bookingService,
		logger:           logger,
	}
}

// Execute откатывает бронирования заказа и помечает заказ отмененным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelPayment: user=%d order=%s", req.UserID, req.ProviderOrderID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ProviderOrderID == "" {
		return nil, fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	order, err := uc.paymentOrderRepo.GetByProviderOrderID(ctx, req.ProviderOrderID)
	if err != nil {
		if errors.Is(err, paymentOrderRepo.ErrOrderNotFound) {
			uc.logger.Warn("CancelPayment: order %s not found", req.ProviderOrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("CancelPayment: failed to get order %s: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get order: %v", ErrInternal, err)
	}

	switch order.Status {
	case domain.OrderPaid:
		uc.logger.Warn("CancelPayment: order %s is already paid", req.ProviderOrderID)
		return nil, ErrOrderAlreadyPaid
	case domain.OrderCancelled, domain.OrderFailed:
		// Повторный отказ отрабатывает идемпотентно
		uc.logger.Info("CancelPayment: order %s is already in status=%s", req.ProviderOrderID, order.Status)
		return responseFor(order), nil
	}

	if err := uc.bookingService.RollbackBookings(ctx, order.BookingIDs); err != nil {
		uc.logger.Error("CancelPayment: rollback failed for order %s: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - rollback failed: %v", ErrInternal, err)
	}

	if err := uc.paymentOrderRepo.UpdateStatus(ctx, req.ProviderOrderID, domain.OrderCancelled); err != nil {
		uc.logger.Error("CancelPayment: failed to mark order %s cancelled: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - failed to update order status: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelPayment: order %s cancelled, %d bookings rolled back",
		req.ProviderOrderID, len(order.BookingIDs))

	order.Status = domain.OrderCancelled
	return responseFor(order), nil
}

func responseFor(order *domain.PaymentOrder) *Response {
	return &Response{
		ProviderOrderID: order.ProviderOrderID,
		Status:          string(order.Status),
		BookingIDs:      order.BookingIDs,
	}
}
