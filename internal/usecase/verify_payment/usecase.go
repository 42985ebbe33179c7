package verify_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	paymentOrderRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/paymentorder"
	bookingsService "github.com/m04kA/SCB-BookingService/internal/service/bookings"
)

// UseCase верификация оплаты по callback'у провайдера
// Подпись проверяется до любых изменений. Валидная подпись переводит весь
// набор бронирований в confirmed, невалидная откатывает набор и помечает
// заказ failed
type UseCase struct {
	paymentOrderRepo PaymentOrderRepository
	bookingService   BookingService
	verifier         SignatureVerifier
	logger           Logger
}

// NewUseCase создает новый экземпляр usecase верификации оплаты
func NewUseCase(
	paymentOrderRepo PaymentOrderRepository,
	bookingService BookingService,
	verifier SignatureVerifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentOrderRepo: paymentOrderRepo,
		bookingService:   bookingService,
		verifier:         verifier,
		logger:           logger,
	}
}

// Execute верифицирует оплату и подтверждает бронирования заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VerifyPayment: user=%d order=%s payment=%s", req.UserID, req.ProviderOrderID, req.PaymentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("VerifyPayment: validation failed: %v", err)
		return nil, err
	}

	order, err := uc.paymentOrderRepo.GetByProviderOrderID(ctx, req.ProviderOrderID)
	if err != nil {
		if errors.Is(err, paymentOrderRepo.ErrOrderNotFound) {
			uc.logger.Warn("VerifyPayment: order %s not found", req.ProviderOrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("VerifyPayment: failed to get order %s: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get order: %v", ErrInternal, err)
	}

	// Повторный callback по уже оплаченному заказу отрабатывает идемпотентно
	if order.Status == domain.OrderPaid {
		uc.logger.Info("VerifyPayment: order %s is already paid", req.ProviderOrderID)
		return responseFor(order, req.PaymentID), nil
	}
	if order.Status != domain.OrderCreated {
		uc.logger.Warn("VerifyPayment: order %s has terminal status=%s", req.ProviderOrderID, order.Status)
		return nil, fmt.Errorf("%w: status %s", ErrOrderConflict, order.Status)
	}

	if !uc.verifier.VerifySignature(req.ProviderOrderID, req.PaymentID, req.Signature) {
		uc.logger.Warn("VerifyPayment: invalid signature for order %s, rolling back bookings", req.ProviderOrderID)

		if err := uc.bookingService.RollbackBookings(ctx, order.BookingIDs); err != nil {
			uc.logger.Error("VerifyPayment: rollback failed for order %s: %v", req.ProviderOrderID, err)
			return nil, fmt.Errorf("%w: Execute - rollback failed: %v", ErrInternal, err)
		}
		if err := uc.paymentOrderRepo.UpdateStatus(ctx, req.ProviderOrderID, domain.OrderFailed); err != nil {
			uc.logger.Error("VerifyPayment: failed to mark order %s failed: %v", req.ProviderOrderID, err)
			return nil, fmt.Errorf("%w: Execute - failed to update order status: %v", ErrInternal, err)
		}

		return nil, ErrInvalidSignature
	}

	if err := uc.bookingService.ConfirmBookings(ctx, order.BookingIDs, req.UserID, req.PaymentID); err != nil {
		if errors.Is(err, bookingsService.ErrConfirmConflict) {
			// Часть набора уже не pending (например, истек TTL). Откатываем
			// остаток и помечаем заказ failed, деньги разруливает поддержка
			uc.logger.Warn("VerifyPayment: confirm conflict for order %s, rolling back", req.ProviderOrderID)

			if rbErr := uc.bookingService.RollbackBookings(ctx, order.BookingIDs); rbErr != nil {
				uc.logger.Error("VerifyPayment: rollback failed for order %s: %v", req.ProviderOrderID, rbErr)
			}
			if stErr := uc.paymentOrderRepo.UpdateStatus(ctx, req.ProviderOrderID, domain.OrderFailed); stErr != nil {
				uc.logger.Error("VerifyPayment: failed to mark order %s failed: %v", req.ProviderOrderID, stErr)
			}

			return nil, ErrConfirmConflict
		}
		uc.logger.Error("VerifyPayment: confirm failed for order %s: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - confirm failed: %v", ErrInternal, err)
	}

	if err := uc.paymentOrderRepo.UpdateStatus(ctx, req.ProviderOrderID, domain.OrderPaid); err != nil {
		uc.logger.Error("VerifyPayment: failed to mark order %s paid: %v", req.ProviderOrderID, err)
		return nil, fmt.Errorf("%w: Execute - failed to update order status: %v", ErrInternal, err)
	}

	uc.logger.Info("VerifyPayment: order %s verified, %d bookings confirmed", req.ProviderOrderID, len(order.BookingIDs))

	order.Status = domain.OrderPaid
	return responseFor(order, req.PaymentID), nil
}

// validateRequest валидирует callback верификации оплаты
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ProviderOrderID == "" {
		return fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}
	if req.PaymentID == "" {
		return fmt.Errorf("%w: paymentID is required", ErrInvalidInput)
	}
	if req.Signature == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}
	return nil
}

func responseFor(order *domain.PaymentOrder, paymentID string) *Response {
	return &Response{
		ProviderOrderID: order.ProviderOrderID,
		PaymentID:       paymentID,
		Status:          string(order.Status),
		BookingIDs:      order.BookingIDs,
	}
}
