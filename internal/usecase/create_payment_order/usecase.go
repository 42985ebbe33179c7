package create_payment_order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/integrations/payprovider"
)

// UseCase создание платежного заказа у провайдера под набор pending-бронирований
// Заказ создается на общую сумму набора. Бронирования остаются pending до
// верификации оплаты, так что неудача провайдера не требует отката
type UseCase struct {
	bookingRepo      BookingRepository
	paymentOrderRepo PaymentOrderRepository
	payClient        PayProviderClient
	currency         string
	logger           Logger
}

// NewUseCase создает новый экземпляр usecase создания платежного заказа
func NewUseCase(
	bookingRepo BookingRepository,
	paymentOrderRepo PaymentOrderRepository,
	payClient PayProviderClient,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		paymentOrderRepo: paymentOrderRepo,
		payClient:        payClient,
		currency:         currency,
		logger:           logger,
	}
}

// Execute создает платежный заказ у провайдера и сохраняет его локально
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePaymentOrder: user=%d bookings=%v amount=%d", req.UserID, req.BookingIDs, req.Amount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePaymentOrder: validation failed: %v", err)
		return nil, err
	}

	bookings, err := uc.bookingRepo.GetByIDs(ctx, req.BookingIDs)
	if err != nil {
		uc.logger.Error("CreatePaymentOrder: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: Execute - failed to get bookings: %v", ErrInternal, err)
	}

	if len(bookings) != len(req.BookingIDs) {
		uc.logger.Warn("CreatePaymentOrder: found %d of %d bookings", len(bookings), len(req.BookingIDs))
		return nil, ErrBookingNotFound
	}

	var total int64
	for _, b := range bookings {
		if b.UserID != req.UserID {
			uc.logger.Warn("CreatePaymentOrder: booking id=%d belongs to user=%d, not user=%d",
				b.ID, b.UserID, req.UserID)
			return nil, ErrAccessDenied
		}
		if b.Status != domain.StatusPending {
			uc.logger.Warn("CreatePaymentOrder: booking id=%d has status=%s", b.ID, b.Status)
			return nil, fmt.Errorf("%w: booking id=%d has status %s", ErrBookingNotPending, b.ID, b.Status)
		}
		total += b.Amount
	}

	if total != req.Amount {
		uc.logger.Warn("CreatePaymentOrder: declared amount=%d, bookings total=%d", req.Amount, total)
		return nil, fmt.Errorf("%w: declared %d, actual %d", ErrAmountMismatch, req.Amount, total)
	}

	receipt := uuid.NewString()

	order, err := uc.payClient.CreateOrder(ctx, &payprovider.CreateOrderRequest{
		Amount:   total,
		Currency: uc.currency,
		Receipt:  receipt,
		Notes: map[string]string{
			"user_id":     strconv.FormatInt(req.UserID, 10),
			"booking_ids": formatIDs(req.BookingIDs),
		},
	})
	if err != nil {
		uc.logger.Error("CreatePaymentOrder: provider rejected order for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentOrder, err)
	}

	stored := &domain.PaymentOrder{
		ProviderOrderID: order.ID,
		Receipt:         receipt,
		Amount:          total,
		Currency:        uc.currency,
		Status:          domain.OrderCreated,
		BookingIDs:      req.BookingIDs,
	}

	if _, err := uc.paymentOrderRepo.Create(ctx, stored); err != nil {
		uc.logger.Error("CreatePaymentOrder: failed to store order %s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: Execute - failed to store order: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePaymentOrder: created order %s for user=%d, amount=%d %s",
		order.ID, req.UserID, total, uc.currency)

	return &Response{
		ProviderOrderID: order.ID,
		Receipt:         receipt,
		Amount:          total,
		Currency:        uc.currency,
		Status:          string(domain.OrderCreated),
		BookingIDs:      req.BookingIDs,
	}, nil
}

// validateRequest валидирует запрос на создание платежного заказа
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if len(req.BookingIDs) == 0 {
		return fmt.Errorf("%w: booking ids are required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		if id <= 0 {
			return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate booking id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

func formatIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
