package create_payment_order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/integrations/payprovider"
)

type fakeBookingRepo struct {
	getByIDsFn func(ctx context.Context, ids []int64) ([]*domain.Booking, error)
}

func (f *fakeBookingRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	return f.getByIDsFn(ctx, ids)
}

type fakePaymentOrderRepo struct {
	createFn func(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error)
}

func (f *fakePaymentOrderRepo) Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	return f.createFn(ctx, order)
}

type fakePayClient struct {
	createOrderFn func(ctx context.Context, req *payprovider.CreateOrderRequest) (*payprovider.Order, error)
}

func (f *fakePayClient) CreateOrder(ctx context.Context, req *payprovider.CreateOrderRequest) (*payprovider.Order, error) {
	return f.createOrderFn(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingBookings(userID int64, amounts ...int64) []*domain.Booking {
	out := make([]*domain.Booking, len(amounts))
	for i, a := range amounts {
		out[i] = &domain.Booking{
			ID:     int64(i + 1),
			UserID: userID,
			Amount: a,
			Status: domain.StatusPending,
		}
	}
	return out
}

func TestUseCase_Execute_Success(t *testing.T) {
	var storedOrder *domain.PaymentOrder

	br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
		return pendingBookings(7, 501, 500), nil
	}}
	por := &fakePaymentOrderRepo{createFn: func(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
		storedOrder = order
		return order, nil
	}}
	pc := &fakePayClient{createOrderFn: func(ctx context.Context, req *payprovider.CreateOrderRequest) (*payprovider.Order, error) {
		assert.Equal(t, int64(1001), req.Amount)
		assert.Equal(t, "RUB", req.Currency)
		assert.NotEmpty(t, req.Receipt)
		assert.Equal(t, "7", req.Notes["user_id"])
		assert.Equal(t, "1,2", req.Notes["booking_ids"])
		return &payprovider.Order{ID: "order_abc", Amount: req.Amount, Currency: req.Currency}, nil
	}}

	uc := NewUseCase(br, por, pc, "RUB", nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1, 2}, Amount: 1001})
	require.NoError(t, err)

	assert.Equal(t, "order_abc", resp.ProviderOrderID)
	assert.Equal(t, int64(1001), resp.Amount)
	assert.Equal(t, string(domain.OrderCreated), resp.Status)

	require.NotNil(t, storedOrder)
	assert.Equal(t, "order_abc", storedOrder.ProviderOrderID)
	assert.Equal(t, domain.OrderCreated, storedOrder.Status)
	assert.Equal(t, []int64{1, 2}, storedOrder.BookingIDs)
}

func TestUseCase_Execute_ProviderFailureLeavesBookingsPending(t *testing.T) {
	// Неудача провайдера не должна трогать ни бронирования, ни заказы
	br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
		return pendingBookings(7, 500), nil
	}}
	por := &fakePaymentOrderRepo{createFn: func(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
		t.Fatal("order must not be stored when the provider rejects it")
		return nil, nil
	}}
	pc := &fakePayClient{createOrderFn: func(ctx context.Context, req *payprovider.CreateOrderRequest) (*payprovider.Order, error) {
		return nil, errors.New("provider unavailable")
	}}

	uc := NewUseCase(br, por, pc, "RUB", nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1}, Amount: 500})
	require.ErrorIs(t, err, ErrPaymentOrder)
}

func TestUseCase_Execute_AmountMismatch(t *testing.T) {
	br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
		return pendingBookings(7, 501, 500), nil
	}}

	uc := NewUseCase(br, &fakePaymentOrderRepo{}, &fakePayClient{}, "RUB", nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1, 2}, Amount: 1000})
	require.ErrorIs(t, err, ErrAmountMismatch)
}

func TestUseCase_Execute_BookingChecks(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
			return pendingBookings(7, 500), nil
		}}
		uc := NewUseCase(br, &fakePaymentOrderRepo{}, &fakePayClient{}, "RUB", nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1, 2}, Amount: 1000})
		require.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("foreign booking", func(t *testing.T) {
		br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
			return pendingBookings(99, 500), nil
		}}
		uc := NewUseCase(br, &fakePaymentOrderRepo{}, &fakePayClient{}, "RUB", nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1}, Amount: 500})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("booking is not pending", func(t *testing.T) {
		bookings := pendingBookings(7, 500)
		bookings[0].Status = domain.StatusConfirmed
		br := &fakeBookingRepo{getByIDsFn: func(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
			return bookings, nil
		}}
		uc := NewUseCase(br, &fakePaymentOrderRepo{}, &fakePayClient{}, "RUB", nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingIDs: []int64{1}, Amount: 500})
		require.ErrorIs(t, err, ErrBookingNotPending)
	})
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil request", req: nil},
		{name: "zero user", req: &Request{BookingIDs: []int64{1}, Amount: 100}},
		{name: "no bookings", req: &Request{UserID: 7, Amount: 100}},
		{name: "zero amount", req: &Request{UserID: 7, BookingIDs: []int64{1}}},
		{name: "negative booking id", req: &Request{UserID: 7, BookingIDs: []int64{-1}, Amount: 100}},
		{name: "duplicate booking ids", req: &Request{UserID: 7, BookingIDs: []int64{1, 1}, Amount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, validateRequest(tt.req), ErrInvalidInput)
		})
	}

	require.NoError(t, validateRequest(&Request{UserID: 7, BookingIDs: []int64{1, 2}, Amount: 100}))
}
