package verify_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	paymentOrderRepo "github.com/m04kA/SCB-BookingService/internal/infra/storage/paymentorder"
	bookingsService "github.com/m04kA/SCB-BookingService/internal/service/bookings"
)

type fakePaymentOrderRepo struct {
	order          *domain.PaymentOrder
	getErr         error
	updatedStatus  *domain.PaymentOrderStatus
	updateStatusFn func(ctx context.Context, providerOrderID string, status domain.PaymentOrderStatus) error
}

func (f *fakePaymentOrderRepo) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.PaymentOrder, error) {
	return f.order, f.getErr
}

func (f *fakePaymentOrderRepo) UpdateStatus(ctx context.Context, providerOrderID string, status domain.PaymentOrderStatus) error {
	f.updatedStatus = &status
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, providerOrderID, status)
	}
	return nil
}

type fakeBookingService struct {
	confirmErr     error
	confirmCalled  bool
	rollbackCalled bool
}

func (f *fakeBookingService) ConfirmBookings(ctx context.Context, bookingIDs []int64, userID int64, paymentID string) error {
	f.confirmCalled = true
	return f.confirmErr
}

func (f *fakeBookingService) RollbackBookings(ctx context.Context, bookingIDs []int64) error {
	f.rollbackCalled = true
	return nil
}

type fakeVerifier struct {
	valid bool
}

func (f *fakeVerifier) VerifySignature(orderID, paymentID, signature string) bool {
	return f.valid
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func createdOrder() *domain.PaymentOrder {
	return &domain.PaymentOrder{
		ProviderOrderID: "order_abc",
		Receipt:         "receipt_1",
		Amount:          1000,
		Currency:        "RUB",
		Status:          domain.OrderCreated,
		BookingIDs:      []int64{1, 2},
	}
}

func validRequest() *Request {
	return &Request{UserID: 7, ProviderOrderID: "order_abc", PaymentID: "pay_1", Signature: "sig"}
}

func TestUseCase_Execute_ValidSignatureConfirms(t *testing.T) {
	repo := &fakePaymentOrderRepo{order: createdOrder()}
	svc := &fakeBookingService{}
	uc := NewUseCase(repo, svc, &fakeVerifier{valid: true}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, svc.confirmCalled)
	assert.False(t, svc.rollbackCalled)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.OrderPaid, *repo.updatedStatus)
	assert.Equal(t, string(domain.OrderPaid), resp.Status)
	assert.Equal(t, []int64{1, 2}, resp.BookingIDs)
}

func TestUseCase_Execute_InvalidSignatureRollsBack(t *testing.T) {
	repo := &fakePaymentOrderRepo{order: createdOrder()}
	svc := &fakeBookingService{}
	uc := NewUseCase(repo, svc, &fakeVerifier{valid: false}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidSignature)

	assert.False(t, svc.confirmCalled)
	assert.True(t, svc.rollbackCalled)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.OrderFailed, *repo.updatedStatus)
}

func TestUseCase_Execute_AlreadyPaidIsIdempotent(t *testing.T) {
	order := createdOrder()
	order.Status = domain.OrderPaid
	repo := &fakePaymentOrderRepo{order: order}
	svc := &fakeBookingService{}
	uc := NewUseCase(repo, svc, &fakeVerifier{valid: true}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторный callback ничего не меняет
	assert.False(t, svc.confirmCalled)
	assert.Nil(t, repo.updatedStatus)
	assert.Equal(t, string(domain.OrderPaid), resp.Status)
}

func TestUseCase_Execute_TerminalStatusConflicts(t *testing.T) {
	for _, status := range []domain.PaymentOrderStatus{domain.OrderCancelled, domain.OrderFailed} {
		order := createdOrder()
		order.Status = status
		uc := NewUseCase(&fakePaymentOrderRepo{order: order}, &fakeBookingService{}, &fakeVerifier{valid: true}, nopLogger{})

		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrOrderConflict)
	}
}

func TestUseCase_Execute_ConfirmConflictRollsBack(t *testing.T) {
	// Часть набора уже не pending: заказ помечается failed, набор откатывается
	repo := &fakePaymentOrderRepo{order: createdOrder()}
	svc := &fakeBookingService{confirmErr: bookingsService.ErrConfirmConflict}
	uc := NewUseCase(repo, svc, &fakeVerifier{valid: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrConfirmConflict)

	assert.True(t, svc.rollbackCalled)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.OrderFailed, *repo.updatedStatus)
}

func TestUseCase_Execute_OrderNotFound(t *testing.T) {
	repo := &fakePaymentOrderRepo{getErr: paymentOrderRepo.ErrOrderNotFound}
	uc := NewUseCase(repo, &fakeBookingService{}, &fakeVerifier{valid: true}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil request", req: nil},
		{name: "zero user", req: &Request{ProviderOrderID: "o", PaymentID: "p", Signature: "s"}},
		{name: "empty order id", req: &Request{UserID: 7, PaymentID: "p", Signature: "s"}},
		{name: "empty payment id", req: &Request{UserID: 7, ProviderOrderID: "o", Signature: "s"}},
		{name: "empty signature", req: &Request{UserID: 7, ProviderOrderID: "o", PaymentID: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, validateRequest(tt.req), ErrInvalidInput)
		})
	}
}
