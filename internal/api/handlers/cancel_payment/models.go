package cancel_payment

import (
	cancelPayment "github.com/m04kA/SCB-BookingService/internal/usecase/cancel_payment"
)

// CancelPaymentRequest HTTP request model
type CancelPaymentRequest struct {
	OrderID string `json:"orderId"`
}

// CancelPaymentResponse HTTP response model
type CancelPaymentResponse struct {
	OrderID    string  `json:"orderId"`
	Status     string  `json:"status"`
	BookingIDs []int64 `json:"bookingIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelPaymentRequest) ToUseCaseRequest(userID int64) *cancelPayment.Request {
	return &cancelPayment.Request{
		UserID:          userID,
		ProviderOrderID: r.OrderID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelPayment.Response) *CancelPaymentResponse {
	return &CancelPaymentResponse{
		OrderID:    resp.ProviderOrderID,
		Status:     resp.Status,
		BookingIDs: resp.BookingIDs,
	}
}
