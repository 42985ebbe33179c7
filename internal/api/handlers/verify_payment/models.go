package verify_payment

import (
	verifyPayment "github.com/m04kA/SCB-BookingService/internal/usecase/verify_payment"
)

// VerifyPaymentRequest HTTP request model
// Имена полей повторяют callback платежного провайдера
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	OrderID    string  `json:"orderId"`
	PaymentID  string  `json:"paymentId"`
	Status     string  `json:"status"`
	BookingIDs []int64 `json:"bookingIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *VerifyPaymentRequest) ToUseCaseRequest(userID int64) *verifyPayment.Request {
	return &verifyPayment.Request{
		UserID:          userID,
		ProviderOrderID: r.OrderID,
		PaymentID:       r.PaymentID,
		Signature:       r.Signature,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *verifyPayment.Response) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		OrderID:    resp.ProviderOrderID,
		PaymentID:  resp.PaymentID,
		Status:     resp.Status,
		BookingIDs: resp.BookingIDs,
	}
}
