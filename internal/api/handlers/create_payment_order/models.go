package create_payment_order

import (
	createPaymentOrder "github.com/m04kA/SCB-BookingService/internal/usecase/create_payment_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	Amount     int64   `json:"amount"` // минимальные единицы валюты
	BookingIDs []int64 `json:"bookingIds"`
}

// CreateOrderResponse HTTP response model
type CreateOrderResponse struct {
	OrderID    string  `json:"orderId"`
	Receipt    string  `json:"receipt"`
	Amount     int64   `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	BookingIDs []int64 `json:"bookingIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) *createPaymentOrder.Request {
	return &createPaymentOrder.Request{
		UserID:     userID,
		BookingIDs: r.BookingIDs,
		Amount:     r.Amount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPaymentOrder.Response) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:    resp.ProviderOrderID,
		Receipt:    resp.Receipt,
		Amount:     resp.Amount,
		Currency:   resp.Currency,
		Status:     resp.Status,
		BookingIDs: resp.BookingIDs,
	}
}
