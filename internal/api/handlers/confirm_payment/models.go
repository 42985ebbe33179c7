package confirm_payment

// Статусы оплаты, которые присылает клиент после платежной формы
const (
	paymentStatusPaid   = "paid"
	paymentStatusFailed = "failed"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	BookingIDs    []int64 `json:"bookingIds"`
	PaymentID     string  `json:"paymentId"`
	PaymentStatus string  `json:"paymentStatus"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	BookingIDs []int64 `json:"bookingIds"`
	Status     string  `json:"status"`
}
