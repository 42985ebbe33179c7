package verify_payment

// Request callback после оплаты: идентификаторы заказа и платежа у провайдера
// плюс подпись, которой провайдер заверяет их связку
type Request struct {
	UserID          int64
	ProviderOrderID string
	PaymentID       string
	Signature       string
}

// Response результат верификации оплаты
type Response struct {
	ProviderOrderID string
	PaymentID       string
	Status          string
	BookingIDs      []int64
}
