package cancel_payment

// Request запрос на отказ от оплаты (пользователь закрыл платежную форму)
type Request struct {
	UserID          int64
	ProviderOrderID string
}

// Response результат отказа от оплаты
type Response struct {
	ProviderOrderID string
	Status          string
	BookingIDs      []int64
}
