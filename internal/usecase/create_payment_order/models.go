package create_payment_order

// Request модель запроса на создание платежного заказа
// Один заказ покрывает весь набор pending-бронирований пользователя
type Request struct {
	UserID     int64
	BookingIDs []int64

	// Amount заявленная клиентом сумма в минимальных единицах валюты
	// Должна совпадать с суммой бронирований набора
	Amount int64
}

// Response модель ответа с созданным платежным заказом
type Response struct {
	ProviderOrderID string
	Receipt         string
	Amount          int64
	Currency        string
	Status          string
	BookingIDs      []int64
}
