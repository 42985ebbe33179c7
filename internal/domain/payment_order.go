package domain

import "time"

// PaymentOrderStatus статус платежного заказа
type PaymentOrderStatus string

const (
	OrderCreated   PaymentOrderStatus = "created"
	OrderPaid      PaymentOrderStatus = "paid"
	OrderFailed    PaymentOrderStatus = "failed"
	OrderCancelled PaymentOrderStatus = "cancelled"
)

// PaymentOrder связка заказа во внешнем платежном провайдере с набором
// бронирований, под которые он создан. Сам заказ (подпись, статус на стороне
// провайдера) принадлежит провайдеру; здесь хранится только то, что нужно
// для верификации callback'а и аудита
type PaymentOrder struct {
	ID              int64
	ProviderOrderID string
	Receipt         string
	Amount          int64 // минимальные единицы валюты
	Currency        string
	Status          PaymentOrderStatus
	BookingIDs      []int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
