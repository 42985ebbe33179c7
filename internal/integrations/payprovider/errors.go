package payprovider

import "errors"

var (
	// ErrOrderCreation возвращается, когда провайдер не смог создать заказ
	ErrOrderCreation = errors.New("payprovider client: failed to create order")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("payprovider client: invalid response")
)
