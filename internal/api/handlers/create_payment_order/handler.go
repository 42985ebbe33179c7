package create_payment_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	createPaymentOrder "github.com/m04kA/SCB-BookingService/internal/usecase/create_payment_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgBookingNotPending  = "бронирование уже обработано"
	msgAmountMismatch     = "сумма не совпадает с суммой бронирований"
	msgPaymentOrderFailed = "не удалось создать платежный заказ"
)

type Handler struct {
	useCase CreatePaymentOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payment/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createPaymentOrder.ErrBookingNotFound):
			h.logger.Warn("POST /payment/orders - Booking not found: user_id=%d, booking_ids=%v",
				userID, req.BookingIDs)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, createPaymentOrder.ErrAccessDenied):
			h.logger.Warn("POST /payment/orders - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPaymentOrder.ErrBookingNotPending):
			h.logger.Warn("POST /payment/orders - Booking not pending: user_id=%d, error=%v", userID, err)
			handlers.RespondConflict(w, msgBookingNotPending)

		case errors.Is(err, createPaymentOrder.ErrAmountMismatch):
			h.logger.Warn("POST /payment/orders - Amount mismatch: user_id=%d, amount=%d", userID, req.Amount)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, createPaymentOrder.ErrInvalidInput):
			h.logger.Warn("POST /payment/orders - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createPaymentOrder.ErrPaymentOrder):
			// Бронирования остаются pending, клиент может повторить попытку
			h.logger.Error("POST /payment/orders - Provider error: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentOrderFailed)

		default:
			h.logger.Error("POST /payment/orders - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment/orders - Order created successfully: order_id=%s, user_id=%d, amount=%d",
		result.ProviderOrderID, userID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
