package verify_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	verifyPayment "github.com/m04kA/SCB-BookingService/internal/usecase/verify_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrderNotFound      = "платежный заказ не найден"
	msgInvalidSignature   = "невалидная подпись платежа, бронирования отменены"
	msgOrderConflict      = "платежный заказ уже обработан"
	msgConfirmConflict    = "бронирования не могут быть подтверждены, заказ отменен"
)

type Handler struct {
	useCase VerifyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase VerifyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payment/verify - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, verifyPayment.ErrOrderNotFound):
			h.logger.Warn("POST /payment/verify - Order not found: order_id=%s", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, verifyPayment.ErrInvalidSignature):
			h.logger.Warn("POST /payment/verify - Invalid signature: order_id=%s, user_id=%d",
				req.OrderID, userID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, verifyPayment.ErrOrderConflict):
			h.logger.Warn("POST /payment/verify - Order conflict: order_id=%s", req.OrderID)
			handlers.RespondConflict(w, msgOrderConflict)

		case errors.Is(err, verifyPayment.ErrConfirmConflict):
			h.logger.Warn("POST /payment/verify - Confirm conflict: order_id=%s", req.OrderID)
			handlers.RespondConflict(w, msgConfirmConflict)

		case errors.Is(err, verifyPayment.ErrInvalidInput):
			h.logger.Warn("POST /payment/verify - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payment/verify - Failed to verify payment: order_id=%s, error=%v",
				req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment/verify - Payment verified successfully: order_id=%s, payment_id=%s, bookings=%d",
		req.OrderID, req.PaymentID, len(result.BookingIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
