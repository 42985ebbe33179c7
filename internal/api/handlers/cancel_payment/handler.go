package cancel_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	cancelPayment "github.com/m04kA/SCB-BookingService/internal/usecase/cancel_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrderNotFound      = "платежный заказ не найден"
	msgOrderAlreadyPaid   = "платежный заказ уже оплачен"
)

type Handler struct {
	useCase CancelPaymentUseCase
	logger  Logger
}

func NewHandler(useCase CancelPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payment/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payment/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, cancelPayment.ErrOrderNotFound):
			h.logger.Warn("POST /payment/cancel - Order not found: order_id=%s", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, cancelPayment.ErrOrderAlreadyPaid):
			h.logger.Warn("POST /payment/cancel - Order already paid: order_id=%s", req.OrderID)
			handlers.RespondConflict(w, msgOrderAlreadyPaid)

		case errors.Is(err, cancelPayment.ErrInvalidInput):
			h.logger.Warn("POST /payment/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /payment/cancel - Failed to cancel payment: order_id=%s, error=%v",
				req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment/cancel - Payment cancelled successfully: order_id=%s, bookings=%d",
		req.OrderID, len(result.BookingIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
