package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgMissingPaymentID     = "отсутствует ID платежа"
	msgInvalidPaymentStatus = "некорректный статус оплаты"
	msgConfirmConflict      = "не все бронирования могут быть подтверждены"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/confirm-payment
// paid подтверждает весь набор атомарно, любой другой терминальный статус
// откатывает pending-бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/confirm-payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/confirm-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.BookingIDs) == 0 {
		h.logger.Warn("POST /bookings/confirm-payment - Empty booking ids: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.PaymentStatus {
	case paymentStatusPaid:
		if req.PaymentID == "" {
			h.logger.Warn("POST /bookings/confirm-payment - Missing payment ID: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMissingPaymentID)
			return
		}

		err := h.service.ConfirmBookings(r.Context(), req.BookingIDs, userID, req.PaymentID)
		if err != nil {
			switch {
			case errors.Is(err, bookings.ErrConfirmConflict):
				h.logger.Warn("POST /bookings/confirm-payment - Confirm conflict: user_id=%d, booking_ids=%v",
					userID, req.BookingIDs)
				handlers.RespondConflict(w, msgConfirmConflict)

			case errors.Is(err, bookings.ErrInvalidInput):
				h.logger.Warn("POST /bookings/confirm-payment - Invalid input: %v", err)
				handlers.RespondBadRequest(w, msgInvalidRequestBody)

			default:
				h.logger.Error("POST /bookings/confirm-payment - Failed to confirm: user_id=%d, error=%v", userID, err)
				handlers.RespondInternalError(w)
			}
			return
		}

		h.logger.Info("POST /bookings/confirm-payment - Bookings confirmed: user_id=%d, count=%d, payment_id=%s",
			userID, len(req.BookingIDs), req.PaymentID)
		handlers.RespondJSON(w, http.StatusOK, ConfirmPaymentResponse{
			BookingIDs: req.BookingIDs,
			Status:     string(domain.StatusConfirmed),
		})

	case paymentStatusFailed:
		if err := h.service.RollbackBookings(r.Context(), req.BookingIDs); err != nil {
			h.logger.Error("POST /bookings/confirm-payment - Failed to rollback: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Info("POST /bookings/confirm-payment - Bookings rolled back: user_id=%d, count=%d",
			userID, len(req.BookingIDs))
		handlers.RespondJSON(w, http.StatusOK, ConfirmPaymentResponse{
			BookingIDs: req.BookingIDs,
			Status:     string(domain.StatusCancelled),
		})

	default:
		h.logger.Warn("POST /bookings/confirm-payment - Invalid payment status: %q", req.PaymentStatus)
		handlers.RespondBadRequest(w, msgInvalidPaymentStatus)
	}
}
