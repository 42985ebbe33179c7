package block_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	"github.com/m04kA/SCB-BookingService/internal/service/timeslots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotOutsideWindow  = "слот вне рабочих часов корта"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/time-slots/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /time-slots/block - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-slots/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /time-slots/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.Block(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrCourtNotFound):
			h.logger.Warn("POST /time-slots/block - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("POST /time-slots/block - Access denied: court_id=%d, user_id=%d", req.CourtID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeslots.ErrSlotOutsideWindow):
			h.logger.Warn("POST /time-slots/block - Slot outside window: court_id=%d, start=%s", req.CourtID, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotOutsideWindow)

		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("POST /time-slots/block - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /time-slots/block - Failed to block slot: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-slots/block - Slot blocked successfully: block_id=%d, court_id=%d, user_id=%d",
		result.ID, req.CourtID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
