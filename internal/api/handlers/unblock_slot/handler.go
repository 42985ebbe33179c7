package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SCB-BookingService/internal/api/handlers"
	"github.com/m04kA/SCB-BookingService/internal/api/middleware"
	"github.com/m04kA/SCB-BookingService/internal/service/timeslots"
	"github.com/m04kA/SCB-BookingService/internal/service/timeslots/models"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "блокировка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/time-slots/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /time-slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	blockIDStr := vars["blockId"]

	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-slots/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	err = h.service.Unblock(r.Context(), &models.UnblockSlotRequest{
		UserID:        userID,
		BlockedSlotID: blockID,
	})
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrBlockedSlotNotFound):
			h.logger.Warn("DELETE /time-slots/{id} - Blocked slot not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("DELETE /time-slots/{id} - Access denied: block_id=%d, user_id=%d", blockID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /time-slots/{id} - Failed to unblock slot: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-slots/{id} - Slot unblocked successfully: block_id=%d, user_id=%d", blockID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
