package http

import (
	"encoding/json"
	"net/http"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/punch"
	"github.com/coffeetree-vn/attendance-sync-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService punch.SyncService
}

func NewSyncHandler(syncService punch.SyncService) SyncHandler {
	return &syncHandlerImpl{
		syncService: syncService,
	}
}

// Trigger implements SyncHandler. Runs a full pull-and-store cycle for
// one device over the requested date window.
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	var req punch.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DeviceID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.syncService.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sync completed", summary)
}
