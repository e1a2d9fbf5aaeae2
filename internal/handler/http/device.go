package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coffeetree-vn/attendance-sync-go/internal/domain/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeviceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CheckConnection(w http.ResponseWriter, r *http.Request)
	SetClock(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.DeviceService
}

func NewDeviceHandler(deviceService device.DeviceService) DeviceHandler {
	return &deviceHandlerImpl{
		deviceService: deviceService,
	}
}

// Create implements DeviceHandler.
func (h *deviceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req device.CreateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.deviceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device registered", result)
}

// Get implements DeviceHandler.
func (h *deviceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.deviceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements DeviceHandler.
func (h *deviceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements DeviceHandler.
func (h *deviceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req device.UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.deviceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device updated", result)
}

// Delete implements DeviceHandler.
func (h *deviceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.deviceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device deleted", nil)
}

// CheckConnection implements DeviceHandler.
func (h *deviceHandlerImpl) CheckConnection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.deviceService.CheckConnection(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetClock implements DeviceHandler.
func (h *deviceHandlerImpl) SetClock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.deviceService.SetClock(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device clock updated", nil)
}

// ListRuns implements DeviceHandler.
func (h *deviceHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "limit must be an integer", nil)
			return
		}
		limit = parsed
	}

	result, err := h.deviceService.ListRuns(r.Context(), id, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
