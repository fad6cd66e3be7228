package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/response"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/crm"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/events"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

// AppointmentsHandler exposes the direct appointment-sync endpoint used
// by the frontend after a booking is confirmed client-side.
type AppointmentsHandler struct {
	Syncer crm.Syncer
	Bus    events.Publisher
}

func NewAppointmentsHandler(syncer crm.Syncer, bus events.Publisher) *AppointmentsHandler {
	return &AppointmentsHandler{Syncer: syncer, Bus: bus}
}

func (h *AppointmentsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sync", h.sync)
	return r
}

type syncRequest struct {
	Appointment *domain.Appointment `json:"appointment"`
}

type syncResponse struct {
	Success bool   `json:"success"`
	Mode    string `json:"mode"`
}

func (h *AppointmentsHandler) sync(w http.ResponseWriter, r *http.Request) {
	var in syncRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json: "+err.Error())
		return
	}
	if in.Appointment == nil {
		response.BadRequest(w, "appointment is required")
		return
	}
	if err := in.Appointment.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.Syncer.Sync(r.Context(), *in.Appointment)
	if err != nil {
		response.UpstreamError(w, err.Error())
		return
	}

	event := events.AppointmentSyncedEvent{
		AppointmentID: in.Appointment.ID,
		Mode:          string(result.Mode),
		SyncedAt:      time.Now().UTC(),
	}
	if err := h.Bus.Publish(r.Context(), events.AppointmentSynced, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish appointment synced event", "error", err)
	}

	response.WriteJSON(w, http.StatusOK, syncResponse{
		Success: true,
		Mode:    string(result.Mode),
	})
}
