package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/middleware"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/response"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/repo/postgres"
)

// AdminHandler exposes the back-office appointment listing.
type AdminHandler struct {
	Repo postgres.AppointmentRepo
}

func NewAdminHandler(repo postgres.AppointmentRepo) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequireJWT("admin"))
	r.Get("/appointments", h.listAppointments)
	return r
}

func (h *AdminHandler) listAppointments(w http.ResponseWriter, r *http.Request) {
	limit, offset := 20, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	appts, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "db error")
		return
	}
	response.WriteJSON(w, http.StatusOK, appts)
}
