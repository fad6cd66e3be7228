package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/response"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/service"
)

// BookingHandler drives the multi-step booking session flow.
type BookingHandler struct {
	Svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

func (h *BookingHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/services", h.listServices)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/country", h.selectCountry)
			r.Post("/slot", h.selectSlot)
			r.Post("/details", h.enterDetails)
			r.Post("/back", h.back)
			r.Post("/confirm", h.confirm)
		})
	})

	return r
}

type servicePriceDTO struct {
	Slug  string        `json:"slug"`
	Name  string        `json:"name"`
	Price *domain.Price `json:"price,omitempty"`
}

func (h *BookingHandler) listServices(w http.ResponseWriter, r *http.Request) {
	var country domain.Country
	if raw := r.URL.Query().Get("country"); raw != "" {
		c, ok := domain.ParseCountry(raw)
		if !ok {
			response.BadRequest(w, "country must be RD or USA")
			return
		}
		country = c
	}

	services := domain.Services()
	out := make([]servicePriceDTO, 0, len(services))
	for _, s := range services {
		dto := servicePriceDTO{Slug: s.Slug, Name: s.Name}
		if country != "" {
			p := s.PriceFor(country)
			dto.Price = &p
		}
		out = append(out, dto)
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.CreateSession(r.Context())
	if err != nil {
		response.InternalError(w, "error creating session")
		return
	}
	response.WriteJSON(w, http.StatusCreated, sess)
}

func (h *BookingHandler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sess)
}

func (h *BookingHandler) selectCountry(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	sess, err := h.Svc.SelectCountry(r.Context(), chi.URLParam(r, "id"), in.Country)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sess)
}

func (h *BookingHandler) selectSlot(w http.ResponseWriter, r *http.Request) {
	var in service.SlotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	sess, err := h.Svc.SelectSlot(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sess)
}

func (h *BookingHandler) enterDetails(w http.ResponseWriter, r *http.Request) {
	var in domain.ClientDetails
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}
	sess, err := h.Svc.EnterDetails(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sess)
}

func (h *BookingHandler) back(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.Back(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, sess)
}

func (h *BookingHandler) confirm(w http.ResponseWriter, r *http.Request) {
	appt, err := h.Svc.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      string(domain.StateSubmitted),
		"appointment": appt,
	})
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	var tErr *domain.TransitionError
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(w, "booking session not found")
	case errors.As(err, &tErr), errors.As(err, &vErr):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "internal error")
	}
}
