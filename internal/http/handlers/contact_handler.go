package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/http/response"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/platform/mailer"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/utils"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/events"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

// ContactHandler is the notification gateway's HTTP boundary: validate
// the inquiry, hand it to the mailer, map the outcome to a status code.
type ContactHandler struct {
	Mail mailer.Service
	Bus  events.Publisher
}

func NewContactHandler(mail mailer.Service, bus events.Publisher) *ContactHandler {
	return &ContactHandler{Mail: mail, Bus: bus}
}

func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	return r
}

func (h *ContactHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactInquiry
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "missing required fields")
		return
	}

	in.Name = utils.NormalizeString(in.Name)
	in.Email = utils.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		response.BadRequest(w, "missing required fields")
		return
	}

	messageID, err := h.Mail.SendContactInquiry(in)
	if err != nil {
		response.UpstreamError(w, err.Error())
		return
	}

	event := events.InquiryReceivedEvent{
		Name:       in.Name,
		Email:      in.Email,
		MessageID:  messageID,
		ReceivedAt: time.Now().UTC(),
	}
	if err := h.Bus.Publish(r.Context(), events.InquiryReceived, event); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish inquiry event", "error", err)
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message_id": messageID,
	})
}
