package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makeoverbyreet/makeover-contact/internal/domain"
	"github.com/makeoverbyreet/makeover-contact/internal/http/response"
	"github.com/makeoverbyreet/makeover-contact/internal/service"
	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

const (
	MsgAPILive        = "MakeOver API is live ✨"
	MsgContactActive  = "Contact endpoint is active 🚀"
	MsgBookingSent    = "Thank you! Your booking request has been sent successfully 💅"
	MsgMissingFields  = "Please fill all required fields (Name, Email, Phone)."
	MsgInvalidBody    = "Invalid request body."
	MsgInvalidFields  = "Please remove line breaks from your name, email, phone, service and date."
	MsgDeliveryFailed = "Server error while sending email. Please try again later."
)

// maxBodyBytes caps the submission body; a booking is a handful of short fields.
const maxBodyBytes = 64 << 10

type ContactHandler struct {
	Service service.ContactService
}

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{Service: svc}
}

func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.status)
	r.Post("/", h.submit)
	return r
}

// Health answers GET /.
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, MsgAPILive)
}

func (h *ContactHandler) status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, MsgContactActive)
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var in domain.BookingRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		logger.WarnContext(r.Context(), "Invalid booking payload", "error", err)
		response.BadRequest(w, MsgInvalidBody)
		return
	}

	if _, err := h.Service.Submit(r.Context(), in); err != nil {
		if errors.Is(err, domain.ErrMissingRequired) {
			response.BadRequest(w, MsgMissingFields)
			return
		}
		if errors.Is(err, domain.ErrInvalidField) {
			response.BadRequest(w, MsgInvalidFields)
			return
		}
		// the service already logged the cause; keep it out of the response
		response.InternalError(w, MsgDeliveryFailed)
		return
	}

	response.Success(w, MsgBookingSent)
}
