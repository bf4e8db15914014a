package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"medibook/middleware"
	"medibook/models"
	"medibook/rdx"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
)

// eventPublisher is what the create handler needs from Redis; nil disables
// live updates (tests, or running without Redis).
type eventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev rdx.BookingEvent) error
}

type Handler struct {
	store  Store
	guard  *Guard
	events eventPublisher
}

func NewHandler(store Store, events eventPublisher) *Handler {
	return &Handler{
		store:  store,
		guard:  NewGuard(store),
		events: events,
	}
}

// GET /services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	services, err := h.store.ServiceSummaries(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load services")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	utils.RespondWithJSON(w, http.StatusOK, services)
}

// GET /available?date=<string>
func (h *Handler) GetAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = defaultDate
	}

	services, err := h.store.Services(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load services")
		return
	}
	bookings, err := h.store.BookingsForDate(r.Context(), date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ResolveAvailability(services, bookings))
}

// GET /booking?patient=<email> — the caller may only list their own.
func (h *Handler) ListForPatient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	patient := r.URL.Query().Get("patient")
	if patient != middleware.EmailFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden Access")
		return
	}

	bookings, err := h.store.BookingsForPatient(r.Context(), patient)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// POST /booking
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var candidate models.Booking
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if candidate.TreatmentName == "" || candidate.Date == "" || candidate.Patient == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	created, existing, err := h.guard.TryCreate(r.Context(), candidate)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	if existing != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false,
			"message": "Already Have A booking",
			"booking": existing,
		})
		return
	}

	if h.events != nil {
		ev := rdx.BookingEvent{
			Date:          created.Date,
			TreatmentName: created.TreatmentName,
			Slot:          created.Slot,
		}
		if err := h.events.PublishBookingEvent(r.Context(), ev); err != nil {
			log.Printf("booking event publish failed: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"result":  created,
	})
}

// GET /booking/:id
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := h.store.BookingByID(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	if b == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}
