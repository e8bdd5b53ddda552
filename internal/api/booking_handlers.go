package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shutterbook/internal/auth"
	"shutterbook/internal/entities"
	httperrors "shutterbook/internal/errors"
	"shutterbook/internal/repository"
	"shutterbook/internal/service"
)

// BookingHandler serves the client booking flow and the admin booking list.
type BookingHandler struct {
	Service      BookingManager
	Availability AvailabilityManager
}

func NewBookingHandler(svc BookingManager, availability AvailabilityManager) *BookingHandler {
	return &BookingHandler{Service: svc, Availability: availability}
}

// BookSlot handles POST /api/client/book. A conflict (the slot closed between
// the client's read and this request) comes back as 400 "Time slot not
// available" so the UI can re-fetch availability and re-prompt, distinct from
// field validation failures.
func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = auth.UserID(r.Context())
	}
	if userID == "" || req.ServiceID == "" || req.TimeSlot == "" {
		httperrors.WriteJSON(w, http.StatusBadRequest, "userId, serviceId, date and timeSlot are required")
		return
	}
	date, err := time.Parse(service.DateLayout, req.Date)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if _, err := h.Service.Book(userID, req.ServiceID, date, req.TimeSlot, req.Details); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			httperrors.WriteJSON(w, http.StatusBadRequest, "Time slot not available")
			return
		}
		log.Printf("Error creating booking for %s %s: %v", req.Date, req.TimeSlot, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error creating booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Booking created successfully!",
	})
}

// ListMyBookings handles GET /api/client/bookings for the authenticated user.
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		httperrors.WriteJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookings, err := h.Service.ListForUser(userID)
	if err != nil {
		log.Printf("Error fetching bookings for user %s: %v", userID, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListAllBookings handles GET /api/admin/bookings: every booking, earliest
// date first, with user and service display data joined.
func (h *BookingHandler) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListAll()
	if err != nil {
		log.Printf("Error fetching admin bookings: %v", err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	if bookings == nil {
		bookings = []entities.BookingResponse{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// CancelBooking handles DELETE /api/client/bookings/{id}. The slot reopens and
// cancellation emails go out to the client and the admin.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["id"]

	err := h.Service.Cancel(code, auth.UserID(r.Context()), auth.IsAdmin(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			httperrors.WriteJSON(w, http.StatusNotFound, "Booking not found")
			return
		}
		if errors.Is(err, service.ErrNotBookingOwner) {
			httperrors.WriteJSON(w, http.StatusForbidden, "You can only cancel your own bookings")
			return
		}
		log.Printf("Error cancelling booking %s: %v", code, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error cancelling booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Booking cancelled successfully and emails sent.",
	})
}

// RestoreSlot handles PUT /api/bookings/restore, the client-side compensation
// call kept from the original API. It only reopens slots on dates that still
// have a published row; cancellation itself restores through the service and
// does not need this endpoint.
func (h *BookingHandler) RestoreSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.RestoreSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TimeSlot == "" {
		httperrors.WriteJSON(w, http.StatusBadRequest, "date and timeSlot are required")
		return
	}
	date, err := time.Parse(service.DateLayout, req.Date)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.Availability.RestorePublishedSlot(date, req.TimeSlot); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			httperrors.WriteJSON(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Error restoring slot %s on %s: %v", req.TimeSlot, req.Date, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error restoring time slot")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Time slot restored successfully.",
	})
}
