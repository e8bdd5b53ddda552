package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"shutterbook/internal/entities"
	httperrors "shutterbook/internal/errors"
	"shutterbook/internal/repository"
	"shutterbook/internal/service"
)

// AvailabilityHandler serves the admin availability console and the public
// slot/date reads.
type AvailabilityHandler struct {
	Service AvailabilityManager
	Reaper  Reaper
}

func NewAvailabilityHandler(svc AvailabilityManager, reaper Reaper) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Reaper: reaper}
}

// PublishAvailability handles POST /api/admin/booking. The payload carries the
// complete slot set for the date; an empty set clears the date.
func (h *AvailabilityHandler) PublishAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.PublishAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse(service.DateLayout, req.Date)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	result, err := h.Service.Publish(date, req.TimeSlots)
	if err != nil {
		log.Printf("Error publishing availability for %s: %v", req.Date, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error saving availability")
		return
	}

	switch {
	case result.Day != nil:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Availability saved successfully",
			"booking": result.Day,
		})
	case result.Deleted:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Availability deleted since no time slots selected",
		})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "No availability to delete",
		})
	}
}

// ListAvailability handles GET /api/admin/booking. A reaper pass runs first so
// the console never shows dates or slots that have already gone by, even when
// the scheduled run was missed.
func (h *AvailabilityHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.Reaper.Run(); err != nil {
		log.Printf("Reaper run before availability listing failed: %v", err)
	}

	days, err := h.Service.ListDays()
	if err != nil {
		log.Printf("Error listing availability: %v", err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error fetching availability")
		return
	}
	if days == nil {
		days = []entities.AvailabilityDayResponse{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"bookings": days,
	})
}

// UpdateAvailability handles PUT /api/admin/booking/{id}.
func (h *AvailabilityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req entities.PublishAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := time.Parse(service.DateLayout, req.Date)
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if _, err := h.Service.UpdateDay(id, date, req.TimeSlots); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			httperrors.WriteJSON(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Error updating availability %d: %v", id, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error updating availability")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Availability updated successfully",
	})
}

// DeleteAvailability handles DELETE /api/admin/booking/{id}.
func (h *AvailabilityHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := h.Service.DeleteDay(id); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			httperrors.WriteJSON(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Error deleting availability %d: %v", id, err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error deleting availability")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Availability deleted successfully",
	})
}

// GetSlotsByDate handles GET /api/booking/{date} and GET
// /api/admin/booking/{date}. An unknown date is zero availability, not an
// error.
func (h *AvailabilityHandler) GetSlotsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(service.DateLayout, mux.Vars(r)["date"])
	if err != nil {
		httperrors.WriteJSON(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slots, err := h.Service.GetSlots(date)
	if err != nil {
		log.Printf("Error fetching slots for %s: %v", mux.Vars(r)["date"], err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error fetching availability")
		return
	}
	writeJSON(w, http.StatusOK, entities.DateSlotsResponse{
		Success:   true,
		TimeSlots: slots,
	})
}

// GetAvailableDates handles GET /api/booking-dates for the client date picker.
func (h *AvailabilityHandler) GetAvailableDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.Service.ListAvailableDates()
	if err != nil {
		log.Printf("Error fetching available dates: %v", err)
		httperrors.WriteJSON(w, http.StatusInternalServerError, "Error fetching available dates")
		return
	}
	if len(dates) == 0 {
		httperrors.WriteJSON(w, http.StatusNotFound, "No available dates found")
		return
	}
	writeJSON(w, http.StatusOK, entities.AvailableDatesResponse{AvailableDates: dates})
}
