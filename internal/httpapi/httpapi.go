// Package httpapi is the inbound HTTP wrapper: one handler decodes and
// structurally validates the trip request, hands it to the orchestrator,
// and writes the aggregate response or an error.
package httpapi

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/go-playground/validator/v10"

	"github.com/Kiyoonewton/eld-api/internal/apperrors"
	"github.com/Kiyoonewton/eld-api/internal/domain"
	"github.com/Kiyoonewton/eld-api/internal/logger"
	"github.com/Kiyoonewton/eld-api/internal/trip"
)

type coordinatesPayload struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type locationPayload struct {
	Coordinates coordinatesPayload `json:"coordinates" validate:"required"`
}

type tripPayload struct {
	CurrentLocation  locationPayload `json:"currentLocation" validate:"required"`
	PickupLocation   locationPayload `json:"pickupLocation" validate:"required"`
	DropoffLocation  locationPayload `json:"dropoffLocation" validate:"required"`
	CurrentCycleUsed float64         `json:"currentCycleUsed"`
}

type requestBody struct {
	Trip tripPayload `json:"trip" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	orchestrator *trip.Orchestrator
	validate     *validator.Validate
	log          *logger.Logger
}

func NewHandler(orchestrator *trip.Orchestrator, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		orchestrator: orchestrator,
		validate:     validator.New(),
		log:          log,
	}
}

// Mount registers every route this service exposes on mux.
func (h *Handler) Mount(mux *http.ServeMux) {
	mux.HandleFunc("/trip/", h.handleTrip)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/ready", h.handleReady)
}

func (h *Handler) handleTrip(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Errorw("panic handling trip request", "recover", rec)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid coordinates in trip data")
		return
	}

	req := trip.Request{
		Current: domain.Location{
			Lat: *body.Trip.CurrentLocation.Coordinates.Latitude,
			Lng: *body.Trip.CurrentLocation.Coordinates.Longitude,
		},
		Pickup: domain.Location{
			Lat: *body.Trip.PickupLocation.Coordinates.Latitude,
			Lng: *body.Trip.PickupLocation.Coordinates.Longitude,
		},
		Dropoff: domain.Location{
			Lat: *body.Trip.DropoffLocation.Coordinates.Latitude,
			Lng: *body.Trip.DropoffLocation.Coordinates.Longitude,
		},
		CurrentCycleUsed: body.Trip.CurrentCycleUsed,
		StartTime:        todayAt6AM(),
	}

	result, err := h.orchestrator.Plan(r.Context(), req)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == apperrors.CodeInvalidInput {
			writeError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		h.log.WithError(err).Errorw("trip planning failed")
		writeError(w, http.StatusInternalServerError, "error processing request")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func todayAt6AM() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
