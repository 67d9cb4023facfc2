package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"rezkit/internal/sessions/service"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

type openRequest struct {
	ItemID string `json:"item_id"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type nightsRequest struct {
	Nights int `json:"nights"`
}

type guestsRequest struct {
	Guests int `json:"guests"`
}

type unitsRequest struct {
	Units int `json:"units"`
}

func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Open", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if req.ItemID == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'item_id' is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Open", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := h.service.Open(r.Context(), req.ItemID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Open", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, sess); err != nil {
		h.log.Error("failed to write created response", "handler", "Open", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Close(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Close", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SessionHandler) PickDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.dateAction(w, r, ps, "PickDate", h.service.PickDate)
}

func (h *SessionHandler) SetCheckIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.dateAction(w, r, ps, "SetCheckIn", h.service.SetCheckIn)
}

// dateAction decodes the one-date request body shared by the calendar
// click and the direct check-in set.
func (h *SessionHandler) dateAction(
	w http.ResponseWriter,
	r *http.Request,
	ps httprouter.Params,
	name string,
	action func(ctx context.Context, id string, day time.Time) (*model.Session, error),
) {
	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", name, "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	day, err := time.ParseInLocation(model.DayLayout, req.Date, time.UTC)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid 'date', expected YYYY-MM-DD",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", name, "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := action(r.Context(), ps.ByName("id"), day)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", name, "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SetNights(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req nightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetNights", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := h.service.SetNights(r.Context(), ps.ByName("id"), req.Nights)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetNights", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "SetNights", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SetGuests(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req guestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetGuests", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := h.service.SetGuests(r.Context(), ps.ByName("id"), req.Guests)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetGuests", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "SetGuests", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SetUnits(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req unitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetUnits", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := h.service.SetUnits(r.Context(), ps.ByName("id"), req.Units)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetUnits", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "SetUnits", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SetContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetContact", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	sess, err := h.service.SetContact(r.Context(), ps.ByName("id"), contact)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetContact", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "SetContact", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ConfirmDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.ConfirmDates(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ConfirmDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmDates", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ConfirmDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.ConfirmDetails(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ConfirmDetails", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "ConfirmDetails", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.Back(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Back", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "Back", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Days(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	from, err := httputil.ExtractTimeParam(r, "from", model.DayLayout)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Days", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	to, err := httputil.ExtractTimeParam(r, "to", model.DayLayout)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Days", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if from == nil || to == nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'from' and 'to' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Days", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	days, err := h.service.Days(r.Context(), ps.ByName("id"), *from, *to)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Days", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, days); err != nil {
		h.log.Error("failed to write success response", "handler", "Days", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	quote, err := h.service.Quote(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Quote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "Quote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions", h.Open)
	router.GET("/api/v1/sessions/:id", h.Get)
	router.DELETE("/api/v1/sessions/:id", h.Close)
	router.GET("/api/v1/sessions/:id/days", h.Days)
	router.GET("/api/v1/sessions/:id/quote", h.Quote)
	router.POST("/api/v1/sessions/:id/dates", h.PickDate)
	router.PUT("/api/v1/sessions/:id/check-in", h.SetCheckIn)
	router.PUT("/api/v1/sessions/:id/nights", h.SetNights)
	router.PUT("/api/v1/sessions/:id/guests", h.SetGuests)
	router.PUT("/api/v1/sessions/:id/units", h.SetUnits)
	router.PUT("/api/v1/sessions/:id/contact", h.SetContact)
	router.POST("/api/v1/sessions/:id/confirm-dates", h.ConfirmDates)
	router.POST("/api/v1/sessions/:id/confirm-details", h.ConfirmDetails)
	router.POST("/api/v1/sessions/:id/back", h.Back)
}
