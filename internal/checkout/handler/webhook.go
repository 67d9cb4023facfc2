package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rezkit/internal/checkout/service"
	apperrors "rezkit/pkg/errors"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
)

// Provider callback event types.
const (
	webhookPaymentApproved = "payment.approved"
	webhookPaymentFailed   = "payment.failed"
)

type WebhookHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewWebhookHandler(service service.CheckoutService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log,
	}
}

type webhookPayload struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	IntentID  string `json:"intent_id"`
	Reason    string `json:"reason,omitempty"`
}

type webhookAck struct {
	Received bool `json:"received"`
}

// HandleWebhook always acknowledges payloads it could parse. The
// provider retries on non-2xx, and a retried approval against an
// already settled charge has nothing safe left to do.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid webhook body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "HandleWebhook", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if payload.SessionID == "" || payload.IntentID == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'session_id' and 'intent_id' are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "HandleWebhook", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	var err error
	switch payload.Type {
	case webhookPaymentApproved:
		err = h.service.HandleApproved(r.Context(), payload.SessionID, payload.IntentID)
	case webhookPaymentFailed:
		err = h.service.HandleFailed(r.Context(), payload.SessionID, payload.IntentID, payload.Reason)
	default:
		h.log.Warn("Ignoring unknown webhook event",
			"type", payload.Type,
			"session_id", payload.SessionID,
		)
	}

	if err != nil {
		var appErr *apperrors.AppError
		switch {
		case errors.As(err, &appErr) && appErr.Code == apperrors.CodeRecordNotSaved:
			h.log.Error("Webhook left an unsaved booking record",
				"session_id", payload.SessionID,
				"intent_id", payload.IntentID,
				"error", err,
			)
		case errors.As(err, &appErr) && appErr.Code == apperrors.CodeNotFound:
			h.log.Warn("Webhook for unknown or expired session",
				"session_id", payload.SessionID,
				"intent_id", payload.IntentID,
			)
		default:
			h.log.Warn("Webhook processing failed",
				"session_id", payload.SessionID,
				"intent_id", payload.IntentID,
				"error", err,
			)
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, webhookAck{Received: true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "HandleWebhook", "operation", "WriteJSON", "error", err)
	}
}

func (h *WebhookHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments/webhook", h.HandleWebhook)
}
