package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rezkit/internal/checkout/service"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
)

type PaymentHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewPaymentHandler(service service.CheckoutService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type bootstrapResponse struct {
	State string `json:"state"`
}

func (h *PaymentHandler) BeginPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess, err := h.service.BeginPayment(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BeginPayment", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "BeginPayment", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) BootstrapState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := h.service.GatewayState()

	if err := httputil.WriteSuccess(w, bootstrapResponse{State: string(state)}); err != nil {
		h.log.Error("failed to write success response", "handler", "BootstrapState", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) RetryBootstrap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := h.service.RetryBootstrap()

	if err := httputil.WriteSuccess(w, bootstrapResponse{State: string(state)}); err != nil {
		h.log.Error("failed to write success response", "handler", "RetryBootstrap", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions/:id/payment", h.BeginPayment)
	router.GET("/api/v1/payments/bootstrap", h.BootstrapState)
	router.POST("/api/v1/payments/bootstrap/retry", h.RetryBootstrap)
}
