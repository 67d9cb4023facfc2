package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"rezkit/internal/checkout/service"
	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
)

func TestBeginPayment(t *testing.T) {
	var receivedID string
	mockService := &mockCheckoutService{
		beginFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			receivedID = sessionID
			return &model.Session{
				ID:   sessionID,
				Step: model.StepPayment,
				Payment: &model.PaymentIntent{
					ID:       "intent-1",
					Amount:   "300.00",
					Currency: "EUR",
				},
			}, nil
		},
	}

	handler := &PaymentHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s-1/payment", nil)
	w := httptest.NewRecorder()

	handler.BeginPayment(w, req, httprouter.Params{{Key: "id", Value: "s-1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if receivedID != "s-1" {
		t.Errorf("expected service to receive s-1, got %q", receivedID)
	}

	var response struct {
		Data model.Session `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.Payment == nil || response.Data.Payment.Amount != "300.00" {
		t.Errorf("expected mounted intent in response, got %+v", response.Data.Payment)
	}
}

func TestBeginPayment_GatewayUnavailable(t *testing.T) {
	mockService := &mockCheckoutService{
		beginFunc: func(ctx context.Context, sessionID string) (*model.Session, error) {
			return nil, apperrors.PaymentUnavailable("Payment system is still loading")
		},
	}

	handler := &PaymentHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/s-1/payment", nil)
	w := httptest.NewRecorder()

	handler.BeginPayment(w, req, httprouter.Params{{Key: "id", Value: "s-1"}})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var response struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != apperrors.CodePaymentUnavailable {
		t.Errorf("expected code %s, got %q", apperrors.CodePaymentUnavailable, response.Code)
	}
}

func TestBootstrapState(t *testing.T) {
	handler := &PaymentHandler{
		service: &mockCheckoutService{state: service.BootstrapFailed},
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/bootstrap", nil)
	w := httptest.NewRecorder()

	handler.BootstrapState(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.State != string(service.BootstrapFailed) {
		t.Errorf("expected state failed, got %q", response.Data.State)
	}
}

func TestRetryBootstrap(t *testing.T) {
	mockService := &mockCheckoutService{state: service.BootstrapReady}
	handler := &PaymentHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/bootstrap/retry", nil)
	w := httptest.NewRecorder()

	handler.RetryBootstrap(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !mockService.retried {
		t.Error("expected retry to reach the service")
	}
}
