package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rezkit/pkg/logger"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignatureVerification(t *testing.T) {
	secret := "webhook-secret"
	body := `{"type":"payment.approved","intent_id":"pi_1"}`

	tests := []struct {
		name       string
		signature  string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid signature",
			signature:  signBody(secret, []byte(body)),
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "valid signature with sha256 prefix",
			signature:  "sha256=" + signBody(secret, []byte(body)),
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing signature",
			signature:  "",
			wantStatus: http.StatusUnauthorized,
			wantNext:   false,
		},
		{
			name:       "signature from wrong secret",
			signature:  signBody("other-secret", []byte(body)),
			wantStatus: http.StatusUnauthorized,
			wantNext:   false,
		},
		{
			name:       "garbage signature",
			signature:  "not-hex",
			wantStatus: http.StatusUnauthorized,
			wantNext:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				b, _ := io.ReadAll(r.Body)
				if string(b) != body {
					t.Errorf("handler got body %q, want %q", b, body)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := WebhookSignatureVerification(secret, logger.Discard())(next)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
			if tt.signature != "" {
				req.Header.Set("X-Webhook-Signature-256", tt.signature)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}
