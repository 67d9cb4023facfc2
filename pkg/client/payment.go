package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
)

// PaymentClient is the capability wrapper around the external payment
// provider. The engine only ever sees create, capture, and dispose;
// the provider's actual API shape stays behind this type.
type PaymentClient struct {
	httpClient *HttpClient
	apiKey     string
}

func NewPaymentClient(baseURL, apiKey string) *PaymentClient {
	return &PaymentClient{
		httpClient: NewHttpClient(baseURL),
		apiKey:     apiKey,
	}
}

func (c *PaymentClient) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
}

func (c *PaymentClient) CreatePayment(ctx context.Context, req model.PaymentRequest) (string, error) {
	resp, err := c.httpClient.POSTWithHeaders(ctx, "/v1/intents", req, c.authHeaders())
	if err != nil {
		return "", apperrors.PaymentUnavailable("payment provider is unreachable").WithDetails(map[string]any{
			"cause": err.Error(),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := GetErrorMessage(resp)
		if resp.StatusCode >= 500 {
			return "", apperrors.PaymentUnavailable(msg)
		}
		return "", apperrors.Internal("payment provider rejected the intent", errors.New(msg))
	}

	var intent struct {
		ID string `json:"id"`
	}
	if err := resp.DecodeJSON(&intent); err != nil {
		return "", apperrors.Internal("failed to decode payment intent", err)
	}
	if intent.ID == "" {
		return "", apperrors.Internal("payment provider returned an empty intent id", nil)
	}

	return intent.ID, nil
}

func (c *PaymentClient) CapturePayment(ctx context.Context, intentID string) (string, error) {
	path := "/v1/intents/" + url.PathEscape(intentID) + "/capture"
	resp, err := c.httpClient.POSTWithHeaders(ctx, path, nil, c.authHeaders())
	if err != nil {
		return "", apperrors.PaymentUnavailable("payment provider is unreachable").WithDetails(map[string]any{
			"cause": err.Error(),
		})
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		return "", apperrors.PaymentDeclined(GetErrorMessage(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.Internal("payment capture failed", errors.New(GetErrorMessage(resp)))
	}

	var captured struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := resp.DecodeJSON(&captured); err != nil {
		return "", apperrors.Internal("failed to decode capture response", err)
	}
	if captured.TransactionID == "" {
		return "", apperrors.Internal("payment provider returned an empty transaction id", nil)
	}

	return captured.TransactionID, nil
}

// Dispose voids a mounted intent. A missing intent is fine, the
// provider already discarded it.
func (c *PaymentClient) Dispose(ctx context.Context, intentID string) error {
	path := "/v1/intents/" + url.PathEscape(intentID)
	resp, err := c.httpClient.DELETEWithHeaders(ctx, path, c.authHeaders())
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New(GetErrorMessage(resp))
	}
	return nil
}

func (c *PaymentClient) WaitForReady(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}
