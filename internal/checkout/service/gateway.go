package service

import (
	"context"

	"rezkit/pkg/model"
)

// Gateway is the slice of the payment provider the checkout flow
// drives. *client.PaymentClient satisfies it.
type Gateway interface {
	CreatePayment(ctx context.Context, req model.PaymentRequest) (string, error)
	CapturePayment(ctx context.Context, intentID string) (string, error)
	Dispose(ctx context.Context, intentID string) error
}
