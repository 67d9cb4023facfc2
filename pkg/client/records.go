package client

import (
	"context"
	"errors"
	"fmt"

	"rezkit/pkg/model"
)

// RecordSinkClient forwards finalized booking records to a remote
// persistence collaborator. The collaborator answers {"success": bool};
// anything other than a 2xx with success=true counts as a failed save.
type RecordSinkClient struct {
	httpClient *HttpClient
}

func NewRecordSinkClient(baseURL string) *RecordSinkClient {
	return &RecordSinkClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *RecordSinkClient) SaveRecord(ctx context.Context, record *model.BookingRecord) error {
	resp, err := c.httpClient.POST(ctx, "/bookings", record)
	if err != nil {
		return fmt.Errorf("record sink request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("record sink returned status %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return fmt.Errorf("failed to decode record sink response: %w", err)
	}
	if !result.Success {
		return errors.New("record sink reported success=false")
	}

	return nil
}
