package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rezkit/pkg/model"
)

// FeedClient pulls booked date ranges from an item's availability
// source. Sources are full URLs that vary per item, so this client is
// not base-URL bound like the service clients.
type FeedClient struct {
	httpClient *http.Client
}

func NewFeedClient(timeout time.Duration) *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type feedRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type feedPayload struct {
	BookedDates []feedRange `json:"booked_dates"`
}

// FetchBookedRanges returns the feed's ranges with days parsed to UTC
// midnight. Any transport, decode, or date-format problem is returned
// as an error; the caller decides what an unknown calendar means.
func (c *FeedClient) FetchBookedRanges(ctx context.Context, sourceURL string) ([]model.DateRange, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	var payload feedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode feed payload: %w", err)
	}

	ranges := make([]model.DateRange, 0, len(payload.BookedDates))
	for _, fr := range payload.BookedDates {
		start, err := time.ParseInLocation(model.DayLayout, fr.Start, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid feed start date %q: %w", fr.Start, err)
		}
		end, err := time.ParseInLocation(model.DayLayout, fr.End, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid feed end date %q: %w", fr.End, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("feed range end %q is not after start %q", fr.End, fr.Start)
		}
		ranges = append(ranges, model.DateRange{Start: start, End: end})
	}

	return ranges, nil
}
