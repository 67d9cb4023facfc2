package availability

import (
	"context"
	"sort"
	"time"

	"rezkit/pkg/client"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

// Fetcher pulls booked ranges from an item's availability feed. A feed
// that is down, slow or malformed yields no ranges at all; the calendar
// then shows every future day as free instead of blocking the widget.
type Fetcher struct {
	feed    *client.FeedClient
	timeout time.Duration
	log     *logger.Logger
}

func NewFetcher(feed *client.FeedClient, timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		feed:    feed,
		timeout: timeout,
		log:     log,
	}
}

// BookedRanges fetches and normalizes the feed behind sourceURL. Items
// without a feed have no external bookings, so an empty URL short
// circuits to nil.
func (f *Fetcher) BookedRanges(ctx context.Context, sourceURL string) []model.DateRange {
	if sourceURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	ranges, err := f.feed.FetchBookedRanges(ctx, sourceURL)
	if err != nil {
		f.log.Warn("Availability feed unavailable, treating calendar as open",
			"source_url", sourceURL,
			"error", err,
		)
		return nil
	}

	for i := range ranges {
		ranges[i].Start = Day(ranges[i].Start)
		ranges[i].End = Day(ranges[i].End)
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	return ranges
}
