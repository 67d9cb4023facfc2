package service

import (
	"context"

	"rezkit/pkg/client"
	"rezkit/pkg/model"
)

// RecordSink persists a finalized booking record. A failure here after
// a captured charge is the one case the engine treats as critical.
type RecordSink interface {
	Save(ctx context.Context, record *model.BookingRecord) error
}

// RemoteSink forwards records to the external persistence collaborator.
type RemoteSink struct {
	client *client.RecordSinkClient
}

func NewRemoteSink(c *client.RecordSinkClient) *RemoteSink {
	return &RemoteSink{client: c}
}

func (s *RemoteSink) Save(ctx context.Context, record *model.BookingRecord) error {
	return s.client.SaveRecord(ctx, record)
}

// RecordCreator is the local records service slice used when the
// engine stores bookings itself instead of forwarding them.
type RecordCreator interface {
	Create(ctx context.Context, record *model.BookingRecord) error
}

// LocalSink persists records through the records service.
type LocalSink struct {
	records RecordCreator
}

func NewLocalSink(records RecordCreator) *LocalSink {
	return &LocalSink{records: records}
}

func (s *LocalSink) Save(ctx context.Context, record *model.BookingRecord) error {
	return s.records.Create(ctx, record)
}
