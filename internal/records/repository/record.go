package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	recordserrors "rezkit/internal/records/errors"
	"rezkit/pkg/config"
	"rezkit/pkg/model"
)

const (
	CollectionName = "BookingRecords"
)

type mongoRecordRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type RecordRepository interface {
	Create(ctx context.Context, record *model.BookingRecord) error
	FindByReference(ctx context.Context, reference string) (*model.BookingRecord, error)
	FindAll(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, error)
	Count(ctx context.Context, filter model.RecordFilter) (int64, error)
}

func NewMongoRecordRepository(cfg *config.Config) RecordRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoRecordRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoRecordRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRecordRepository) Create(ctx context.Context, record *model.BookingRecord) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", recordserrors.ErrDuplicateReference, record.Reference)
		}
		return fmt.Errorf("failed to create booking record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRecordRepository) FindByReference(ctx context.Context, reference string) (*model.BookingRecord, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := uuid.Parse(reference); err != nil {
		return nil, fmt.Errorf("%w: %s", recordserrors.ErrInvalidReference, reference)
	}

	filter := bson.M{"reference": reference}

	var record model.BookingRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recordserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking record: %w", err)
	}

	return &record, nil
}

func (r *mongoRecordRepository) FindAll(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(filter.Limit).
		SetSkip(filter.Offset)

	cursor, err := r.collection.Find(ctx, buildRecordFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*model.BookingRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode booking records: %w", err)
	}

	return records, nil
}

func (r *mongoRecordRepository) Count(ctx context.Context, filter model.RecordFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildRecordFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count booking records: %w", err)
	}

	return count, nil
}

func buildRecordFilter(filter model.RecordFilter) bson.M {
	query := bson.M{}

	if filter.ItemID != "" {
		query["item_id"] = filter.ItemID
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	if filter.From != nil || filter.To != nil {
		stay := bson.M{}
		if filter.From != nil {
			stay["$gte"] = *filter.From
		}
		if filter.To != nil {
			stay["$lt"] = *filter.To
		}
		query["check_in"] = stay
	}

	return query
}
