package service

import (
	"context"
	"errors"

	recordserrors "rezkit/internal/records/errors"
	"rezkit/internal/records/repository"
	"rezkit/internal/records/validator"
	"rezkit/pkg/config"
	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
)

type RecordService interface {
	Create(ctx context.Context, record *model.BookingRecord) error
	GetByReference(ctx context.Context, reference string) (*model.BookingRecord, error)
	GetAll(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, int64, error)
}

type recordService struct {
	repo      repository.RecordRepository
	validator *validator.RecordValidator
	cfg       *config.Config
}

func NewRecordService(repo repository.RecordRepository, v *validator.RecordValidator, cfg *config.Config) RecordService {
	return &recordService{
		repo:      repo,
		validator: v,
		cfg:       cfg,
	}
}

func (s *recordService) Create(ctx context.Context, record *model.BookingRecord) error {
	if err := s.validator.ValidateRecord(record); err != nil {
		return apperrors.Validation("Booking record failed validation", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, recordserrors.ErrDuplicateReference) {
			return apperrors.Conflict("A booking with this reference already exists")
		}
		return apperrors.Internal("Failed to store booking record", err)
	}

	s.cfg.Log.Info("Booking record stored",
		"reference", record.Reference,
		"item_id", record.ItemID,
		"total", record.Total,
		"currency", record.Currency,
	)
	return nil
}

func (s *recordService) GetByReference(ctx context.Context, reference string) (*model.BookingRecord, error) {
	record, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, recordserrors.ErrInvalidReference) {
			return nil, apperrors.InvalidInput("Invalid booking reference format")
		}
		if errors.Is(err, recordserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking record", reference)
		}
		return nil, apperrors.Internal("Failed to load booking record", err)
	}
	return record, nil
}

func (s *recordService) GetAll(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, int64, error) {
	filter.Limit = int64(config.NormalizePaginationLimit(int(filter.Limit)))
	filter.Offset = config.NormalizeOffset(filter.Offset)

	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list booking records", err)
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to count booking records", err)
	}

	return records, count, nil
}
