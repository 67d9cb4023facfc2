package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	itemserrors "rezkit/internal/items/errors"
	"rezkit/internal/items/repository"
	"rezkit/internal/items/validator"
	"rezkit/pkg/config"
	apperrors "rezkit/pkg/errors"
	"rezkit/pkg/model"
	"rezkit/pkg/sanitizer"
)

type ItemService interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	GetAll(ctx context.Context, limit int, offset int) ([]*model.Item, int64, error)
	Update(ctx context.Context, id string, updates *model.ItemUpdate) error
	Delete(ctx context.Context, id string) error
}

type itemService struct {
	repo      repository.ItemRepository
	validator *validator.ItemValidator
	cfg       *config.Config
}

func NewItemService(
	repo repository.ItemRepository,
	validator *validator.ItemValidator,
	cfg *config.Config,
) ItemService {
	return &itemService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *itemService) Create(ctx context.Context, item *model.Item) error {
	s.sanitize(item)
	s.applyDefaultsForNewItem(item)

	if err := s.validator.Validate(item); err != nil {
		s.cfg.Log.Warn("Item validation failed",
			"name", item.Name,
			"error", err,
		)
		return apperrors.Validation("Item validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByName(sessCtx, item.Name)
		if err != nil && !errors.Is(err, itemserrors.ErrNotFound) {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		if existing != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"An item named '%s' already exists (id: %s)",
				existing.Name,
				existing.ID,
			))
		}

		if err := s.repo.Create(sessCtx, item); err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create item",
			"name", item.Name,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Item created successfully",
		"id", item.ID,
		"name", item.Name,
		"currency", item.Currency,
	)

	return nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*model.Item, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Item ID cannot be empty")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", id)
		}
		if errors.Is(err, itemserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid item ID format")
		}
		s.cfg.Log.Error("Failed to get item by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve item", err)
	}

	return item, nil
}

func (s *itemService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Item, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	normalizedOffset := config.NormalizeOffset(int64(offset))

	var count int64
	var items []*model.Item
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count items", "error", err)
			errCount = apperrors.Internal("Failed to count items", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		items, err = s.repo.FindAll(ctx, limit, normalizedOffset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all items",
				"limit", limit,
				"offset", normalizedOffset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve items", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return items, count, nil
}

func (s *itemService) Update(ctx context.Context, id string, updates *model.ItemUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Item ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Item", id)
		}
		if errors.Is(err, itemserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid item ID format")
		}
		return apperrors.Internal("Failed to check item existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeItemUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Item validation failed",
			"name", merged.Name,
			"id", id,
			"error", err,
		)
		return apperrors.Validation("Item validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update item",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update item", err)
	}
	s.cfg.Log.Info("Item updated successfully",
		"id", id,
		"name", merged.Name,
	)

	return nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Item ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Item", id)
		}
		if errors.Is(err, itemserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid item ID format")
		}
		s.cfg.Log.Error("Failed to delete item",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete item", err)
	}

	s.cfg.Log.Info("Item deleted successfully", "id", id)

	return nil
}

func (s *itemService) sanitize(item *model.Item) {
	item.Name = sanitizer.NormalizeName(item.Name)
	item.Currency = strings.ToUpper(sanitizer.TrimAndNormalize(item.Currency))
	item.AvailabilitySource = sanitizer.NormalizeURL(item.AvailabilitySource)
	item.Config.UnitLabel = sanitizer.TrimAndNormalize(item.Config.UnitLabel)
}

func (s *itemService) sanitizeUpdate(updates *model.ItemUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Currency != "" {
		updates.Currency = strings.ToUpper(sanitizer.TrimAndNormalize(updates.Currency))
	}
	if updates.AvailabilitySource != nil {
		normalized := sanitizer.NormalizeURL(*updates.AvailabilitySource)
		updates.AvailabilitySource = &normalized
	}
	if updates.Config != nil {
		updates.Config.UnitLabel = sanitizer.TrimAndNormalize(updates.Config.UnitLabel)
	}
}

func (s *itemService) applyDefaultsForNewItem(item *model.Item) {
	if item.Config.MaxNights == 0 {
		item.Config.MaxNights = s.cfg.DefaultMaxNights
	}
	if item.Config.MaxUnits == 0 {
		item.Config.MaxUnits = s.cfg.DefaultMaxUnits
	}
	if item.Config.BaseGuestsPerUnit == 0 {
		item.Config.BaseGuestsPerUnit = s.cfg.DefaultBaseGuestsPerUnit
	}
	if item.Currency == "" {
		item.Currency = s.cfg.DefaultCurrency
	}
}

func (s *itemService) mergeItemUpdates(existing *model.Item, updates *model.ItemUpdate) *model.Item {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}

	if updates.PricePerUnit != nil {
		merged.PricePerUnit = *updates.PricePerUnit
	}

	if updates.Currency != "" {
		merged.Currency = updates.Currency
	}

	if updates.AvailabilitySource != nil {
		merged.AvailabilitySource = *updates.AvailabilitySource
	}

	if updates.Config != nil {
		merged.Config = *updates.Config
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
