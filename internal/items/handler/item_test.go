package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "rezkit/pkg/errors"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

type mockItemService struct {
	createFunc func(ctx context.Context, item *model.Item) error
	getFunc    func(ctx context.Context, id string) (*model.Item, error)
	getAllFunc func(ctx context.Context, limit int, offset int) ([]*model.Item, int64, error)
	updateFunc func(ctx context.Context, id string, updates *model.ItemUpdate) error
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockItemService) Create(ctx context.Context, item *model.Item) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return nil
}

func (m *mockItemService) GetByID(ctx context.Context, id string) (*model.Item, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, apperrors.NotFoundWithID("Item", id)
}

func (m *mockItemService) GetAll(ctx context.Context, limit int, offset int) ([]*model.Item, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return []*model.Item{}, 0, nil
}

func (m *mockItemService) Update(ctx context.Context, id string, updates *model.ItemUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return nil
}

func (m *mockItemService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.Discard()
}

func TestCreateItemHandler(t *testing.T) {
	var created *model.Item
	mockService := &mockItemService{
		createFunc: func(ctx context.Context, item *model.Item) error {
			item.ID = "68b1c2d3e4f5a6b7c8d9e0f1"
			created = item
			return nil
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	body := `{"name":"Seaside Apartment","price_per_unit":150,"currency":"EUR","config":{"max_nights":30,"max_units":1,"base_guests_per_unit":2,"select_checkout":true}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if created == nil || created.Name != "Seaside Apartment" {
		t.Errorf("expected the decoded item to reach the service, got %+v", created)
	}

	var response struct {
		Data model.Item `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.ID != "68b1c2d3e4f5a6b7c8d9e0f1" {
		t.Errorf("expected the generated ID in the response, got %q", response.Data.ID)
	}
}

func TestCreateItemHandler_BadBody(t *testing.T) {
	mockService := &mockItemService{
		createFunc: func(ctx context.Context, item *model.Item) error {
			t.Error("service must not be reached for a malformed body")
			return nil
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Create(w, req, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCreateItemHandler_ValidationFailure(t *testing.T) {
	mockService := &mockItemService{
		createFunc: func(ctx context.Context, item *model.Item) error {
			return apperrors.Validation("Item validation failed", map[string]any{
				"error": "Name is required",
			})
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"price_per_unit":150}`))
	w := httptest.NewRecorder()

	handler.Create(w, req, nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}

	var response httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, response.Code)
	}
}

func TestGetItemHandler(t *testing.T) {
	mockService := &mockItemService{
		getFunc: func(ctx context.Context, id string) (*model.Item, error) {
			return &model.Item{ID: id, Name: "Seaside Apartment", PricePerUnit: 150, Currency: "EUR"}, nil
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/68b1c2d3e4f5a6b7c8d9e0f1", nil)
	w := httptest.NewRecorder()

	handler.GetByID(w, req, httprouter.Params{{Key: "id", Value: "68b1c2d3e4f5a6b7c8d9e0f1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Data model.Item `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.Name != "Seaside Apartment" {
		t.Errorf("expected the item back, got %+v", response.Data)
	}
}

func TestGetItemHandler_NotFound(t *testing.T) {
	handler := NewItemHandler(&mockItemService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/unknown", nil)
	w := httptest.NewRecorder()

	handler.GetByID(w, req, httprouter.Params{{Key: "id", Value: "unknown"}})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateItemHandler(t *testing.T) {
	var gotID string
	var gotUpdates *model.ItemUpdate
	mockService := &mockItemService{
		updateFunc: func(ctx context.Context, id string, updates *model.ItemUpdate) error {
			gotID = id
			gotUpdates = updates
			return nil
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/items/68b1c2d3e4f5a6b7c8d9e0f1", strings.NewReader(`{"price_per_unit":185}`))
	w := httptest.NewRecorder()

	handler.Update(w, req, httprouter.Params{{Key: "id", Value: "68b1c2d3e4f5a6b7c8d9e0f1"}})

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if gotID != "68b1c2d3e4f5a6b7c8d9e0f1" {
		t.Errorf("expected the path ID to reach the service, got %q", gotID)
	}
	if gotUpdates == nil || gotUpdates.PricePerUnit == nil || *gotUpdates.PricePerUnit != 185 {
		t.Errorf("expected the partial update to pass through, got %+v", gotUpdates)
	}
}

func TestDeleteItemHandler(t *testing.T) {
	deleted := ""
	mockService := &mockItemService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	handler := NewItemHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/68b1c2d3e4f5a6b7c8d9e0f1", nil)
	w := httptest.NewRecorder()

	handler.Delete(w, req, httprouter.Params{{Key: "id", Value: "68b1c2d3e4f5a6b7c8d9e0f1"}})

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if deleted != "68b1c2d3e4f5a6b7c8d9e0f1" {
		t.Errorf("expected delete to reach the service, got %q", deleted)
	}
}
