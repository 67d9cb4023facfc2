package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "rezkit/pkg/errors"
	httputil "rezkit/pkg/http"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

type mockRecordService struct {
	createFunc func(ctx context.Context, record *model.BookingRecord) error
	getRefFunc func(ctx context.Context, reference string) (*model.BookingRecord, error)
	getAllFunc func(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, int64, error)
}

func (m *mockRecordService) Create(ctx context.Context, record *model.BookingRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return nil
}

func (m *mockRecordService) GetByReference(ctx context.Context, reference string) (*model.BookingRecord, error) {
	if m.getRefFunc != nil {
		return m.getRefFunc(ctx, reference)
	}
	return nil, apperrors.NotFoundWithID("Booking record", reference)
}

func (m *mockRecordService) GetAll(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, filter)
	}
	return []*model.BookingRecord{}, 0, nil
}

func testLogger() *logger.Logger {
	return logger.Discard()
}

func sampleRecord() *model.BookingRecord {
	checkOut := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)
	return &model.BookingRecord{
		Reference: "a6e5b0d2-7c4f-4f7a-9b1e-2f3a4b5c6d7e",
		ItemID:    "item-1",
		ItemName:  "Seaside Apartment",
		CheckIn:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  &checkOut,
		Nights:    2,
		Guests:    2,
		Units:     1,
		Total:     "300.00",
		Currency:  "EUR",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}

func TestGetAllRecords(t *testing.T) {
	var gotFilter model.RecordFilter
	mockService := &mockRecordService{
		getAllFunc: func(ctx context.Context, filter model.RecordFilter) ([]*model.BookingRecord, int64, error) {
			gotFilter = filter
			return []*model.BookingRecord{sampleRecord()}, 7, nil
		},
	}

	handler := NewRecordHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=10&offset=5&item_id=item-1&email=ada@example.com&from=2026-02-01&to=2026-03-01", nil)
	w := httptest.NewRecorder()

	handler.GetAll(w, req, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotFilter.ItemID != "item-1" || gotFilter.Email != "ada@example.com" {
		t.Errorf("expected item and email filters to pass through, got %+v", gotFilter)
	}
	if gotFilter.Limit != 10 || gotFilter.Offset != 5 {
		t.Errorf("expected limit 10 offset 5, got limit %d offset %d", gotFilter.Limit, gotFilter.Offset)
	}
	if gotFilter.From == nil || !gotFilter.From.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected from 2026-02-01, got %v", gotFilter.From)
	}
	if gotFilter.To == nil || !gotFilter.To.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected to 2026-03-01, got %v", gotFilter.To)
	}

	var response struct {
		Data       []*model.BookingRecord `json:"data"`
		TotalCount int64                  `json:"total_count"`
		Limit      int                    `json:"limit"`
		Offset     int64                  `json:"offset"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.TotalCount != 7 {
		t.Errorf("expected total count 7, got %d", response.TotalCount)
	}
	if len(response.Data) != 1 || response.Data[0].Reference != "a6e5b0d2-7c4f-4f7a-9b1e-2f3a4b5c6d7e" {
		t.Errorf("expected the sample record back, got %+v", response.Data)
	}
}

func TestGetAllRecords_BadQuery(t *testing.T) {
	handler := NewRecordHandler(&mockRecordService{}, testLogger())

	tests := []struct {
		name string
		url  string
	}{
		{"limit not a number", "/api/v1/bookings?limit=ten"},
		{"offset not a number", "/api/v1/bookings?offset=x"},
		{"from not a date", "/api/v1/bookings?from=February"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req, nil)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetRecordByReference(t *testing.T) {
	mockService := &mockRecordService{
		getRefFunc: func(ctx context.Context, reference string) (*model.BookingRecord, error) {
			record := sampleRecord()
			record.Reference = reference
			return record, nil
		},
	}

	handler := NewRecordHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/a6e5b0d2-7c4f-4f7a-9b1e-2f3a4b5c6d7e", nil)
	w := httptest.NewRecorder()

	handler.GetByReference(w, req, httprouter.Params{{Key: "reference", Value: "a6e5b0d2-7c4f-4f7a-9b1e-2f3a4b5c6d7e"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Data model.BookingRecord `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.Total != "300.00" || response.Data.Currency != "EUR" {
		t.Errorf("expected the stored amounts back, got %+v", response.Data)
	}
}

func TestGetRecordByReference_NotFound(t *testing.T) {
	handler := NewRecordHandler(&mockRecordService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/unknown", nil)
	w := httptest.NewRecorder()

	handler.GetByReference(w, req, httprouter.Params{{Key: "reference", Value: "unknown"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}

	var response httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, response.Code)
	}
}
