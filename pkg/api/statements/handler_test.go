package statements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finhealth/pkg/models"
)

type stubStore struct {
	saved   []models.FinancialRecord
	listing []models.FinancialRecord
}

func (s *stubStore) SaveRecord(ctx context.Context, rec models.FinancialRecord) (models.FinancialRecord, error) {
	rec.ID = int64(len(s.saved) + 1)
	s.saved = append(s.saved, rec)
	return rec, nil
}

func (s *stubStore) ListRecords(ctx context.Context, businessID int64) ([]models.FinancialRecord, error) {
	return s.listing, nil
}

func TestHandleStatementsIngest(t *testing.T) {
	store := &stubStore{}
	InitHandler(store)

	body := `{"business_id": 3, "revenue": 100000, "expenses": 80000, "assets": 200000, "liabilities": 90000, "receivables": 20000, "payables": 15000, "date": "2025-06-15T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/statements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleStatements(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got models.FinancialRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 1 || got.Revenue != 100000 {
		t.Errorf("unexpected saved record: %+v", got)
	}
	if len(store.saved) != 1 {
		t.Errorf("store received %d records", len(store.saved))
	}
}

func TestHandleStatementsIngestValidation(t *testing.T) {
	InitHandler(&stubStore{})

	cases := []struct {
		name string
		body string
	}{
		{"missing business id", `{"revenue": 100, "date": "2025-06-15T00:00:00Z"}`},
		{"missing date", `{"business_id": 3, "revenue": 100}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/statements", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		HandleStatements(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestHandleStatementsHistory(t *testing.T) {
	store := &stubStore{
		listing: []models.FinancialRecord{
			{ID: 1, BusinessID: 3, Revenue: 90000, Date: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)},
			{ID: 2, BusinessID: 3, Revenue: 100000, Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
	InitHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/statements?business_id=3", nil)
	rec := httptest.NewRecorder()
	HandleStatements(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []models.FinancialRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d records, want 2", len(got))
	}
}

func TestHandleStatementsHistoryMissingBusinessID(t *testing.T) {
	InitHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/statements", nil)
	rec := httptest.NewRecorder()
	HandleStatements(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStatementsEmptyHistoryIsArray(t *testing.T) {
	InitHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/statements?business_id=9", nil)
	rec := httptest.NewRecorder()
	HandleStatements(rec, req)

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty history must encode as [], got %q", rec.Body.String())
	}
}
