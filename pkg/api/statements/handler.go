// Package statements exposes financial statement ingestion and history.
package statements

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"finhealth/pkg/models"
)

// RecordStore is the persistence surface this handler needs. Satisfied
// by *store.StatementRepo.
type RecordStore interface {
	SaveRecord(ctx context.Context, rec models.FinancialRecord) (models.FinancialRecord, error)
	ListRecords(ctx context.Context, businessID int64) ([]models.FinancialRecord, error)
}

var repo RecordStore

func InitHandler(r RecordStore) {
	repo = r
}

// HandleStatements serves POST (ingest one statement) and GET
// (chronological history for ?business_id=N).
func HandleStatements(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodPost:
		handleIngest(w, r)
	case http.MethodGet:
		handleHistory(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleIngest(w http.ResponseWriter, r *http.Request) {
	var rec models.FinancialRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if rec.BusinessID == 0 {
		http.Error(w, "business_id is required", http.StatusBadRequest)
		return
	}
	if rec.Date.IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	saved, err := repo.SaveRecord(r.Context(), rec)
	if err != nil {
		fmt.Printf("[API] Failed to save statement for business %d: %v\n", rec.BusinessID, err)
		http.Error(w, fmt.Sprintf("failed to save statement: %v", err), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[API] Ingested statement %d for business %d\n", saved.ID, saved.BusinessID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

func handleHistory(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(r.URL.Query().Get("business_id"), 10, 64)
	if err != nil || businessID <= 0 {
		http.Error(w, "business_id query parameter is required", http.StatusBadRequest)
		return
	}

	records, err := repo.ListRecords(r.Context(), businessID)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list statements: %v", err), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.FinancialRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
