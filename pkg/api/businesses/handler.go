// Package businesses exposes SME profile creation and listing.
package businesses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"finhealth/pkg/models"
)

// BusinessStore is satisfied by *store.BusinessRepo.
type BusinessStore interface {
	CreateBusiness(ctx context.Context, b models.Business) (models.Business, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)
}

var repo BusinessStore

func InitHandler(r BusinessStore) {
	repo = r
}

// HandleBusinesses serves POST (create) and GET (list).
func HandleBusinesses(w http.ResponseWriter, r *http.Request) {
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
		handleCreate(w, r)
	case http.MethodGet:
		handleList(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var b models.Business
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(b.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(b.Industry) == "" {
		http.Error(w, "industry is required", http.StatusBadRequest)
		return
	}

	created, err := repo.CreateBusiness(r.Context(), b)
	if err != nil {
		fmt.Printf("[API] Failed to create business %q: %v\n", b.Name, err)
		http.Error(w, fmt.Sprintf("failed to create business: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func handleList(w http.ResponseWriter, r *http.Request) {
	list, err := repo.ListBusinesses(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list businesses: %v", err), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Business{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
