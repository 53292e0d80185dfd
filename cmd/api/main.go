package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"finhealth/pkg/api/analyze"
	"finhealth/pkg/api/businesses"
	"finhealth/pkg/api/statements"
	"finhealth/pkg/core/config"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/narrative"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/finhealth.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Config load failed, using defaults: %v\n", err)
	}

	// Database
	ctx := context.Background()
	pool, err := store.Connect(ctx)
	if err != nil {
		fmt.Printf("[FATAL] Database connect failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	businessRepo := store.NewBusinessRepo(pool)
	statementRepo := store.NewStatementRepo(pool)
	assessmentRepo := store.NewAssessmentRepo(pool)

	// Pipeline with the configured narrative provider
	provider := llm.NewProvider(cfg.LLM.Provider)
	narrator := narrative.NewEngine(provider)
	narrator.Model = cfg.LLM.Model
	orchestrator := pipeline.NewOrchestrator(narrator)

	// Handlers
	businesses.InitHandler(businessRepo)
	statements.InitHandler(statementRepo)
	analyze.InitHandler(orchestrator, statementRepo, businessRepo, assessmentRepo, cfg.Assessment)

	http.HandleFunc("/api/businesses", businesses.HandleBusinesses)
	http.HandleFunc("/api/statements", statements.HandleStatements)
	http.HandleFunc("/api/analyze", analyze.HandleAnalyze)

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr)
	fmt.Println("  - GET/POST /api/businesses")
	fmt.Println("  - GET/POST /api/statements")
	fmt.Println("  - POST     /api/analyze  (?business_id=N&horizon=3-6&lang=en|hi)")

	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
