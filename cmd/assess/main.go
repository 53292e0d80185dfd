package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"finhealth/pkg/core/config"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/narrative"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/store"
)

// One-shot assessment: load a business's statements from the database,
// run the full pipeline and print the consolidated JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	// Config first so its assessment defaults seed the flag defaults.
	cfg, err := config.Load("config/finhealth.yaml")
	if err != nil {
		log.Printf("Warning: config load failed, using defaults: %v", err)
	}

	businessID := flag.Int64("business", 0, "business ID to assess (required)")
	horizon := flag.Int("horizon", cfg.Assessment.HorizonMonths, "forecast horizon in months (3-6)")
	lang := flag.String("lang", cfg.Assessment.DefaultLanguage, "narrative language (en|hi)")
	noNarrative := flag.Bool("no-narrative", false, "skip the AI narrative section")
	flag.Parse()

	if *businessID <= 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *horizon < 3 || *horizon > 6 {
		log.Fatal("Error: horizon must be between 3 and 6 months.")
	}

	ctx := context.Background()
	pool, err := store.Connect(ctx)
	if err != nil {
		log.Fatalf("Error: database connect failed: %v", err)
	}
	defer pool.Close()

	businessRepo := store.NewBusinessRepo(pool)
	statementRepo := store.NewStatementRepo(pool)
	assessmentRepo := store.NewAssessmentRepo(pool)

	business, err := businessRepo.GetBusiness(ctx, *businessID)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if business.Industry == "" {
		business.Industry = cfg.Assessment.DefaultIndustry
	}
	records, err := statementRepo.ListRecords(ctx, *businessID)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("Error: no financial statements on file for business %d.", *businessID)
	}

	trend, err := assessmentRepo.RiskScoreHistory(ctx, *businessID, 6)
	if err != nil {
		fmt.Printf("[ASSESS] Warning: risk trend unavailable: %v\n", err)
	}
	gst, err := statementRepo.LatestGSTFiling(ctx, *businessID)
	if err != nil {
		fmt.Printf("[ASSESS] Warning: GST filing unavailable: %v\n", err)
	}

	var narrator pipeline.Narrator
	if !*noNarrative {
		eng := narrative.NewEngine(llm.NewProvider(cfg.LLM.Provider))
		eng.Model = cfg.LLM.Model
		narrator = eng
	}
	orchestrator := pipeline.NewOrchestrator(narrator)

	fmt.Printf("[ASSESS] %s (%s): %d statements, horizon %d months\n",
		business.Name, business.Industry, len(records), *horizon)

	assessment, err := orchestrator.Run(ctx, pipeline.Input{
		BusinessID:    *businessID,
		Records:       records,
		Industry:      business.Industry,
		HorizonMonths: *horizon,
		RiskTrend:     trend,
		GST:           gst,
		Language:      *lang,
	})
	if err != nil {
		log.Fatalf("Error: assessment failed: %v", err)
	}

	if err := assessmentRepo.SaveAssessment(ctx, assessment.AssessmentID, *businessID, assessment); err != nil {
		fmt.Printf("[ASSESS] Warning: failed to persist assessment: %v\n", err)
	}

	out, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		log.Fatalf("Error: failed to encode assessment: %v", err)
	}
	fmt.Println(string(out))
}
