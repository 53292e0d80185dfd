// Package narrative produces the AI-CFO summary: four arrays of
// plain-language recommendations built from the assessment outputs.
// The generative backend is optional; when it is unreachable the engine
// degrades to rule-based recommendations derived from the metrics.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"finhealth/pkg/core/esg"
	"finhealth/pkg/core/fraud"
	"finhealth/pkg/core/investor"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/risk"
	"finhealth/pkg/core/utils"
	"finhealth/pkg/core/warning"
	"finhealth/pkg/models"
)

// Summary is the structured recommendation set returned to callers.
// AIUnavailable marks a rule-based fallback so the UI can label it.
type Summary struct {
	StrategicActions       []string `json:"strategic_actions"`
	CostOptimization       []string `json:"cost_optimization"`
	LiquidityImprovements  []string `json:"liquidity_improvements"`
	FundingRecommendations []string `json:"funding_recommendations"`
	AIUnavailable          bool     `json:"ai_unavailable,omitempty"`
	FallbackMessage        string   `json:"fallback_message,omitempty"`
}

// Input carries the upstream assessment outputs the narrative is
// grounded on.
type Input struct {
	Metrics    models.MetricSet
	Risk       risk.Result
	Investor   investor.Result
	ESG        esg.Result
	Warnings   []warning.Warning
	FraudFlags []fraud.Flag
	Language   string
}

type Engine struct {
	provider llm.Provider

	// Model overrides the provider's default model when non-empty.
	Model string
}

func NewEngine(provider llm.Provider) *Engine {
	return &Engine{provider: provider}
}

const systemPrompt = "You are an AI CFO for SMEs. You respond with ONLY valid JSON, no additional commentary."

// Generate asks the model for the four recommendation arrays. Any
// provider or parse failure is non-fatal: the caller always receives a
// well-formed Summary.
func (e *Engine) Generate(ctx context.Context, in Input) Summary {
	lang := strings.ToLower(in.Language)
	if lang != "en" && lang != "hi" {
		lang = "en"
	}

	if e.provider == nil {
		fmt.Println("[NARRATIVE] No provider configured, using rule-based fallback")
		return Fallback(in.Metrics, "AI recommendations are temporarily unavailable. Financial analysis and other features remain fully functional.")
	}

	prompt := buildPrompt(in, lang)

	options := map[string]interface{}{
		"response_format": "json",
	}
	if e.Model != "" {
		options["model"] = e.Model
	}

	raw, err := e.provider.GenerateResponse(ctx, prompt, systemPrompt, options)
	if err != nil {
		fmt.Printf("[NARRATIVE] Provider call failed: %v\n", err)
		return Fallback(in.Metrics, fallbackMessage(err))
	}

	return parseSummary(raw)
}

func buildPrompt(in Input, lang string) string {
	langInstruction := "Write recommendations in clear, simple English."
	if lang == "hi" {
		langInstruction = "Write recommendations in clear, simple Hindi (use Devanagari script)."
	}

	metricsJSON, _ := json.Marshal(in.Metrics)
	riskJSON, _ := json.Marshal(in.Risk)
	investorJSON, _ := json.Marshal(in.Investor)
	esgJSON, _ := json.Marshal(in.ESG)
	warningsJSON, _ := json.Marshal(in.Warnings)
	fraudJSON, _ := json.Marshal(in.FraudFlags)

	return fmt.Sprintf(`You are an AI CFO for SMEs.

Given the following data:
- Financial Metrics: %s
- Risk Analysis: %s
- Investor Readiness: %s
- ESG Score: %s
- Warnings: %s
- Fraud Flags: %s

Provide a structured JSON object with four arrays. %s
{
  "strategic_actions": [
    "High-level strategic recommendation 1",
    "High-level strategic recommendation 2"
  ],
  "cost_optimization": [
    "Concrete, finance-aware cost optimization idea"
  ],
  "liquidity_improvements": [
    "Action to improve short-term liquidity"
  ],
  "funding_recommendations": [
    "Recommendation on equity / debt / alternative funding"
  ]
}

Respond with ONLY valid JSON, no additional commentary.`,
		metricsJSON, riskJSON, investorJSON, esgJSON, warningsJSON, fraudJSON, langInstruction)
}

// parseSummary turns raw model output into a Summary. Models frequently
// wrap JSON in markdown fences or emit lightly broken JSON, so the text
// is fence-stripped and then run through the full parse chain (strict
// JSON, json-repair, hjson). If no strategy yields JSON, the text itself
// becomes a single strategic action rather than being discarded — but
// only when it is at least renderable markdown.
func parseSummary(raw string) Summary {
	cleaned := utils.CleanMarkdown(raw)

	var parsed map[string]interface{}
	if _, err := utils.SmartParse(cleaned, &parsed); err != nil {
		actions := []string{}
		if utils.ValidateMarkdown(cleaned) {
			actions = []string{cleaned}
		}
		return Summary{
			StrategicActions:       actions,
			CostOptimization:       []string{},
			LiquidityImprovements:  []string{},
			FundingRecommendations: []string{},
		}
	}

	return Summary{
		StrategicActions:       ensureList(parsed["strategic_actions"]),
		CostOptimization:       ensureList(parsed["cost_optimization"]),
		LiquidityImprovements:  ensureList(parsed["liquidity_improvements"]),
		FundingRecommendations: ensureList(parsed["funding_recommendations"]),
	}
}

// ensureList coerces whatever shape the model returned into []string.
func ensureList(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		return []string{v}
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

func fallbackMessage(err error) string {
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "429") || strings.Contains(errStr, "quota"):
		return "AI recommendations are temporarily unavailable due to API quota limits. " +
			"Please check your provider account billing or contact support. " +
			"Financial analysis and other features remain fully functional."
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "invalid") || strings.Contains(errStr, "authentication"):
		return "AI recommendations are unavailable due to API authentication issues. " +
			"Please verify your API key configuration."
	default:
		return "AI recommendations are temporarily unavailable. " +
			"Financial analysis and other features remain fully functional."
	}
}

// Fallback builds rule-based recommendations from the metrics alone.
// Thresholds: net margin below 5% flags profitability, current ratio
// below 1 flags liquidity, debt-to-equity above 2 flags leverage.
func Fallback(m models.MetricSet, message string) Summary {
	var strategic []string

	if m.NetMargin < 5 {
		strategic = append(strategic, "Focus on improving profitability margins through cost optimization or revenue growth.")
	}
	if m.CurrentRatio < 1 {
		strategic = append(strategic, "Address liquidity concerns by improving working capital management.")
	}
	if m.DebtToEquity > 2 {
		strategic = append(strategic, "Consider reducing leverage to improve financial stability.")
	}
	if len(strategic) == 0 {
		strategic = append(strategic, "Continue monitoring key financial metrics and maintain current operational efficiency.")
	}

	costOpt := []string{}
	if m.NetMargin < 10 {
		costOpt = append(costOpt, "Review expense categories for optimization opportunities.")
	}

	liquidity := []string{}
	if m.CurrentRatio < 1.5 {
		liquidity = append(liquidity, "Improve cash flow management and working capital efficiency.")
	}

	return Summary{
		StrategicActions:       strategic,
		CostOptimization:       costOpt,
		LiquidityImprovements:  liquidity,
		FundingRecommendations: []string{"Evaluate funding options based on current risk profile and growth needs."},
		AIUnavailable:          true,
		FallbackMessage:        message,
	}
}
