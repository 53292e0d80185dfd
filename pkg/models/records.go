// Package models defines the shared data types that flow through the
// financial health pipeline. Records are plain value types: the engines
// never mutate their inputs and carry no behavior beyond construction.
package models

import "time"

// Business identifies an SME being assessed. Industry drives the
// benchmarking tables (free text, normalized case-insensitively).
type Business struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	OwnerID   int64     `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FinancialRecord is one point-in-time financial statement for a business.
// Inventory and Debt are optional on submission and default to zero.
// Immutable once ingested: the pipeline reads it, never writes it.
type FinancialRecord struct {
	ID         int64 `json:"id,omitempty"`
	BusinessID int64 `json:"business_id,omitempty"`

	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	Receivables float64 `json:"receivables"`
	Payables    float64 `json:"payables"`
	Inventory   float64 `json:"inventory,omitempty"`
	Debt        float64 `json:"debt,omitempty"`

	Date time.Time `json:"date"`
}

// Equity is the book-value proxy (assets - liabilities) used by several
// engines. Kept here so every consumer computes it the same way.
func (r FinancialRecord) Equity() float64 {
	return r.Assets - r.Liabilities
}

// GSTData holds normalized GST figures for one period. All fields default
// to zero when no GST filing has been ingested; the compliance engine is
// defined for that case.
type GSTData struct {
	Collected   float64 `json:"gst_collected"`
	Paid        float64 `json:"gst_paid"`
	InputCredit float64 `json:"input_credit"`
	OutputTax   float64 `json:"output_tax"`
}

// MetricSet is the normalized ratio set derived from one FinancialRecord.
// Every ratio follows the safe-division convention: a denominator <= 0
// yields exactly 0, never NaN/Inf. Downstream engines rely on that.
type MetricSet struct {
	// Profitability
	GrossMargin    float64 `json:"gross_margin"`
	NetMargin      float64 `json:"net_margin"`
	OperatingRatio float64 `json:"operating_ratio"`

	// Liquidity
	CurrentRatio   float64 `json:"current_ratio"`
	QuickRatio     float64 `json:"quick_ratio"`
	WorkingCapital float64 `json:"working_capital"`

	// Leverage & debt
	DebtToEquity        float64 `json:"debt_to_equity"`
	LoanBalance         float64 `json:"loan_balance"`
	DebtServicingRatio  float64 `json:"debt_servicing_ratio"`
	InterestBurdenRatio float64 `json:"interest_burden_ratio"`

	// Efficiency
	ReceivableDays    float64 `json:"receivable_days"`
	PayableDays       float64 `json:"payable_days"`
	InventoryTurnover float64 `json:"inventory_turnover"`

	// Returns
	ReturnOnAssets float64 `json:"return_on_assets"`

	// Original sign of revenue before the >=0 clamp applied to ratio bases.
	NegativeRevenue bool `json:"negative_revenue_flag"`
}
