package domain

import (
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"github.com/shopspring/decimal"
)

// ExpenseBreakdown holds one year's expense categories
type ExpenseBreakdown struct {
	Living     decimal.Decimal `json:"living"`
	Housing    decimal.Decimal `json:"housing"`
	Car        decimal.Decimal `json:"car"`
	Appliance  decimal.Decimal `json:"appliance"`
	Child      decimal.Decimal `json:"child"`
	Marriage   decimal.Decimal `json:"marriage"`
	Care       decimal.Decimal `json:"care"`
	Retirement decimal.Decimal `json:"retirement"`
}

// Total returns the sum of all eight categories
func (eb ExpenseBreakdown) Total() decimal.Decimal {
	return eb.Living.Add(eb.Housing).Add(eb.Car).Add(eb.Appliance).
		Add(eb.Child).Add(eb.Marriage).Add(eb.Care).Add(eb.Retirement)
}

// Rounded returns the breakdown with every category rounded to whole yen
func (eb ExpenseBreakdown) Rounded() ExpenseBreakdown {
	whole := func(d decimal.Decimal) decimal.Decimal { return yen.NewMoneyFromDecimal(d).Whole().Decimal }
	return ExpenseBreakdown{
		Living:     whole(eb.Living),
		Housing:    whole(eb.Housing),
		Car:        whole(eb.Car),
		Appliance:  whole(eb.Appliance),
		Child:      whole(eb.Child),
		Marriage:   whole(eb.Marriage),
		Care:       whole(eb.Care),
		Retirement: whole(eb.Retirement),
	}
}

// IncomeDetail splits a year's income by source
type IncomeDetail struct {
	Self       decimal.Decimal `json:"self"`
	Spouse     decimal.Decimal `json:"spouse"`
	Investment decimal.Decimal `json:"investment"`
}

// AssetAllocation is the end-of-year asset breakdown
type AssetAllocation struct {
	Cash       decimal.Decimal `json:"cash"`
	Investment decimal.Decimal `json:"investment"`
	NISA       decimal.Decimal `json:"nisa"`
	IDeCo      decimal.Decimal `json:"ideco"`
}

// YearRecord represents one simulated year of the household ledger.
// Money fields are rounded to whole yen.
type YearRecord struct {
	Age       int  `json:"age"`
	Year      int  `json:"year"`
	SpouseAge *int `json:"spouse_age,omitempty"`

	Income       decimal.Decimal `json:"income"`
	IncomeDetail IncomeDetail    `json:"income_detail"`
	ReturnRate   decimal.Decimal `json:"return_rate"` // realized portfolio return, unrounded

	Expenses     ExpenseBreakdown `json:"expenses"`
	TotalExpense decimal.Decimal  `json:"total_expense"`

	Savings           decimal.Decimal `json:"savings"`
	InvestedPrincipal decimal.Decimal `json:"invested_principal"`
	NISA              decimal.Decimal `json:"nisa"`
	IDeCo             decimal.Decimal `json:"ideco"`
	TotalAssets       decimal.Decimal `json:"total_assets"`

	AssetAllocation AssetAllocation `json:"asset_allocation"`
}

// IsRetired reports whether the record falls on or after the given retirement age
func (yr *YearRecord) IsRetired(retirementAge int) bool {
	return yr.Age >= retirementAge
}

// HasShortfall returns true if total assets are negative
func (yr *YearRecord) HasShortfall() bool {
	return yr.TotalAssets.IsNegative()
}

// SimulationRun is the ordered ledger produced by one simulation
type SimulationRun struct {
	ID        string           `json:"id"`
	Scenario  InterestScenario `json:"scenario"`
	Seed      int64            `json:"seed,omitempty"`
	StartYear int              `json:"start_year"`
	Records   []YearRecord     `json:"records"`
}

// Final returns the last record, or nil for an empty run
func (sr *SimulationRun) Final() *YearRecord {
	if len(sr.Records) == 0 {
		return nil
	}
	return &sr.Records[len(sr.Records)-1]
}

// FirstShortfall returns the first record whose total assets are negative, or nil
func (sr *SimulationRun) FirstShortfall() *YearRecord {
	for i := range sr.Records {
		if sr.Records[i].HasShortfall() {
			return &sr.Records[i]
		}
	}
	return nil
}

// MonteCarloResults represents the aggregate of a batch of stochastic runs
type MonteCarloResults struct {
	Simulations       []SimulationOutcome `json:"simulations"`
	SuccessRate       decimal.Decimal     `json:"success_rate"`
	BankruptcyRate    decimal.Decimal     `json:"bankruptcy_rate"`
	MedianFinalAssets decimal.Decimal     `json:"median_final_assets"`
	PercentileRanges  PercentileRanges    `json:"percentile_ranges"`
	NumSimulations    int                 `json:"num_simulations"`
	BaseSeed          int64               `json:"base_seed"`
	HorizonYears      int                 `json:"horizon_years"`
}

// SimulationOutcome represents a single Monte Carlo run
type SimulationOutcome struct {
	Seed              int64           `json:"seed"`
	FinalTotalAssets  decimal.Decimal `json:"final_total_assets"`
	Bankrupt          bool            `json:"bankrupt"`
	FirstShortfallAge *int            `json:"first_shortfall_age,omitempty"`
}

// PercentileRanges represents percentile ranges of final total assets
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}
