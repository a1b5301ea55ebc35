package output

import (
	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// RunSummary condenses a simulation run into the headline figures shown in reports.
type RunSummary struct {
	Years              int
	FinalAge           int
	FinalTotalAssets   decimal.Decimal
	PeakTotalAssets    decimal.Decimal
	PeakAge            int
	AssetsAtRetirement decimal.Decimal
	ReachesRetirement  bool
	RetiredYears       int
	FirstShortfallAge  *int
	LifetimeIncome     decimal.Decimal
	LifetimeExpense    decimal.Decimal
	LargestCategory    string
	LargestCategorySum decimal.Decimal
}

// AnalyzeRun summarizes a run. Assets at retirement are the end-of-year total of the
// last working year (the year before retirementAge). A retirementAge of 0 means unknown.
func AnalyzeRun(run *domain.SimulationRun, retirementAge int) RunSummary {
	var s RunSummary
	if run == nil || len(run.Records) == 0 {
		return s
	}

	s.Years = len(run.Records)
	final := run.Final()
	s.FinalAge = final.Age
	s.FinalTotalAssets = final.TotalAssets

	categoryTotals := make([]decimal.Decimal, len(ExpenseCategoryNames))
	for i, r := range run.Records {
		if i == 0 || r.TotalAssets.GreaterThan(s.PeakTotalAssets) {
			s.PeakTotalAssets = r.TotalAssets
			s.PeakAge = r.Age
		}
		if r.Age == retirementAge-1 {
			s.AssetsAtRetirement = r.TotalAssets
			s.ReachesRetirement = true
		}
		if retirementAge > 0 && r.IsRetired(retirementAge) {
			s.RetiredYears++
		}
		s.LifetimeIncome = s.LifetimeIncome.Add(r.Income)
		s.LifetimeExpense = s.LifetimeExpense.Add(r.TotalExpense)
		for c, amount := range ExpenseCategories(r.Expenses) {
			categoryTotals[c] = categoryTotals[c].Add(amount)
		}
	}

	for c, total := range categoryTotals {
		if total.GreaterThan(s.LargestCategorySum) {
			s.LargestCategory = ExpenseCategoryNames[c]
			s.LargestCategorySum = total
		}
	}

	if shortfall := run.FirstShortfall(); shortfall != nil {
		age := shortfall.Age
		s.FirstShortfallAge = &age
	}
	return s
}

// ExpenseCategoryNames lists expense categories in report order.
var ExpenseCategoryNames = []string{"living", "housing", "car", "appliance", "child", "marriage", "care", "retirement"}

// ExpenseCategories returns the breakdown in ExpenseCategoryNames order.
func ExpenseCategories(eb domain.ExpenseBreakdown) []decimal.Decimal {
	return []decimal.Decimal{eb.Living, eb.Housing, eb.Car, eb.Appliance, eb.Child, eb.Marriage, eb.Care, eb.Retirement}
}
