package output

import (
	"fmt"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Net income: simplified salary deduction, 15% social insurance, progressive income tax and 10% resident tax",
	"Tax schedule held constant for every projection year",
	"Investment return earned on principal held at the start of each year",
	"Emergency fund restored from invested principal when savings fall below the floor",
	"Amounts rounded to whole yen for display only",
}

// GenerateAssumptions creates the assumptions list from actual input values
func GenerateAssumptions(params *domain.InputParameters) []string {
	returnLine := fmt.Sprintf("Investment return: fixed %.2f%% every year", params.ExpectedReturn*100)
	if params.IsStochastic() {
		returnLine = fmt.Sprintf("Investment return: random around %.2f%% (seed %d, 5 asset classes, clipped at ±3σ)",
			params.ExpectedReturn*100, params.EffectiveSeed())
	}

	return []string{
		DefaultAssumptions[0],
		fmt.Sprintf("Salary growth: %.2f%% self, %.2f%% spouse; salaries stop at age %d",
			params.IncomeGrowthRate*100, params.SpouseIncomeGrowthRate*100, params.RetirementAge),
		returnLine,
		fmt.Sprintf("Pension from age %d: %s per month", params.PensionStartAge, FormatYen(yen.FromFloat(params.PensionMonthly))),
		fmt.Sprintf("Emergency fund floor: %s", FormatYen(yen.FromFloat(params.EmergencyFund))),
		DefaultAssumptions[1],
	}
}
