package config

import (
	"fmt"
	"strings"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
)

// Enum values accept the English names and the Japanese labels used by the web form.
var (
	expenseModeAliases = map[string]domain.ExpenseMode{
		"":         domain.ExpenseModeSimple,
		"simple":   domain.ExpenseModeSimple,
		"detailed": domain.ExpenseModeDetailed,
		"簡単":       domain.ExpenseModeSimple,
		"詳細":       domain.ExpenseModeDetailed,
	}

	interestScenarioAliases = map[string]domain.InterestScenario{
		"":           domain.InterestScenarioFixed,
		"fixed":      domain.InterestScenarioFixed,
		"stochastic": domain.InterestScenarioStochastic,
		"random":     domain.InterestScenarioStochastic,
		"固定利回り":      domain.InterestScenarioFixed,
		"ランダム変動":     domain.InterestScenarioStochastic,
	}

	loanTypeAliases = map[string]domain.LoanType{
		"":         domain.LoanTypeGeneral,
		"general":  domain.LoanTypeGeneral,
		"bank":     domain.LoanTypeBank,
		"dealer":   domain.LoanTypeDealer,
		"銀行ローン":    domain.LoanTypeBank,
		"ディーラーローン": domain.LoanTypeDealer,
	}

	housingTypeAliases = map[string]domain.HousingType{
		"":                domain.HousingTypeRent,
		"rent":            domain.HousingTypeRent,
		"owned_with_loan": domain.HousingTypeOwnedLoan,
		"owned_paid_off":  domain.HousingTypeOwnedPaidOff,
		"賃貸":              domain.HousingTypeRent,
		"持ち家（ローン中）":       domain.HousingTypeOwnedLoan,
		"持ち家(ローン中)":       domain.HousingTypeOwnedLoan,
		"持ち家（完済）":         domain.HousingTypeOwnedPaidOff,
		"持ち家(完済)":         domain.HousingTypeOwnedPaidOff,
	}

	educationPatternAliases = map[string]domain.EducationPattern{
		"":        domain.EducationPublic,
		"public":  domain.EducationPublic,
		"mixed":   domain.EducationMixed,
		"private": domain.EducationPrivate,
		"公立中心":    domain.EducationPublic,
		"公私混合":    domain.EducationMixed,
		"私立中心":    domain.EducationPrivate,
	}
)

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ParseExpenseMode resolves an expense mode name or label
func ParseExpenseMode(value string) (domain.ExpenseMode, error) {
	if mode, ok := expenseModeAliases[normalizeKey(value)]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("unknown expense mode %q", value)
}

// ParseInterestScenario resolves an interest scenario name or label
func ParseInterestScenario(value string) (domain.InterestScenario, error) {
	if scenario, ok := interestScenarioAliases[normalizeKey(value)]; ok {
		return scenario, nil
	}
	return "", fmt.Errorf("unknown interest scenario %q", value)
}

// ParseLoanType resolves a car loan type name or label
func ParseLoanType(value string) (domain.LoanType, error) {
	if loanType, ok := loanTypeAliases[normalizeKey(value)]; ok {
		return loanType, nil
	}
	return "", fmt.Errorf("unknown loan type %q", value)
}

// ParseHousingType resolves a housing type name or label
func ParseHousingType(value string) (domain.HousingType, error) {
	if housingType, ok := housingTypeAliases[normalizeKey(value)]; ok {
		return housingType, nil
	}
	return "", fmt.Errorf("unknown housing type %q", value)
}

// ParseEducationPattern resolves an education pattern name or label
func ParseEducationPattern(value string) (domain.EducationPattern, error) {
	if pattern, ok := educationPatternAliases[normalizeKey(value)]; ok {
		return pattern, nil
	}
	return "", fmt.Errorf("unknown education pattern %q", value)
}
