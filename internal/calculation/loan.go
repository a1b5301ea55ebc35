package calculation

import (
	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"github.com/shopspring/decimal"
)

var percentPerMonthly = decimal.NewFromInt(1200)

// Car loan rates in annual percent
var (
	carLoanRateBank    = decimal.NewFromFloat(1.5)
	carLoanRateDealer  = decimal.NewFromFloat(4.5)
	carLoanRateGeneral = decimal.NewFromFloat(2.5)
)

// CarLoanRatePercent returns the annual rate for a car loan type.
// Unknown types get the general rate.
func CarLoanRatePercent(loanType domain.LoanType) decimal.Decimal {
	switch loanType {
	case domain.LoanTypeBank:
		return carLoanRateBank
	case domain.LoanTypeDealer:
		return carLoanRateDealer
	default:
		return carLoanRateGeneral
	}
}

// MonthlyLoanPayment returns the level monthly payment of a fully amortizing loan.
// A zero rate repays the principal in equal installments.
func MonthlyLoanPayment(principal, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if !principal.IsPositive() || annualRatePercent.IsNegative() || years <= 0 {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(years) * 12)
	if annualRatePercent.IsZero() {
		return principal.Div(months)
	}

	monthlyRate := annualRatePercent.Div(percentPerMonthly)
	growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(months)

	// P * r * (1+r)^n / ((1+r)^n - 1)
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// AnnualLoanPayment returns twelve months of the level payment.
// principal <= 0, a negative rate or years <= 0 yield zero; a zero rate yields principal / years.
func AnnualLoanPayment(principal, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if !principal.IsPositive() || annualRatePercent.IsNegative() || years <= 0 {
		return decimal.Zero
	}
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(years)))
	}
	return annualize(MonthlyLoanPayment(principal, annualRatePercent, years))
}

// annualize converts a monthly amount to twelve months
func annualize(monthly decimal.Decimal) decimal.Decimal {
	return yen.NewMoneyFromDecimal(monthly).Annual().Decimal
}
