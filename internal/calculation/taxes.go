package calculation

import (
	"github.com/shopspring/decimal"
)

// NET INCOME ASSUMPTIONS:
//
// 1. Salary income deduction: six-band piecewise schedule applied to gross salary.
// 2. Social insurance: flat 15% of gross (health, pension and employment insurance combined).
// 3. Basic deduction: flat 480,000.
// 4. Income tax: seven progressive bands in "rate x taxable - quick deduction" form.
// 5. Resident tax: 10% of taxable income plus a 5,000 flat amount.
//
// The same schedule is used for every projection year; no indexing is applied.

// SalaryDeductionBand is one band of the salary income deduction.
// Deduction = gross * Rate + Offset for gross <= UpTo. A zero UpTo marks the open top band.
type SalaryDeductionBand struct {
	UpTo   decimal.Decimal
	Rate   decimal.Decimal
	Offset decimal.Decimal
}

// IncomeTaxBracket is one band of the progressive income tax.
// Tax = taxable * Rate - QuickDeduction for taxable <= UpTo. A zero UpTo marks the open top band.
type IncomeTaxBracket struct {
	UpTo           decimal.Decimal
	Rate           decimal.Decimal
	QuickDeduction decimal.Decimal
}

// TaxSchedule holds every constant used by the net income conversion
type TaxSchedule struct {
	SalaryDeductionBands []SalaryDeductionBand
	SocialInsuranceRate  decimal.Decimal
	BasicDeduction       decimal.Decimal
	IncomeTaxBrackets    []IncomeTaxBracket
	ResidentTaxRate      decimal.Decimal
	ResidentTaxFlat      decimal.Decimal
}

// DefaultTaxSchedule returns the simplified fixed-bracket schedule
func DefaultTaxSchedule() TaxSchedule {
	return TaxSchedule{
		SalaryDeductionBands: []SalaryDeductionBand{
			{decimal.NewFromInt(1625000), decimal.Zero, decimal.NewFromInt(550000)},
			{decimal.NewFromInt(1800000), decimal.NewFromFloat(0.4), decimal.NewFromInt(-100000)},
			{decimal.NewFromInt(3600000), decimal.NewFromFloat(0.3), decimal.NewFromInt(80000)},
			{decimal.NewFromInt(6600000), decimal.NewFromFloat(0.2), decimal.NewFromInt(440000)},
			{decimal.NewFromInt(8500000), decimal.NewFromFloat(0.1), decimal.NewFromInt(1100000)},
			{decimal.Zero, decimal.Zero, decimal.NewFromInt(1950000)},
		},
		SocialInsuranceRate: decimal.NewFromFloat(0.15),
		BasicDeduction:      decimal.NewFromInt(480000),
		IncomeTaxBrackets: []IncomeTaxBracket{
			{decimal.NewFromInt(1950000), decimal.NewFromFloat(0.05), decimal.Zero},
			{decimal.NewFromInt(3300000), decimal.NewFromFloat(0.10), decimal.NewFromInt(97500)},
			{decimal.NewFromInt(6950000), decimal.NewFromFloat(0.20), decimal.NewFromInt(427500)},
			{decimal.NewFromInt(9000000), decimal.NewFromFloat(0.23), decimal.NewFromInt(636000)},
			{decimal.NewFromInt(18000000), decimal.NewFromFloat(0.33), decimal.NewFromInt(1536000)},
			{decimal.NewFromInt(40000000), decimal.NewFromFloat(0.40), decimal.NewFromInt(2796000)},
			{decimal.Zero, decimal.NewFromFloat(0.45), decimal.NewFromInt(4796000)},
		},
		ResidentTaxRate: decimal.NewFromFloat(0.10),
		ResidentTaxFlat: decimal.NewFromInt(5000),
	}
}

// SalaryIncomeDeduction returns the salary income deduction for a gross income
func (ts TaxSchedule) SalaryIncomeDeduction(gross decimal.Decimal) decimal.Decimal {
	for _, band := range ts.SalaryDeductionBands {
		if band.UpTo.IsZero() || gross.LessThanOrEqual(band.UpTo) {
			return gross.Mul(band.Rate).Add(band.Offset)
		}
	}
	return decimal.Zero
}

// IncomeTax returns the progressive income tax on a taxable amount
func (ts TaxSchedule) IncomeTax(taxable decimal.Decimal) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}
	for _, bracket := range ts.IncomeTaxBrackets {
		if bracket.UpTo.IsZero() || taxable.LessThanOrEqual(bracket.UpTo) {
			return taxable.Mul(bracket.Rate).Sub(bracket.QuickDeduction)
		}
	}
	return decimal.Zero
}

// NetIncomeBreakdown shows every step of one gross to net conversion
type NetIncomeBreakdown struct {
	Gross           decimal.Decimal
	SalaryDeduction decimal.Decimal
	SocialInsurance decimal.Decimal
	BasicDeduction  decimal.Decimal
	TaxableIncome   decimal.Decimal
	IncomeTax       decimal.Decimal
	ResidentTax     decimal.Decimal
	Net             decimal.Decimal
}

// NetIncomeCalculator converts gross annual salary to take-home income
type NetIncomeCalculator struct {
	Schedule TaxSchedule
	Logger   Logger
}

// NewNetIncomeCalculator creates a calculator using the default schedule
func NewNetIncomeCalculator(logger Logger) *NetIncomeCalculator {
	return NewNetIncomeCalculatorWithSchedule(DefaultTaxSchedule(), logger)
}

// NewNetIncomeCalculatorWithSchedule creates a calculator with a custom schedule
func NewNetIncomeCalculatorWithSchedule(schedule TaxSchedule, logger Logger) *NetIncomeCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &NetIncomeCalculator{
		Schedule: schedule,
		Logger:   logger,
	}
}

// Breakdown computes the full conversion. Negative gross is treated as zero.
func (nic *NetIncomeCalculator) Breakdown(gross decimal.Decimal) NetIncomeBreakdown {
	if gross.IsNegative() {
		gross = decimal.Zero
	}
	ts := nic.Schedule

	salaryDeduction := ts.SalaryIncomeDeduction(gross)
	socialInsurance := gross.Mul(ts.SocialInsuranceRate)

	taxable := gross.Sub(salaryDeduction).Sub(socialInsurance).Sub(ts.BasicDeduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	incomeTax := ts.IncomeTax(taxable)
	residentTax := taxable.Mul(ts.ResidentTaxRate).Add(ts.ResidentTaxFlat)

	net := gross.Sub(socialInsurance).Sub(incomeTax).Sub(residentTax)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return NetIncomeBreakdown{
		Gross:           gross,
		SalaryDeduction: salaryDeduction,
		SocialInsurance: socialInsurance,
		BasicDeduction:  ts.BasicDeduction,
		TaxableIncome:   taxable,
		IncomeTax:       incomeTax,
		ResidentTax:     residentTax,
		Net:             net,
	}
}

// NetAnnual returns the net annual income for a gross annual income
func (nic *NetIncomeCalculator) NetAnnual(gross decimal.Decimal) decimal.Decimal {
	return nic.Breakdown(gross).Net
}

// LogBreakdown writes a conversion breakdown at debug level
func (nic *NetIncomeCalculator) LogBreakdown(label string, b NetIncomeBreakdown) {
	nic.Logger.Debugf("NET INCOME BREAKDOWN (%s):", label)
	nic.Logger.Debugf("  Gross income:          %s", b.Gross.StringFixed(0))
	nic.Logger.Debugf("  Salary deduction:      %s", b.SalaryDeduction.StringFixed(0))
	nic.Logger.Debugf("  Social insurance:      %s", b.SocialInsurance.StringFixed(0))
	nic.Logger.Debugf("  Basic deduction:       %s", b.BasicDeduction.StringFixed(0))
	nic.Logger.Debugf("  Taxable income:        %s", b.TaxableIncome.StringFixed(0))
	nic.Logger.Debugf("  Income tax:            %s", b.IncomeTax.StringFixed(0))
	nic.Logger.Debugf("  Resident tax:          %s", b.ResidentTax.StringFixed(0))
	nic.Logger.Debugf("  Net income:            %s", b.Net.StringFixed(0))
}
