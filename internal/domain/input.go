package domain

import (
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"github.com/shopspring/decimal"
)

// ExpenseMode selects how the base living expense is entered
type ExpenseMode string

const (
	ExpenseModeSimple   ExpenseMode = "simple"
	ExpenseModeDetailed ExpenseMode = "detailed"
)

// InterestScenario selects how the yearly investment return is realized
type InterestScenario string

const (
	InterestScenarioFixed      InterestScenario = "fixed"
	InterestScenarioStochastic InterestScenario = "stochastic"
)

// LoanType selects the interest rate applied to a car loan
type LoanType string

const (
	LoanTypeGeneral LoanType = "general"
	LoanTypeBank    LoanType = "bank"
	LoanTypeDealer  LoanType = "dealer"
)

// HousingType describes the household's current residence
type HousingType string

const (
	HousingTypeRent         HousingType = "rent"
	HousingTypeOwnedLoan    HousingType = "owned_with_loan"
	HousingTypeOwnedPaidOff HousingType = "owned_paid_off"
)

// EducationPattern is the schooling tier used to size child education cost
type EducationPattern string

const (
	EducationPublic  EducationPattern = "public"
	EducationMixed   EducationPattern = "mixed"
	EducationPrivate EducationPattern = "private"
)

// DefaultSeed is used for stochastic runs when no seed is supplied
const DefaultSeed int64 = 123456789

// InputParameters is the immutable snapshot a simulation run is computed from.
// All currency amounts are in base yen; large-unit conversion happens before this point.
type InputParameters struct {
	InitialAge       int `yaml:"initial_age" json:"initial_age"`
	SpouseInitialAge int `yaml:"spouse_initial_age,omitempty" json:"spouse_initial_age,omitempty"`
	EndAge           int `yaml:"end_age" json:"end_age"`
	RetirementAge    int `yaml:"retirement_age" json:"retirement_age"`
	PensionStartAge  int `yaml:"pension_start_age" json:"pension_start_age"`
	StartYear        int `yaml:"start_year,omitempty" json:"start_year,omitempty"` // 0 = current calendar year

	// Income (gross, annual)
	MainJobIncomeGross       float64 `yaml:"main_job_income_gross" json:"main_job_income_gross"`
	SideJobIncomeGross       float64 `yaml:"side_job_income_gross" json:"side_job_income_gross"`
	SpouseMainJobIncomeGross float64 `yaml:"spouse_main_job_income_gross" json:"spouse_main_job_income_gross"`
	SpouseSideJobIncomeGross float64 `yaml:"spouse_side_job_income_gross" json:"spouse_side_job_income_gross"`
	IncomeGrowthRate         float64 `yaml:"income_growth_rate" json:"income_growth_rate"`
	SpouseIncomeGrowthRate   float64 `yaml:"spouse_income_growth_rate" json:"spouse_income_growth_rate"`

	// Living expense
	ExpenseMode            ExpenseMode `yaml:"expense_mode" json:"expense_mode"`
	LivingCostSimpleAnnual float64     `yaml:"living_cost_simple_annual" json:"living_cost_simple_annual"`
	DetailedFixedAnnual    float64     `yaml:"detailed_fixed_annual" json:"detailed_fixed_annual"`
	DetailedVariableAnnual float64     `yaml:"detailed_variable_annual" json:"detailed_variable_annual"`

	// Life events (nil / empty = feature disabled)
	Car        *CarEvent        `yaml:"car,omitempty" json:"car,omitempty"`
	Housing    *HousingEvent    `yaml:"housing,omitempty" json:"housing,omitempty"`
	Marriage   *MarriageEvent   `yaml:"marriage,omitempty" json:"marriage,omitempty"`
	Children   *ChildrenEvent   `yaml:"children,omitempty" json:"children,omitempty"`
	Appliances []ApplianceEvent `yaml:"appliances,omitempty" json:"appliances,omitempty"`
	Care       *CareEvent       `yaml:"care,omitempty" json:"care,omitempty"`

	// Retirement
	PostRetirementLivingMonthly float64 `yaml:"post_retirement_living_monthly" json:"post_retirement_living_monthly"`
	PensionMonthly              float64 `yaml:"pension_monthly" json:"pension_monthly"`

	// Savings and investment
	CurrentSavings            float64 `yaml:"current_savings" json:"current_savings"`
	MonthlySavings            float64 `yaml:"monthly_savings" json:"monthly_savings"`
	CurrentInvestments        float64 `yaml:"current_investments" json:"current_investments"`
	YearlyRecurringInvestment float64 `yaml:"yearly_recurring_investment" json:"yearly_recurring_investment"`
	YearlySpotInvestment      float64 `yaml:"yearly_spot_investment" json:"yearly_spot_investment"`
	ExpectedReturn            float64 `yaml:"expected_return" json:"expected_return"` // decimal, e.g. 0.04

	InterestScenario InterestScenario `yaml:"interest_scenario" json:"interest_scenario"`
	Seed             *int64           `yaml:"seed,omitempty" json:"seed,omitempty"`

	EmergencyFund float64 `yaml:"emergency_fund" json:"emergency_fund"`
}

// CarEvent describes periodic car replacement
type CarEvent struct {
	Price           float64 `yaml:"price" json:"price"`
	FirstAfterYears int     `yaml:"first_after_years" json:"first_after_years"`
	FrequencyYears  int     `yaml:"frequency_years" json:"frequency_years"`
	Loan            CarLoan `yaml:"loan" json:"loan"`
}

// CarLoan describes how a car purchase is financed
type CarLoan struct {
	Use   bool     `yaml:"use" json:"use"`
	Years int      `yaml:"years,omitempty" json:"years,omitempty"`
	Type  LoanType `yaml:"type,omitempty" json:"type,omitempty"`
}

// HousingEvent describes the current residence and planned housing spending
type HousingEvent struct {
	Type         HousingType         `yaml:"type" json:"type"`
	CurrentLoan  *CurrentHousingLoan `yaml:"current_loan,omitempty" json:"current_loan,omitempty"`
	PurchasePlan *HousePurchasePlan  `yaml:"purchase_plan,omitempty" json:"purchase_plan,omitempty"`
	Renovations  []Renovation        `yaml:"renovations,omitempty" json:"renovations,omitempty"`
}

// CurrentHousingLoan is an existing mortgage, anchored to the simulation start
type CurrentHousingLoan struct {
	MonthlyPayment float64 `yaml:"monthly_payment" json:"monthly_payment"`
	RemainingYears int     `yaml:"remaining_years" json:"remaining_years"`
}

// HousePurchasePlan is a future home purchase financed by a loan
type HousePurchasePlan struct {
	Age         int     `yaml:"age" json:"age"`
	Price       float64 `yaml:"price" json:"price"`
	DownPayment float64 `yaml:"down_payment" json:"down_payment"`
	Years       int     `yaml:"years" json:"years"`
	Rate        float64 `yaml:"rate" json:"rate"` // annual percent, e.g. 1.5
}

// Renovation is a one-time or repeating housing cost
type Renovation struct {
	Age        int     `yaml:"age" json:"age"`
	Cost       float64 `yaml:"cost" json:"cost"`
	CycleYears int     `yaml:"cycle_years,omitempty" json:"cycle_years,omitempty"`
}

// MarriageEvent is the one-time cost of getting married
type MarriageEvent struct {
	Age        int     `yaml:"age" json:"age"`
	Engagement float64 `yaml:"engagement" json:"engagement"`
	Wedding    float64 `yaml:"wedding" json:"wedding"`
	Honeymoon  float64 `yaml:"honeymoon" json:"honeymoon"`
	Moving     float64 `yaml:"moving" json:"moving"`
}

// Total returns the sum of the four marriage sub-costs. Non-finite parts count as zero.
func (m MarriageEvent) Total() decimal.Decimal {
	return yen.FromFloat(m.Engagement).Add(yen.FromFloat(m.Wedding)).
		Add(yen.FromFloat(m.Honeymoon)).Add(yen.FromFloat(m.Moving))
}

// ChildrenEvent describes planned children; births are three years apart
type ChildrenEvent struct {
	Count            int              `yaml:"count" json:"count"`
	FirstBornAge     int              `yaml:"first_born_age" json:"first_born_age"`
	EducationPattern EducationPattern `yaml:"education_pattern" json:"education_pattern"`
}

// ApplianceEvent is a household appliance replaced on a fixed cycle
type ApplianceEvent struct {
	Name            string  `yaml:"name" json:"name"`
	CycleYears      int     `yaml:"cycle_years" json:"cycle_years"`
	FirstAfterYears int     `yaml:"first_after_years" json:"first_after_years"`
	Cost            float64 `yaml:"cost" json:"cost"`
}

// CareEvent describes parent care expressed in the parent's ages
type CareEvent struct {
	Assume             bool    `yaml:"assume" json:"assume"`
	ParentCurrentAge   int     `yaml:"parent_current_age" json:"parent_current_age"`
	ParentCareStartAge int     `yaml:"parent_care_start_age" json:"parent_care_start_age"`
	Years              int     `yaml:"years" json:"years"`
	Monthly            float64 `yaml:"monthly" json:"monthly"`
}

// HorizonYears returns the number of simulated years (endAge - initialAge + 1)
func (p *InputParameters) HorizonYears() int {
	return p.EndAge - p.InitialAge + 1
}

// IsStochastic reports whether yearly returns are randomized
func (p *InputParameters) IsStochastic() bool {
	return p.InterestScenario == InterestScenarioStochastic
}

// EffectiveSeed returns the configured seed or DefaultSeed
func (p *InputParameters) EffectiveSeed() int64 {
	if p.Seed == nil || *p.Seed == 0 {
		return DefaultSeed
	}
	return *p.Seed
}
