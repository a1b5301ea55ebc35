package config

// Document is the on-disk input format. Keys follow the camelCase names used by
// the web form; amounts ending in JPY are base yen, amounts ending in 10kJPY are
// in units of 10,000 yen.
type Document struct {
	InitialAge       int `yaml:"initialAge" json:"initialAge"`
	SpouseInitialAge int `yaml:"spouseInitialAge,omitempty" json:"spouseInitialAge,omitempty"`
	EndAge           int `yaml:"endAge" json:"endAge"`
	RetirementAge    int `yaml:"retirementAge" json:"retirementAge"`
	PensionStartAge  int `yaml:"pensionStartAge" json:"pensionStartAge"`
	StartYear        int `yaml:"startYear,omitempty" json:"startYear,omitempty"`

	MainJobIncomeGross       float64 `yaml:"mainJobIncomeGross" json:"mainJobIncomeGross"`
	SideJobIncomeGross       float64 `yaml:"sideJobIncomeGross" json:"sideJobIncomeGross"`
	SpouseMainJobIncomeGross float64 `yaml:"spouseMainJobIncomeGross,omitempty" json:"spouseMainJobIncomeGross,omitempty"`
	SpouseSideJobIncomeGross float64 `yaml:"spouseSideJobIncomeGross,omitempty" json:"spouseSideJobIncomeGross,omitempty"`
	IncomeGrowthRate         float64 `yaml:"incomeGrowthRate" json:"incomeGrowthRate"`
	SpouseIncomeGrowthRate   float64 `yaml:"spouseIncomeGrowthRate,omitempty" json:"spouseIncomeGrowthRate,omitempty"`

	ExpenseMode            string  `yaml:"expenseMode" json:"expenseMode"`
	LivingCostSimpleAnnual float64 `yaml:"livingCostSimpleAnnual,omitempty" json:"livingCostSimpleAnnual,omitempty"`
	DetailedFixedAnnual    float64 `yaml:"detailedFixedAnnual,omitempty" json:"detailedFixedAnnual,omitempty"`
	DetailedVariableAnnual float64 `yaml:"detailedVariableAnnual,omitempty" json:"detailedVariableAnnual,omitempty"`

	Car        *CarDocument        `yaml:"car,omitempty" json:"car,omitempty"`
	Housing    *HousingDocument    `yaml:"housing,omitempty" json:"housing,omitempty"`
	Marriage   *MarriageDocument   `yaml:"marriage,omitempty" json:"marriage,omitempty"`
	Children   *ChildrenDocument   `yaml:"children,omitempty" json:"children,omitempty"`
	Appliances []ApplianceDocument `yaml:"appliances,omitempty" json:"appliances,omitempty"`
	Care       *CareDocument       `yaml:"care,omitempty" json:"care,omitempty"`

	PostRetirementLiving10kJPY float64 `yaml:"postRetirementLiving10kJPY" json:"postRetirementLiving10kJPY"`
	PensionMonthly10kJPY       float64 `yaml:"pensionMonthly10kJPY" json:"pensionMonthly10kJPY"`

	CurrentSavingsJPY            float64 `yaml:"currentSavingsJPY" json:"currentSavingsJPY"`
	MonthlySavingsJPY            float64 `yaml:"monthlySavingsJPY" json:"monthlySavingsJPY"`
	CurrentInvestmentsJPY        float64 `yaml:"currentInvestmentsJPY" json:"currentInvestmentsJPY"`
	YearlyRecurringInvestmentJPY float64 `yaml:"yearlyRecurringInvestmentJPY" json:"yearlyRecurringInvestmentJPY"`
	YearlySpotJPY                float64 `yaml:"yearlySpotJPY" json:"yearlySpotJPY"`
	ExpectedReturn               float64 `yaml:"expectedReturn" json:"expectedReturn"` // fraction, e.g. 0.04

	StressTest       StressTestDocument `yaml:"stressTest" json:"stressTest"`
	InterestScenario string             `yaml:"interestScenario" json:"interestScenario"`
	EmergencyFundJPY float64            `yaml:"emergencyFundJPY" json:"emergencyFundJPY"`
}

type CarDocument struct {
	PriceJPY        float64         `yaml:"priceJPY" json:"priceJPY"`
	FirstAfterYears int             `yaml:"firstAfterYears" json:"firstAfterYears"`
	FrequencyYears  int             `yaml:"frequencyYears" json:"frequencyYears"`
	Loan            CarLoanDocument `yaml:"loan" json:"loan"`
}

type CarLoanDocument struct {
	Use   bool   `yaml:"use" json:"use"`
	Years int    `yaml:"years,omitempty" json:"years,omitempty"`
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
}

type HousingDocument struct {
	Type         string                `yaml:"type" json:"type"`
	CurrentLoan  *CurrentLoanDocument  `yaml:"currentLoan,omitempty" json:"currentLoan,omitempty"`
	PurchasePlan *PurchasePlanDocument `yaml:"purchasePlan,omitempty" json:"purchasePlan,omitempty"`
	Renovations  []RenovationDocument  `yaml:"renovations,omitempty" json:"renovations,omitempty"`
}

type CurrentLoanDocument struct {
	MonthlyPaymentJPY float64 `yaml:"monthlyPaymentJPY" json:"monthlyPaymentJPY"`
	RemainingYears    int     `yaml:"remainingYears" json:"remainingYears"`
}

type PurchasePlanDocument struct {
	Age            int     `yaml:"age" json:"age"`
	PriceJPY       float64 `yaml:"priceJPY" json:"priceJPY"`
	DownPaymentJPY float64 `yaml:"downPaymentJPY" json:"downPaymentJPY"`
	Years          int     `yaml:"years" json:"years"`
	Rate           float64 `yaml:"rate" json:"rate"`
}

type RenovationDocument struct {
	Age        int     `yaml:"age" json:"age"`
	CostJPY    float64 `yaml:"costJPY" json:"costJPY"`
	CycleYears int     `yaml:"cycleYears,omitempty" json:"cycleYears,omitempty"`
}

type MarriageDocument struct {
	Age           int     `yaml:"age" json:"age"`
	EngagementJPY float64 `yaml:"engagementJPY" json:"engagementJPY"`
	WeddingJPY    float64 `yaml:"weddingJPY" json:"weddingJPY"`
	HoneymoonJPY  float64 `yaml:"honeymoonJPY" json:"honeymoonJPY"`
	MovingJPY     float64 `yaml:"movingJPY" json:"movingJPY"`
}

type ChildrenDocument struct {
	Count            int    `yaml:"count" json:"count"`
	FirstBornAge     int    `yaml:"firstBornAge" json:"firstBornAge"`
	EducationPattern string `yaml:"educationPattern" json:"educationPattern"`
}

type ApplianceDocument struct {
	Name            string  `yaml:"name" json:"name"`
	CycleYears      int     `yaml:"cycleYears" json:"cycleYears"`
	FirstAfterYears int     `yaml:"firstAfterYears" json:"firstAfterYears"`
	Cost10kJPY      float64 `yaml:"cost10kJPY" json:"cost10kJPY"`
}

type CareDocument struct {
	Assume             bool    `yaml:"assume" json:"assume"`
	ParentCurrentAge   int     `yaml:"parentCurrentAge,omitempty" json:"parentCurrentAge,omitempty"`
	ParentCareStartAge int     `yaml:"parentCareStartAge,omitempty" json:"parentCareStartAge,omitempty"`
	Years              int     `yaml:"years,omitempty" json:"years,omitempty"`
	Monthly10kJPY      float64 `yaml:"monthly10kJPY,omitempty" json:"monthly10kJPY,omitempty"`
}

// StressTestDocument carries the seed for randomized returns. Enabled is
// informational; the scenario itself is chosen by interestScenario.
type StressTestDocument struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Seed    *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}
