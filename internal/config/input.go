package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is wrapped by every validation failure
var ErrInvalidDocument = errors.New("invalid input document")

const maxAge = 120

// InputParser handles parsing of input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulation parameters from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.InputParameters, error) {
	doc, err := ip.LoadDocument(filename)
	if err != nil {
		return nil, err
	}
	return ip.ToInputParameters(doc)
}

// LoadDocument reads and validates a document without converting it
func (ip *InputParser) LoadDocument(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseDocument(data)
}

// ParseDocument decodes a YAML or JSON document and validates it.
// JSON is accepted because it is a subset of YAML.
func (ip *InputParser) ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	if err := ip.ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &doc, nil
}

// Parse decodes, validates and converts a document in one step
func (ip *InputParser) Parse(data []byte) (*domain.InputParameters, error) {
	doc, err := ip.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return ip.ToInputParameters(doc)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// checkAmount rejects negative amounts. Non-finite values pass; the engine reads them as 0.
func checkAmount(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	if value < 0 {
		return invalid("%s cannot be negative", name)
	}
	return nil
}

func checkAge(name string, age int) error {
	if age < 0 || age > maxAge {
		return invalid("%s must be between 0 and %d, got %d", name, maxAge, age)
	}
	return nil
}

// ValidateDocument rejects documents the engine cannot project
func (ip *InputParser) ValidateDocument(doc *Document) error {
	if doc == nil {
		return invalid("document is empty")
	}

	if err := ip.validateAges(doc); err != nil {
		return err
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"mainJobIncomeGross", doc.MainJobIncomeGross},
		{"sideJobIncomeGross", doc.SideJobIncomeGross},
		{"spouseMainJobIncomeGross", doc.SpouseMainJobIncomeGross},
		{"spouseSideJobIncomeGross", doc.SpouseSideJobIncomeGross},
		{"livingCostSimpleAnnual", doc.LivingCostSimpleAnnual},
		{"detailedFixedAnnual", doc.DetailedFixedAnnual},
		{"detailedVariableAnnual", doc.DetailedVariableAnnual},
		{"postRetirementLiving10kJPY", doc.PostRetirementLiving10kJPY},
		{"pensionMonthly10kJPY", doc.PensionMonthly10kJPY},
		{"currentSavingsJPY", doc.CurrentSavingsJPY},
		{"monthlySavingsJPY", doc.MonthlySavingsJPY},
		{"currentInvestmentsJPY", doc.CurrentInvestmentsJPY},
		{"yearlyRecurringInvestmentJPY", doc.YearlyRecurringInvestmentJPY},
		{"yearlySpotJPY", doc.YearlySpotJPY},
		{"emergencyFundJPY", doc.EmergencyFundJPY},
	}
	for _, a := range amounts {
		if err := checkAmount(a.name, a.value); err != nil {
			return err
		}
	}

	if _, err := ParseExpenseMode(doc.ExpenseMode); err != nil {
		return invalid("expenseMode: %v", err)
	}
	if _, err := ParseInterestScenario(doc.InterestScenario); err != nil {
		return invalid("interestScenario: %v", err)
	}

	if err := ip.validateCar(doc.Car); err != nil {
		return fmt.Errorf("car: %w", err)
	}
	if err := ip.validateHousing(doc.Housing); err != nil {
		return fmt.Errorf("housing: %w", err)
	}
	if err := ip.validateMarriage(doc.Marriage); err != nil {
		return fmt.Errorf("marriage: %w", err)
	}
	if err := ip.validateChildren(doc.Children); err != nil {
		return fmt.Errorf("children: %w", err)
	}
	for i, appliance := range doc.Appliances {
		if err := checkAmount("cost10kJPY", appliance.Cost10kJPY); err != nil {
			return fmt.Errorf("appliance %d: %w", i, err)
		}
	}
	if err := ip.validateCare(doc.Care); err != nil {
		return fmt.Errorf("care: %w", err)
	}

	return nil
}

func (ip *InputParser) validateAges(doc *Document) error {
	if err := checkAge("initialAge", doc.InitialAge); err != nil {
		return err
	}
	if err := checkAge("endAge", doc.EndAge); err != nil {
		return err
	}
	if doc.EndAge < doc.InitialAge {
		return invalid("endAge (%d) must not be before initialAge (%d)", doc.EndAge, doc.InitialAge)
	}
	if err := checkAge("retirementAge", doc.RetirementAge); err != nil {
		return err
	}
	if err := checkAge("pensionStartAge", doc.PensionStartAge); err != nil {
		return err
	}
	if err := checkAge("spouseInitialAge", doc.SpouseInitialAge); err != nil {
		return err
	}
	if doc.StartYear < 0 {
		return invalid("startYear cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateCar(car *CarDocument) error {
	if car == nil {
		return nil
	}
	if err := checkAmount("priceJPY", car.PriceJPY); err != nil {
		return err
	}
	if car.FirstAfterYears < 0 || car.FrequencyYears < 0 {
		return invalid("firstAfterYears and frequencyYears cannot be negative")
	}
	if car.Loan.Years < 0 {
		return invalid("loan years cannot be negative")
	}
	if _, err := ParseLoanType(car.Loan.Type); err != nil {
		return invalid("loan: %v", err)
	}
	return nil
}

func (ip *InputParser) validateHousing(housing *HousingDocument) error {
	if housing == nil {
		return nil
	}
	if _, err := ParseHousingType(housing.Type); err != nil {
		return invalid("%v", err)
	}
	if loan := housing.CurrentLoan; loan != nil {
		if err := checkAmount("monthlyPaymentJPY", loan.MonthlyPaymentJPY); err != nil {
			return err
		}
		if loan.RemainingYears < 0 {
			return invalid("remainingYears cannot be negative")
		}
	}
	if plan := housing.PurchasePlan; plan != nil {
		if err := checkAge("purchasePlan.age", plan.Age); err != nil {
			return err
		}
		if err := checkAmount("purchasePlan.priceJPY", plan.PriceJPY); err != nil {
			return err
		}
		if err := checkAmount("purchasePlan.downPaymentJPY", plan.DownPaymentJPY); err != nil {
			return err
		}
		if plan.DownPaymentJPY > plan.PriceJPY {
			return invalid("purchasePlan.downPaymentJPY exceeds priceJPY")
		}
		if plan.Years < 0 {
			return invalid("purchasePlan.years cannot be negative")
		}
		if err := checkAmount("purchasePlan.rate", plan.Rate); err != nil {
			return err
		}
	}
	for i, renovation := range housing.Renovations {
		if err := checkAmount("costJPY", renovation.CostJPY); err != nil {
			return fmt.Errorf("renovation %d: %w", i, err)
		}
		if renovation.CycleYears < 0 {
			return fmt.Errorf("renovation %d: %w", i, invalid("cycleYears cannot be negative"))
		}
	}
	return nil
}

func (ip *InputParser) validateMarriage(marriage *MarriageDocument) error {
	if marriage == nil {
		return nil
	}
	if err := checkAge("age", marriage.Age); err != nil {
		return err
	}
	for _, a := range []struct {
		name  string
		value float64
	}{
		{"engagementJPY", marriage.EngagementJPY},
		{"weddingJPY", marriage.WeddingJPY},
		{"honeymoonJPY", marriage.HoneymoonJPY},
		{"movingJPY", marriage.MovingJPY},
	} {
		if err := checkAmount(a.name, a.value); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validateChildren(children *ChildrenDocument) error {
	if children == nil {
		return nil
	}
	if children.Count < 0 {
		return invalid("count cannot be negative")
	}
	if children.Count > 0 {
		if err := checkAge("firstBornAge", children.FirstBornAge); err != nil {
			return err
		}
	}
	if _, err := ParseEducationPattern(children.EducationPattern); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func (ip *InputParser) validateCare(care *CareDocument) error {
	if care == nil || !care.Assume {
		return nil
	}
	if err := checkAge("parentCurrentAge", care.ParentCurrentAge); err != nil {
		return err
	}
	if err := checkAge("parentCareStartAge", care.ParentCareStartAge); err != nil {
		return err
	}
	if care.Years < 0 {
		return invalid("years cannot be negative")
	}
	return checkAmount("monthly10kJPY", care.Monthly10kJPY)
}

// ToInputParameters converts a validated document into engine input.
// 10kJPY amounts are multiplied by 10,000 here.
func (ip *InputParser) ToInputParameters(doc *Document) (*domain.InputParameters, error) {
	expenseMode, err := ParseExpenseMode(doc.ExpenseMode)
	if err != nil {
		return nil, err
	}
	scenario, err := ParseInterestScenario(doc.InterestScenario)
	if err != nil {
		return nil, err
	}

	params := &domain.InputParameters{
		InitialAge:       doc.InitialAge,
		SpouseInitialAge: doc.SpouseInitialAge,
		EndAge:           doc.EndAge,
		RetirementAge:    doc.RetirementAge,
		PensionStartAge:  doc.PensionStartAge,
		StartYear:        doc.StartYear,

		MainJobIncomeGross:       doc.MainJobIncomeGross,
		SideJobIncomeGross:       doc.SideJobIncomeGross,
		SpouseMainJobIncomeGross: doc.SpouseMainJobIncomeGross,
		SpouseSideJobIncomeGross: doc.SpouseSideJobIncomeGross,
		IncomeGrowthRate:         doc.IncomeGrowthRate,
		SpouseIncomeGrowthRate:   doc.SpouseIncomeGrowthRate,

		ExpenseMode:            expenseMode,
		LivingCostSimpleAnnual: doc.LivingCostSimpleAnnual,
		DetailedFixedAnnual:    doc.DetailedFixedAnnual,
		DetailedVariableAnnual: doc.DetailedVariableAnnual,

		PostRetirementLivingMonthly: yen.FromTenThousand(doc.PostRetirementLiving10kJPY),
		PensionMonthly:              yen.FromTenThousand(doc.PensionMonthly10kJPY),

		CurrentSavings:            doc.CurrentSavingsJPY,
		MonthlySavings:            doc.MonthlySavingsJPY,
		CurrentInvestments:        doc.CurrentInvestmentsJPY,
		YearlyRecurringInvestment: doc.YearlyRecurringInvestmentJPY,
		YearlySpotInvestment:      doc.YearlySpotJPY,
		ExpectedReturn:            doc.ExpectedReturn,

		InterestScenario: scenario,
		EmergencyFund:    doc.EmergencyFundJPY,
	}

	if doc.StressTest.Seed != nil {
		seed := *doc.StressTest.Seed
		params.Seed = &seed
	}

	if car := doc.Car; car != nil {
		loanType, err := ParseLoanType(car.Loan.Type)
		if err != nil {
			return nil, err
		}
		params.Car = &domain.CarEvent{
			Price:           car.PriceJPY,
			FirstAfterYears: car.FirstAfterYears,
			FrequencyYears:  car.FrequencyYears,
			Loan: domain.CarLoan{
				Use:   car.Loan.Use,
				Years: car.Loan.Years,
				Type:  loanType,
			},
		}
	}

	if housing := doc.Housing; housing != nil {
		housingType, err := ParseHousingType(housing.Type)
		if err != nil {
			return nil, err
		}
		event := &domain.HousingEvent{Type: housingType}
		if loan := housing.CurrentLoan; loan != nil {
			event.CurrentLoan = &domain.CurrentHousingLoan{
				MonthlyPayment: loan.MonthlyPaymentJPY,
				RemainingYears: loan.RemainingYears,
			}
		}
		if plan := housing.PurchasePlan; plan != nil {
			event.PurchasePlan = &domain.HousePurchasePlan{
				Age:         plan.Age,
				Price:       plan.PriceJPY,
				DownPayment: plan.DownPaymentJPY,
				Years:       plan.Years,
				Rate:        plan.Rate,
			}
		}
		for _, r := range housing.Renovations {
			event.Renovations = append(event.Renovations, domain.Renovation{
				Age:        r.Age,
				Cost:       r.CostJPY,
				CycleYears: r.CycleYears,
			})
		}
		params.Housing = event
	}

	if m := doc.Marriage; m != nil {
		params.Marriage = &domain.MarriageEvent{
			Age:        m.Age,
			Engagement: m.EngagementJPY,
			Wedding:    m.WeddingJPY,
			Honeymoon:  m.HoneymoonJPY,
			Moving:     m.MovingJPY,
		}
	}

	if c := doc.Children; c != nil {
		pattern, err := ParseEducationPattern(c.EducationPattern)
		if err != nil {
			return nil, err
		}
		params.Children = &domain.ChildrenEvent{
			Count:            c.Count,
			FirstBornAge:     c.FirstBornAge,
			EducationPattern: pattern,
		}
	}

	for _, a := range doc.Appliances {
		params.Appliances = append(params.Appliances, domain.ApplianceEvent{
			Name:            a.Name,
			CycleYears:      a.CycleYears,
			FirstAfterYears: a.FirstAfterYears,
			Cost:            yen.FromTenThousand(a.Cost10kJPY),
		})
	}

	if c := doc.Care; c != nil {
		params.Care = &domain.CareEvent{
			Assume:             c.Assume,
			ParentCurrentAge:   c.ParentCurrentAge,
			ParentCareStartAge: c.ParentCareStartAge,
			Years:              c.Years,
			Monthly:            yen.FromTenThousand(c.Monthly10kJPY),
		}
	}

	return params, nil
}

// MarshalDocument encodes a document as YAML
func (ip *InputParser) MarshalDocument(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// CreateExampleDocument returns a two-earner household with every life event set
func (ip *InputParser) CreateExampleDocument() *Document {
	seed := domain.DefaultSeed
	return &Document{
		InitialAge:       30,
		SpouseInitialAge: 28,
		EndAge:           90,
		RetirementAge:    65,
		PensionStartAge:  65,

		MainJobIncomeGross:       5000000,
		SideJobIncomeGross:       300000,
		SpouseMainJobIncomeGross: 3500000,
		IncomeGrowthRate:         0.015,
		SpouseIncomeGrowthRate:   0.01,

		ExpenseMode:            string(domain.ExpenseModeSimple),
		LivingCostSimpleAnnual: 3000000,

		Car: &CarDocument{
			PriceJPY:        3000000,
			FirstAfterYears: 2,
			FrequencyYears:  8,
			Loan:            CarLoanDocument{Use: true, Years: 5, Type: string(domain.LoanTypeBank)},
		},
		Housing: &HousingDocument{
			Type: string(domain.HousingTypeRent),
			PurchasePlan: &PurchasePlanDocument{
				Age:            35,
				PriceJPY:       40000000,
				DownPaymentJPY: 5000000,
				Years:          35,
				Rate:           1.2,
			},
			Renovations: []RenovationDocument{
				{Age: 50, CostJPY: 2000000, CycleYears: 15},
			},
		},
		Marriage: &MarriageDocument{
			Age:           31,
			EngagementJPY: 400000,
			WeddingJPY:    3000000,
			HoneymoonJPY:  500000,
			MovingJPY:     300000,
		},
		Children: &ChildrenDocument{
			Count:            2,
			FirstBornAge:     33,
			EducationPattern: string(domain.EducationMixed),
		},
		Appliances: []ApplianceDocument{
			{Name: "refrigerator", CycleYears: 10, FirstAfterYears: 3, Cost10kJPY: 15},
			{Name: "washing machine", CycleYears: 8, FirstAfterYears: 4, Cost10kJPY: 12},
		},
		Care: &CareDocument{
			Assume:             true,
			ParentCurrentAge:   60,
			ParentCareStartAge: 80,
			Years:              5,
			Monthly10kJPY:      10,
		},

		PostRetirementLiving10kJPY: 25,
		PensionMonthly10kJPY:       20,

		CurrentSavingsJPY:            3000000,
		MonthlySavingsJPY:            20000,
		CurrentInvestmentsJPY:        1000000,
		YearlyRecurringInvestmentJPY: 600000,
		ExpectedReturn:               0.04,

		StressTest:       StressTestDocument{Enabled: false, Seed: &seed},
		InterestScenario: string(domain.InterestScenarioFixed),
		EmergencyFundJPY: 1000000,
	}
}
