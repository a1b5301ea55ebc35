package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Example(t *testing.T) {
	parser := NewInputParser()
	params, err := parser.LoadFromFile(filepath.Join("testdata", "example_input.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 30, params.InitialAge)
	assert.Equal(t, 28, params.SpouseInitialAge)
	assert.Equal(t, 90, params.EndAge)
	assert.Equal(t, 61, params.HorizonYears())
	assert.Equal(t, domain.ExpenseModeSimple, params.ExpenseMode)
	assert.Equal(t, domain.InterestScenarioStochastic, params.InterestScenario)
	require.NotNil(t, params.Seed)
	assert.Equal(t, int64(42), *params.Seed)

	// 10k units are converted to yen
	assert.Equal(t, 250000.0, params.PostRetirementLivingMonthly)
	assert.Equal(t, 200000.0, params.PensionMonthly)
	require.Len(t, params.Appliances, 2)
	assert.Equal(t, 150000.0, params.Appliances[0].Cost)
	assert.Equal(t, 120000.0, params.Appliances[1].Cost)
	require.NotNil(t, params.Care)
	assert.Equal(t, 100000.0, params.Care.Monthly)

	// JPY amounts pass through unchanged
	assert.Equal(t, 1000000.0, params.CurrentInvestments)
	assert.Equal(t, 3000000.0, params.CurrentSavings)

	require.NotNil(t, params.Car)
	assert.Equal(t, domain.LoanTypeBank, params.Car.Loan.Type)
	require.NotNil(t, params.Housing)
	assert.Equal(t, domain.HousingTypeRent, params.Housing.Type)
	require.NotNil(t, params.Housing.PurchasePlan)
	assert.Equal(t, 5000000.0, params.Housing.PurchasePlan.DownPayment)
	require.Len(t, params.Housing.Renovations, 1)
	require.NotNil(t, params.Children)
	assert.Equal(t, domain.EducationMixed, params.Children.EducationPattern)
	require.NotNil(t, params.Marriage)
	assert.True(t, params.Marriage.Total().Equal(decimal.NewFromInt(4200000)), "got %s", params.Marriage.Total())
}

func TestLoadFromFile_JSON(t *testing.T) {
	doc := `{
  "initialAge": 40,
  "endAge": 42,
  "retirementAge": 65,
  "pensionStartAge": 65,
  "mainJobIncomeGross": 4000000,
  "sideJobIncomeGross": 0,
  "incomeGrowthRate": 0,
  "expenseMode": "simple",
  "livingCostSimpleAnnual": 2000000,
  "postRetirementLiving10kJPY": 0,
  "pensionMonthly10kJPY": 0,
  "currentSavingsJPY": 0,
  "monthlySavingsJPY": 0,
  "currentInvestmentsJPY": 0,
  "yearlyRecurringInvestmentJPY": 0,
  "yearlySpotJPY": 0,
  "expectedReturn": 0,
  "stressTest": {"enabled": false},
  "interestScenario": "固定利回り",
  "emergencyFundJPY": 0
}`
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	params, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, domain.InterestScenarioFixed, params.InterestScenario)
	assert.Nil(t, params.Seed)
	assert.Nil(t, params.Car)
	assert.Nil(t, params.Housing)
	assert.Equal(t, 3, params.HorizonYears())
	assert.Equal(t, domain.DefaultSeed, params.EffectiveSeed())
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initialAge: [unclosed"), 0o600))
	_, err = parser.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse input")
	assert.NotErrorIs(t, err, ErrInvalidDocument)
}

func validDocument() *Document {
	return NewInputParser().CreateExampleDocument()
}

func TestValidateDocument(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name     string
		mutate   func(doc *Document)
		contains string
	}{
		{"end before start", func(d *Document) { d.EndAge = 20 }, "endAge"},
		{"negative age", func(d *Document) { d.InitialAge = -1 }, "initialAge"},
		{"age above limit", func(d *Document) { d.EndAge = 150 }, "endAge"},
		{"negative income", func(d *Document) { d.MainJobIncomeGross = -1 }, "mainJobIncomeGross"},
		{"negative savings", func(d *Document) { d.CurrentSavingsJPY = -100 }, "currentSavingsJPY"},
		{"unknown expense mode", func(d *Document) { d.ExpenseMode = "lavish" }, "expense mode"},
		{"unknown scenario", func(d *Document) { d.InterestScenario = "moon" }, "interest scenario"},
		{"unknown loan type", func(d *Document) { d.Car.Loan.Type = "pawn" }, "loan type"},
		{"negative car cycle", func(d *Document) { d.Car.FrequencyYears = -2 }, "frequencyYears"},
		{"unknown housing type", func(d *Document) { d.Housing.Type = "castle" }, "housing type"},
		{"down payment above price", func(d *Document) { d.Housing.PurchasePlan.DownPaymentJPY = 50000000 }, "downPaymentJPY"},
		{"negative renovation", func(d *Document) { d.Housing.Renovations[0].CostJPY = -1 }, "renovation 0"},
		{"negative children", func(d *Document) { d.Children.Count = -1 }, "count"},
		{"unknown education", func(d *Document) { d.Children.EducationPattern = "boarding" }, "education pattern"},
		{"negative appliance cost", func(d *Document) { d.Appliances[1].Cost10kJPY = -5 }, "appliance 1"},
		{"negative care years", func(d *Document) { d.Care.Years = -1 }, "care"},
		{"negative marriage cost", func(d *Document) { d.Marriage.WeddingJPY = -1 }, "weddingJPY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)
			err := parser.ValidateDocument(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	assert.NoError(t, parser.ValidateDocument(validDocument()))
	assert.ErrorIs(t, parser.ValidateDocument(nil), ErrInvalidDocument)
}

func TestValidateDocument_CareIgnoredWhenNotAssumed(t *testing.T) {
	doc := validDocument()
	doc.Care.Assume = false
	doc.Care.Years = -3
	assert.NoError(t, NewInputParser().ValidateDocument(doc))
}

func TestParse_NonFinitePassesThrough(t *testing.T) {
	parser := NewInputParser()
	params, err := parser.Parse([]byte("initialAge: 30\nendAge: 40\nexpectedReturn: .nan\nmainJobIncomeGross: .inf\n"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(params.ExpectedReturn))
	assert.True(t, math.IsInf(params.MainJobIncomeGross, 1))

	_, err = parser.Parse([]byte("initialAge: 30\nendAge: 40\ncurrentSavingsJPY: -.inf\n"))
	assert.NoError(t, err)
}

func TestParse_Defaults(t *testing.T) {
	params, err := NewInputParser().Parse([]byte("initialAge: 30\nendAge: 30\nretirementAge: 65\n"))
	require.NoError(t, err)

	assert.Equal(t, domain.ExpenseModeSimple, params.ExpenseMode)
	assert.Equal(t, domain.InterestScenarioFixed, params.InterestScenario)
	assert.Equal(t, 1, params.HorizonYears())
	assert.Empty(t, params.Appliances)
}

func TestEnumAliases(t *testing.T) {
	scenario, err := ParseInterestScenario("ランダム変動")
	require.NoError(t, err)
	assert.Equal(t, domain.InterestScenarioStochastic, scenario)

	scenario, err = ParseInterestScenario(" Fixed ")
	require.NoError(t, err)
	assert.Equal(t, domain.InterestScenarioFixed, scenario)

	loanType, err := ParseLoanType("ディーラーローン")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanTypeDealer, loanType)

	loanType, err = ParseLoanType("")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanTypeGeneral, loanType)

	housingType, err := ParseHousingType("持ち家（ローン中）")
	require.NoError(t, err)
	assert.Equal(t, domain.HousingTypeOwnedLoan, housingType)

	housingType, err = ParseHousingType("持ち家（完済）")
	require.NoError(t, err)
	assert.Equal(t, domain.HousingTypeOwnedPaidOff, housingType)

	pattern, err := ParseEducationPattern("私立中心")
	require.NoError(t, err)
	assert.Equal(t, domain.EducationPrivate, pattern)

	mode, err := ParseExpenseMode("DETAILED")
	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseModeDetailed, mode)

	_, err = ParseHousingType("tent")
	assert.Error(t, err)
}

func TestCreateExampleDocument_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	doc := parser.CreateExampleDocument()
	require.NoError(t, parser.ValidateDocument(doc))

	data, err := parser.MarshalDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "postRetirementLiving10kJPY: 25")

	params, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 30, params.InitialAge)
	assert.Equal(t, 250000.0, params.PostRetirementLivingMonthly)
	require.NotNil(t, params.Seed)
	assert.Equal(t, domain.DefaultSeed, *params.Seed)
}
