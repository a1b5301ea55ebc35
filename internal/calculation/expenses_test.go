package calculation

import (
	"testing"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseParams(initialAge, endAge int) *domain.InputParameters {
	return &domain.InputParameters{
		InitialAge:       initialAge,
		EndAge:           endAge,
		RetirementAge:    65,
		PensionStartAge:  65,
		ExpenseMode:      domain.ExpenseModeSimple,
		InterestScenario: domain.InterestScenarioFixed,
	}
}

// expenseByAge runs the scheduler over the whole horizon
func expenseByAge(params *domain.InputParameters, pick func(domain.ExpenseBreakdown) decimal.Decimal) map[int]decimal.Decimal {
	es := NewExpenseScheduler(params)
	out := make(map[int]decimal.Decimal)
	for i := 0; i < params.HorizonYears(); i++ {
		age := params.InitialAge + i
		out[age] = pick(es.ExpensesFor(age, i))
	}
	return out
}

func TestApplianceCycle(t *testing.T) {
	params := baseParams(40, 70)
	params.Appliances = []domain.ApplianceEvent{
		{Name: "washer", CycleYears: 5, FirstAfterYears: 0, Cost: 100000},
	}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Appliance })
	for age, amount := range byAge {
		if (age-40)%5 == 0 {
			assert.True(t, amount.Equal(decimal.NewFromInt(100000)), "age %d: got %s", age, amount)
		} else {
			assert.True(t, amount.IsZero(), "age %d: got %s", age, amount)
		}
	}
}

func TestApplianceFiltering(t *testing.T) {
	params := baseParams(40, 50)
	params.Appliances = []domain.ApplianceEvent{
		{Name: "", CycleYears: 5, Cost: 100000},
		{Name: "fridge", CycleYears: 0, Cost: 100000},
		{Name: "tv", CycleYears: 5, Cost: 0},
	}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Appliance })
	for age, amount := range byAge {
		assert.True(t, amount.IsZero(), "age %d: got %s", age, amount)
	}
}

func TestCarUnfinanced(t *testing.T) {
	params := baseParams(30, 60)
	params.Car = &domain.CarEvent{Price: 3000000, FirstAfterYears: 2, FrequencyYears: 5}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Car })
	for age, amount := range byAge {
		if age >= 32 && (age-32)%5 == 0 {
			assert.True(t, amount.Equal(decimal.NewFromInt(3000000)), "age %d: got %s", age, amount)
		} else {
			assert.True(t, amount.IsZero(), "age %d: got %s", age, amount)
		}
	}
}

func TestCarFinancedStacksOverlappingLoans(t *testing.T) {
	params := baseParams(30, 45)
	params.Car = &domain.CarEvent{
		Price:           3000000,
		FirstAfterYears: 0,
		FrequencyYears:  3,
		Loan:            domain.CarLoan{Use: true, Years: 5, Type: domain.LoanTypeBank},
	}
	payment := AnnualLoanPayment(decimal.NewFromInt(3000000), decimal.NewFromFloat(1.5), 5)

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Car })

	assert.True(t, byAge[30].Equal(payment))
	assert.True(t, byAge[32].Equal(payment))
	// loans from 30 and 33 overlap
	assert.True(t, byAge[33].Equal(payment.Mul(decimal.NewFromInt(2))))
	assert.True(t, byAge[34].Equal(payment.Mul(decimal.NewFromInt(2))))
	// 30 loan ends, 33 and 36 overlap
	assert.True(t, byAge[36].Equal(payment.Mul(decimal.NewFromInt(2))))
}

func TestHousingCurrentLoan(t *testing.T) {
	params := baseParams(40, 50)
	params.Housing = &domain.HousingEvent{
		Type:        domain.HousingTypeOwnedLoan,
		CurrentLoan: &domain.CurrentHousingLoan{MonthlyPayment: 100000, RemainingYears: 3},
	}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Housing })
	assert.True(t, byAge[40].Equal(decimal.NewFromInt(1200000)))
	assert.True(t, byAge[42].Equal(decimal.NewFromInt(1200000)))
	assert.True(t, byAge[43].IsZero())

	params.Housing.Type = domain.HousingTypeRent
	byAge = expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Housing })
	assert.True(t, byAge[40].IsZero(), "current loan only applies to owned-with-loan")
}

func TestHousingPurchasePlan(t *testing.T) {
	params := baseParams(30, 50)
	params.Housing = &domain.HousingEvent{
		Type: domain.HousingTypeRent,
		PurchasePlan: &domain.HousePurchasePlan{
			Age: 35, Price: 40000000, DownPayment: 4000000, Years: 10, Rate: 0,
		},
		Renovations: []domain.Renovation{{Age: 45, Cost: 2000000}},
	}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Housing })
	assert.True(t, byAge[34].IsZero())
	assert.True(t, byAge[35].Equal(decimal.NewFromInt(7600000)), "down payment plus first payment, got %s", byAge[35])
	assert.True(t, byAge[44].Equal(decimal.NewFromInt(3600000)))
	assert.True(t, byAge[45].Equal(decimal.NewFromInt(2000000)), "renovation only, got %s", byAge[45])
	assert.True(t, byAge[50].IsZero(), "non-repeating renovation")
}

func TestRenovationCycle(t *testing.T) {
	params := baseParams(40, 70)
	params.Housing = &domain.HousingEvent{
		Type:        domain.HousingTypeOwnedPaidOff,
		Renovations: []domain.Renovation{{Age: 50, Cost: 1500000, CycleYears: 10}},
	}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Housing })
	for _, age := range []int{50, 60, 70} {
		assert.True(t, byAge[age].Equal(decimal.NewFromInt(1500000)), "age %d", age)
	}
	assert.True(t, byAge[55].IsZero())
	assert.True(t, byAge[40].IsZero())
}

func TestChildrenEducation(t *testing.T) {
	params := baseParams(30, 70)
	params.Children = &domain.ChildrenEvent{Count: 2, FirstBornAge: 32, EducationPattern: domain.EducationPublic}
	perChild := ChildAnnualCost(domain.EducationPublic)

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Child })
	assert.True(t, byAge[31].IsZero())
	assert.True(t, byAge[32].Equal(perChild))
	assert.True(t, byAge[35].Equal(perChild.Mul(decimal.NewFromInt(2))))
	assert.True(t, byAge[53].Equal(perChild.Mul(decimal.NewFromInt(2))))
	assert.True(t, byAge[54].Equal(perChild), "first child stops after age 21")
	assert.True(t, byAge[57].IsZero())

	total := decimal.Zero
	for _, v := range byAge {
		total = total.Add(v)
	}
	assert.InDelta(t, 20000000, total.InexactFloat64(), 0.01)
}

func TestChildAnnualCost(t *testing.T) {
	assert.InDelta(t, 10000000.0/22, ChildAnnualCost(domain.EducationPublic).InexactFloat64(), 1e-6)
	assert.InDelta(t, 16000000.0/22, ChildAnnualCost(domain.EducationMixed).InexactFloat64(), 1e-6)
	assert.InDelta(t, 20000000.0/22, ChildAnnualCost(domain.EducationPrivate).InexactFloat64(), 1e-6)
	assert.True(t, ChildAnnualCost("boarding").IsZero())
}

func TestMarriageOneTime(t *testing.T) {
	params := baseParams(28, 40)
	params.Marriage = &domain.MarriageEvent{Age: 31, Engagement: 300000, Wedding: 3000000, Honeymoon: 500000, Moving: 200000}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Marriage })
	for age, amount := range byAge {
		if age == 31 {
			assert.True(t, amount.Equal(decimal.NewFromInt(4000000)))
		} else {
			assert.True(t, amount.IsZero(), "age %d", age)
		}
	}
}

func TestCareWindow(t *testing.T) {
	params := baseParams(45, 70)
	params.Care = &domain.CareEvent{Assume: true, ParentCurrentAge: 70, ParentCareStartAge: 80, Years: 5, Monthly: 100000}

	byAge := expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Care })
	for age, amount := range byAge {
		if age >= 55 && age < 60 {
			assert.True(t, amount.Equal(decimal.NewFromInt(1200000)), "age %d", age)
		} else {
			assert.True(t, amount.IsZero(), "age %d", age)
		}
	}

	params.Care.Assume = false
	byAge = expenseByAge(params, func(eb domain.ExpenseBreakdown) decimal.Decimal { return eb.Care })
	assert.True(t, byAge[55].IsZero())
}

func TestRetirementLivingAndPension(t *testing.T) {
	params := baseParams(60, 70)
	params.LivingCostSimpleAnnual = 3000000
	params.PostRetirementLivingMonthly = 250000
	params.PensionMonthly = 150000
	params.PensionStartAge = 67

	es := NewExpenseScheduler(params)

	before := es.ExpensesFor(64, 4)
	assert.True(t, before.Living.Equal(decimal.NewFromInt(3000000)))
	assert.True(t, before.Retirement.IsZero())

	retired := es.ExpensesFor(65, 5)
	assert.True(t, retired.Living.IsZero())
	assert.True(t, retired.Retirement.Equal(decimal.NewFromInt(3000000)))

	pensioned := es.ExpensesFor(67, 7)
	assert.True(t, pensioned.Retirement.Equal(decimal.NewFromInt(1200000)))

	params.PensionMonthly = 400000
	rich := NewExpenseScheduler(params).ExpensesFor(68, 8)
	assert.True(t, rich.Retirement.IsZero(), "pension above living cost floors at zero")
}

func TestDetailedModeZeroesCategories(t *testing.T) {
	params := baseParams(30, 40)
	params.ExpenseMode = domain.ExpenseModeDetailed
	params.DetailedFixedAnnual = 1500000
	params.DetailedVariableAnnual = 900000
	params.Car = &domain.CarEvent{Price: 2000000, FirstAfterYears: 0, FrequencyYears: 5}
	params.Appliances = []domain.ApplianceEvent{{Name: "ac", CycleYears: 5, Cost: 150000}}
	params.Children = &domain.ChildrenEvent{Count: 1, FirstBornAge: 30, EducationPattern: domain.EducationPrivate}
	params.Housing = &domain.HousingEvent{
		Type:        domain.HousingTypeOwnedLoan,
		CurrentLoan: &domain.CurrentHousingLoan{MonthlyPayment: 80000, RemainingYears: 10},
	}
	params.Marriage = &domain.MarriageEvent{Age: 30, Wedding: 2000000}

	eb := NewExpenseScheduler(params).ExpensesFor(30, 0)
	assert.True(t, eb.Living.Equal(decimal.NewFromInt(2400000)))
	assert.True(t, eb.Car.IsZero())
	assert.True(t, eb.Housing.IsZero())
	assert.True(t, eb.Appliance.IsZero())
	assert.True(t, eb.Child.IsZero())
	assert.True(t, eb.Marriage.Equal(decimal.NewFromInt(2000000)), "marriage is not zeroed")
}
