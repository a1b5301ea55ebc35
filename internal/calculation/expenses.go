package calculation

import (
	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"github.com/shopspring/decimal"
)

const (
	// childSpacingYears is the gap between consecutive births
	childSpacingYears = 3
	// childCostYears is the number of years a child is supported (ages 0..21)
	childCostYears = 22
)

var educationTotals = map[domain.EducationPattern]decimal.Decimal{
	domain.EducationPublic:  decimal.NewFromInt(10000000),
	domain.EducationMixed:   decimal.NewFromInt(16000000),
	domain.EducationPrivate: decimal.NewFromInt(20000000),
}

// ChildAnnualCost returns the yearly per-child cost of an education pattern.
// Unknown patterns cost nothing.
func ChildAnnualCost(pattern domain.EducationPattern) decimal.Decimal {
	total, ok := educationTotals[pattern]
	if !ok {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(childCostYears))
}

type carSchedule struct {
	firstAge  int
	frequency int
	price     decimal.Decimal
	financed  bool
	loanYears int
	payment   decimal.Decimal
}

type housingSchedule struct {
	currentLoanAnnual decimal.Decimal
	currentLoanYears  int

	hasPurchase     bool
	purchaseAge     int
	downPayment     decimal.Decimal
	purchaseYears   int
	purchasePayment decimal.Decimal

	renovations []renovationSchedule
}

type renovationSchedule struct {
	age   int
	cost  decimal.Decimal
	cycle int
}

type applianceSchedule struct {
	firstAge int
	cycle    int
	cost     decimal.Decimal
}

// ExpenseScheduler computes the eight expense categories for any simulated year.
// Derived amounts (loan payments, per-child cost) are computed once at construction.
type ExpenseScheduler struct {
	initialAge      int
	retirementAge   int
	pensionStartAge int
	detailed        bool

	living           decimal.Decimal
	retirementLiving decimal.Decimal
	pension          decimal.Decimal
	car              *carSchedule
	housing          *housingSchedule
	appliances       []applianceSchedule
	marriageAge      int
	marriageTotal    decimal.Decimal
	childBirthAges   []int
	childAnnualCost  decimal.Decimal
	careStartAge     int
	careYears        int
	careAnnual       decimal.Decimal
}

// NewExpenseScheduler prepares a scheduler for one set of inputs
func NewExpenseScheduler(params *domain.InputParameters) *ExpenseScheduler {
	es := &ExpenseScheduler{
		initialAge:       params.InitialAge,
		retirementAge:    params.RetirementAge,
		pensionStartAge:  params.PensionStartAge,
		detailed:         params.ExpenseMode == domain.ExpenseModeDetailed,
		retirementLiving: annualize(yen.NonNegative(params.PostRetirementLivingMonthly)),
		pension:          annualize(yen.NonNegative(params.PensionMonthly)),
	}

	if es.detailed {
		es.living = yen.FromFloat(params.DetailedFixedAnnual).Add(yen.FromFloat(params.DetailedVariableAnnual))
	} else {
		es.living = yen.FromFloat(params.LivingCostSimpleAnnual)
	}

	es.car = newCarSchedule(params.InitialAge, params.Car)
	es.housing = newHousingSchedule(params.Housing)

	for _, a := range params.Appliances {
		cost := yen.FromFloat(a.Cost)
		if a.Name == "" || !cost.IsPositive() || a.CycleYears <= 0 {
			continue
		}
		es.appliances = append(es.appliances, applianceSchedule{
			firstAge: params.InitialAge + a.FirstAfterYears,
			cycle:    a.CycleYears,
			cost:     cost,
		})
	}

	if m := params.Marriage; m != nil {
		es.marriageAge = m.Age
		es.marriageTotal = m.Total()
	}

	if c := params.Children; c != nil && c.Count > 0 {
		for i := 0; i < c.Count; i++ {
			es.childBirthAges = append(es.childBirthAges, c.FirstBornAge+i*childSpacingYears)
		}
		es.childAnnualCost = ChildAnnualCost(c.EducationPattern)
	}

	if c := params.Care; c != nil && c.Assume {
		monthly := yen.FromFloat(c.Monthly)
		if c.ParentCurrentAge > 0 && c.ParentCareStartAge > 0 && c.Years > 0 && monthly.IsPositive() {
			es.careStartAge = params.InitialAge + (c.ParentCareStartAge - c.ParentCurrentAge)
			es.careYears = c.Years
			es.careAnnual = annualize(monthly)
		}
	}

	return es
}

func newCarSchedule(initialAge int, car *domain.CarEvent) *carSchedule {
	if car == nil {
		return nil
	}
	price := yen.FromFloat(car.Price)
	if !price.IsPositive() || car.FirstAfterYears < 0 || car.FrequencyYears <= 0 {
		return nil
	}
	cs := &carSchedule{
		firstAge:  initialAge + car.FirstAfterYears,
		frequency: car.FrequencyYears,
		price:     price,
		financed:  car.Loan.Use,
	}
	if cs.financed {
		cs.loanYears = car.Loan.Years
		cs.payment = AnnualLoanPayment(price, CarLoanRatePercent(car.Loan.Type), car.Loan.Years)
	}
	return cs
}

func newHousingSchedule(h *domain.HousingEvent) *housingSchedule {
	if h == nil {
		return nil
	}
	hs := &housingSchedule{}

	if h.Type == domain.HousingTypeOwnedLoan && h.CurrentLoan != nil {
		monthly := yen.FromFloat(h.CurrentLoan.MonthlyPayment)
		if monthly.IsPositive() && h.CurrentLoan.RemainingYears > 0 {
			hs.currentLoanAnnual = annualize(monthly)
			hs.currentLoanYears = h.CurrentLoan.RemainingYears
		}
	}

	if p := h.PurchasePlan; p != nil {
		price := yen.NonNegative(p.Price)
		down := yen.NonNegative(p.DownPayment)
		hs.hasPurchase = true
		hs.purchaseAge = p.Age
		hs.downPayment = down
		hs.purchaseYears = p.Years
		hs.purchasePayment = AnnualLoanPayment(price.Sub(down), yen.FromFloat(p.Rate), p.Years)
	}

	for _, r := range h.Renovations {
		cost := yen.FromFloat(r.Cost)
		if !cost.IsPositive() {
			continue
		}
		hs.renovations = append(hs.renovations, renovationSchedule{age: r.Age, cost: cost, cycle: r.CycleYears})
	}

	return hs
}

// cycleHit reports whether age is the first age or a later multiple of cycle past it
func cycleHit(age, first, cycle int) bool {
	if age < first {
		return false
	}
	if age == first {
		return true
	}
	return cycle > 0 && (age-first)%cycle == 0
}

// ExpensesFor returns the expense breakdown at an age. yearIndex is age - initialAge.
func (es *ExpenseScheduler) ExpensesFor(age, yearIndex int) domain.ExpenseBreakdown {
	eb := domain.ExpenseBreakdown{
		Living:     decimal.Zero,
		Housing:    decimal.Zero,
		Car:        decimal.Zero,
		Appliance:  decimal.Zero,
		Child:      decimal.Zero,
		Marriage:   decimal.Zero,
		Care:       decimal.Zero,
		Retirement: decimal.Zero,
	}

	retired := age >= es.retirementAge
	if !retired {
		eb.Living = es.living
	} else {
		eb.Retirement = es.retirementExpense(age)
	}

	eb.Car = es.carExpense(age)
	eb.Housing = es.housingExpense(age, yearIndex)
	eb.Appliance = es.applianceExpense(age)
	eb.Child = es.childExpense(age)
	eb.Marriage = es.marriageExpense(age)
	eb.Care = es.careExpense(age)

	// Detailed living figures are treated as already covering these categories
	if es.detailed {
		eb.Car = decimal.Zero
		eb.Housing = decimal.Zero
		eb.Appliance = decimal.Zero
		eb.Child = decimal.Zero
	}

	return eb
}

func (es *ExpenseScheduler) retirementExpense(age int) decimal.Decimal {
	net := es.retirementLiving
	if age >= es.pensionStartAge {
		net = net.Sub(es.pension)
	}
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

func (es *ExpenseScheduler) carExpense(age int) decimal.Decimal {
	cs := es.car
	if cs == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for eventAge := cs.firstAge; eventAge <= age; eventAge += cs.frequency {
		if cs.financed {
			// overlapping loans stack
			if age < eventAge+cs.loanYears {
				total = total.Add(cs.payment)
			}
		} else if age == eventAge {
			total = total.Add(cs.price)
		}
	}
	return total
}

func (es *ExpenseScheduler) housingExpense(age, yearIndex int) decimal.Decimal {
	hs := es.housing
	if hs == nil {
		return decimal.Zero
	}
	total := decimal.Zero

	if yearIndex < hs.currentLoanYears {
		total = total.Add(hs.currentLoanAnnual)
	}

	if hs.hasPurchase {
		if age == hs.purchaseAge {
			total = total.Add(hs.downPayment)
		}
		if hs.purchaseYears > 0 && age >= hs.purchaseAge && age < hs.purchaseAge+hs.purchaseYears {
			total = total.Add(hs.purchasePayment)
		}
	}

	for _, r := range hs.renovations {
		if cycleHit(age, r.age, r.cycle) {
			total = total.Add(r.cost)
		}
	}
	return total
}

func (es *ExpenseScheduler) applianceExpense(age int) decimal.Decimal {
	total := decimal.Zero
	for _, a := range es.appliances {
		if cycleHit(age, a.firstAge, a.cycle) {
			total = total.Add(a.cost)
		}
	}
	return total
}

func (es *ExpenseScheduler) childExpense(age int) decimal.Decimal {
	total := decimal.Zero
	for _, birthAge := range es.childBirthAges {
		childAge := age - birthAge
		if childAge >= 0 && childAge < childCostYears {
			total = total.Add(es.childAnnualCost)
		}
	}
	return total
}

func (es *ExpenseScheduler) marriageExpense(age int) decimal.Decimal {
	if es.marriageTotal.IsZero() || age != es.marriageAge {
		return decimal.Zero
	}
	return es.marriageTotal
}

func (es *ExpenseScheduler) careExpense(age int) decimal.Decimal {
	if es.careYears <= 0 {
		return decimal.Zero
	}
	if age >= es.careStartAge && age < es.careStartAge+es.careYears {
		return es.careAnnual
	}
	return decimal.Zero
}
