package calculation

import (
	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/lifeplan/cashflow-simulator/pkg/yen"
	"github.com/shopspring/decimal"
)

var minusOne = decimal.NewFromInt(-1)

// ledgerPrecision caps sub-yen digits carried by the running ledger
const ledgerPrecision = 10

// ledgerState is the unrounded running balance of one simulation
type ledgerState struct {
	savings   decimal.Decimal
	principal decimal.Decimal
	nisa      decimal.Decimal
	ideco     decimal.Decimal
}

// drawEmergency moves principal into savings until savings reach floor or
// principal runs out, and returns the amount moved. A zero floor still
// covers a negative savings balance.
func (s *ledgerState) drawEmergency(floor decimal.Decimal) yen.Money {
	savings := yen.NewMoneyFromDecimal(s.savings)
	if !savings.LessThan(floor) {
		return yen.Zero()
	}
	principal := yen.NewMoneyFromDecimal(s.principal)
	shortfall := yen.NewMoneyFromDecimal(floor).Sub(savings)
	draw := yen.Min(shortfall, yen.Max(principal, yen.Zero()))
	s.savings = savings.Add(draw).Decimal
	s.principal = principal.Sub(draw).Decimal
	return draw
}

// earner is one person's salary stream
type earner struct {
	main   decimal.Decimal
	side   decimal.Decimal
	growth decimal.Decimal // running (1+g)^i
	rate   decimal.Decimal // 1+g
}

func newEarner(main, side, growthRate float64) *earner {
	return &earner{
		main:   yen.NonNegative(main),
		side:   yen.NonNegative(side),
		growth: decimal.NewFromInt(1),
		rate:   decimal.NewFromInt(1).Add(yen.FromFloat(growthRate)),
	}
}

// grossFor returns main*(1+g)^i + side and advances the growth factor
func (e *earner) grossFor(yearIndex int) decimal.Decimal {
	if yearIndex > 0 {
		e.growth = e.growth.Mul(e.rate)
	}
	return e.main.Mul(e.growth).Round(ledgerPrecision).Add(e.side)
}

// GenerateYearlyLedger runs the sequential year-by-year cash flow.
// Records are rounded to whole yen; the running ledger is not. The realized
// return is floored at -100%, so a year's investment loss never exceeds the
// principal held. Whenever savings fall below the emergency fund floor,
// including a floor of zero, principal is drawn to cover the gap.
func (ce *CalculationEngine) GenerateYearlyLedger(params *domain.InputParameters, returns *ReturnSeries, startYear int) []domain.YearRecord {
	horizon := params.HorizonYears()
	if horizon <= 0 {
		return nil
	}

	scheduler := NewExpenseScheduler(params)
	self := newEarner(params.MainJobIncomeGross, params.SideJobIncomeGross, params.IncomeGrowthRate)
	spouse := newEarner(params.SpouseMainJobIncomeGross, params.SpouseSideJobIncomeGross, params.SpouseIncomeGrowthRate)

	contribution := yen.NonNegative(params.YearlyRecurringInvestment).Add(yen.NonNegative(params.YearlySpotInvestment))
	monthlySavingsAnnual := annualize(yen.FromFloat(params.MonthlySavings))
	floor := yen.NonNegative(params.EmergencyFund)

	state := ledgerState{
		savings:   yen.FromFloat(params.CurrentSavings),
		principal: yen.NonNegative(params.CurrentInvestments),
		nisa:      decimal.Zero,
		ideco:     decimal.Zero,
	}

	records := make([]domain.YearRecord, 0, horizon)
	for i := 0; i < horizon; i++ {
		age := params.InitialAge + i
		retired := age >= params.RetirementAge

		// 1-2. Income
		selfGross := self.grossFor(i)
		spouseGross := spouse.grossFor(i)
		if retired {
			selfGross = decimal.Zero
			spouseGross = decimal.Zero
		}
		selfNet := ce.NetIncomeCalc.NetAnnual(selfGross)
		spouseNet := ce.NetIncomeCalc.NetAnnual(spouseGross)
		if ce.Debug && i == 0 {
			ce.NetIncomeCalc.LogBreakdown("self", ce.NetIncomeCalc.Breakdown(selfGross))
			ce.NetIncomeCalc.LogBreakdown("spouse", ce.NetIncomeCalc.Breakdown(spouseGross))
		}
		annualIncome := selfNet.Add(spouseNet)

		// 3. Expenses
		expenses := scheduler.ExpensesFor(age, i)
		totalExpense := expenses.Total()

		// 4. Investment return on principal held at the start of the year
		returnRate := decimal.NewFromFloat(returns.At(i))
		if returnRate.LessThan(minusOne) {
			returnRate = minusOne
		}
		investmentIncome := state.principal.Mul(returnRate).Round(ledgerPrecision)
		state.principal = state.principal.Add(investmentIncome)
		annualIncome = annualIncome.Add(investmentIncome)

		// 5. Contributions
		state.principal = state.principal.Add(contribution)

		// 6. Cash flow
		cashFlow := annualIncome.Sub(totalExpense).Sub(contribution).Add(monthlySavingsAnnual)
		state.savings = state.savings.Add(cashFlow)

		// 7. Emergency fund draw
		if draw := state.drawEmergency(floor); draw.IsPositive() {
			ce.debugf("age %d: drew %s from investments to restore emergency fund", age, draw)
		}

		// 8-9. Emit rounded record
		record := ce.buildYearRecord(params, state, age, startYear+i, returnRate, annualIncome, selfNet, spouseNet, investmentIncome, expenses)
		records = append(records, record)

		ce.debugf("age %d (%d): income=%s expense=%s savings=%s principal=%s total=%s",
			age, record.Year,
			record.Income.StringFixed(0), record.TotalExpense.StringFixed(0),
			record.Savings.StringFixed(0), record.InvestedPrincipal.StringFixed(0),
			record.TotalAssets.StringFixed(0))
	}

	return records
}

func (ce *CalculationEngine) buildYearRecord(params *domain.InputParameters, state ledgerState, age, year int,
	returnRate, annualIncome, selfNet, spouseNet, investmentIncome decimal.Decimal, expenses domain.ExpenseBreakdown) domain.YearRecord {

	rounded := expenses.Rounded()
	savings := whole(state.savings)
	principal := whole(state.principal)
	nisa := whole(state.nisa)
	ideco := whole(state.ideco)

	record := domain.YearRecord{
		Age:    age,
		Year:   year,
		Income: whole(annualIncome),
		IncomeDetail: domain.IncomeDetail{
			Self:       whole(selfNet),
			Spouse:     whole(spouseNet),
			Investment: whole(investmentIncome),
		},
		ReturnRate:        returnRate,
		Expenses:          rounded,
		TotalExpense:      rounded.Total(),
		Savings:           savings,
		InvestedPrincipal: principal,
		NISA:              nisa,
		IDeCo:             ideco,
		TotalAssets:       savings.Add(nisa).Add(ideco).Add(principal),
		AssetAllocation: domain.AssetAllocation{
			Cash:       savings,
			Investment: principal,
			NISA:       nisa,
			IDeCo:      ideco,
		},
	}

	if params.SpouseInitialAge > 0 {
		spouseAge := params.SpouseInitialAge + (age - params.InitialAge)
		record.SpouseAge = &spouseAge
	}
	return record
}

// whole rounds a ledger amount to whole yen for emission
func whole(d decimal.Decimal) decimal.Decimal {
	return yen.NewMoneyFromDecimal(d).Whole().Decimal
}
