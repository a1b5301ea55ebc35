package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifeplan/cashflow-simulator/internal/domain"
)

var (
	// ErrMissingInput is returned when no input parameters are supplied
	ErrMissingInput = errors.New("input parameters are required")
	// ErrInvalidHorizon is returned when the end age precedes the initial age
	ErrInvalidHorizon = errors.New("end age must not be before initial age")
)

// CalculationEngine orchestrates the household projection
type CalculationEngine struct {
	NetIncomeCalc *NetIncomeCalculator
	Returns       *ReturnGenerator
	Debug         bool // Log the net income breakdown and every ledger year
	Logger        Logger
}

// NewCalculationEngine creates an engine with the default tax schedule and asset table
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(DefaultTaxSchedule(), DefaultAssetTable())
}

// NewCalculationEngineWithConfig creates an engine with a custom tax schedule and asset table
func NewCalculationEngineWithConfig(schedule TaxSchedule, assets AssetTable) *CalculationEngine {
	logger := NopLogger{}
	return &CalculationEngine{
		NetIncomeCalc: NewNetIncomeCalculatorWithSchedule(schedule, logger),
		Returns:       NewReturnGenerator(assets),
		Logger:        logger,
	}
}

// Simulate runs one complete projection from initialAge to endAge inclusive
func (ce *CalculationEngine) Simulate(ctx context.Context, params *domain.InputParameters) (*domain.SimulationRun, error) {
	run, err := ce.simulate(ctx, params)
	if err != nil {
		return nil, err
	}

	run.ID = uuid.NewString()
	final := run.Final()
	ce.Logger.Infof("simulation %s complete: %d years, %s scenario, final total assets %s",
		run.ID, len(run.Records), run.Scenario, final.TotalAssets.StringFixed(0))
	if shortfall := run.FirstShortfall(); shortfall != nil {
		ce.Logger.Warnf("simulation %s: total assets turn negative at age %d", run.ID, shortfall.Age)
	}
	return run, nil
}

// simulate is Simulate without run identity or summary logging
func (ce *CalculationEngine) simulate(ctx context.Context, params *domain.InputParameters) (*domain.SimulationRun, error) {
	if params == nil {
		return nil, ErrMissingInput
	}
	horizon := params.HorizonYears()
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: initial age %d, end age %d", ErrInvalidHorizon, params.InitialAge, params.EndAge)
	}

	run := &domain.SimulationRun{
		Scenario:  domain.InterestScenarioFixed,
		StartYear: params.StartYear,
	}
	if run.StartYear == 0 {
		run.StartYear = nowFunc().Year()
	}

	var returns *ReturnSeries
	if params.IsStochastic() {
		seed := params.EffectiveSeed()
		var err error
		returns, err = ce.Returns.Generate(ctx, seed, horizon, params.ExpectedReturn)
		if err != nil {
			return nil, fmt.Errorf("failed to generate stochastic returns: %w", err)
		}
		run.Scenario = domain.InterestScenarioStochastic
		run.Seed = seed
	} else {
		returns = FixedReturns(horizon, params.ExpectedReturn)
	}

	run.Records = ce.GenerateYearlyLedger(params, returns, run.StartYear)
	return run, nil
}
