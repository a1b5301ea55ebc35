package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMonteCarloSimulations is the batch size when none is configured
	DefaultMonteCarloSimulations = 100
	// DefaultMonteCarloConcurrency bounds concurrent runs when none is configured
	DefaultMonteCarloConcurrency = 8
	// monteCarloSeedStride separates the base seeds of consecutive runs
	monteCarloSeedStride = 7919
)

// MonteCarloConfig holds configuration for a batch of stochastic runs
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64 // base seed; 0 uses the input seed or domain.DefaultSeed
	Concurrency    int
}

// RunSeed returns the seed of the k-th run in a batch
func RunSeed(baseSeed int64, k int) int64 {
	return baseSeed + int64(k)*monteCarloSeedStride
}

// RunMonteCarlo runs NumSimulations stochastic projections of the same inputs and
// aggregates their final total assets. A run is bankrupt when any year's total assets are negative.
func (ce *CalculationEngine) RunMonteCarlo(ctx context.Context, params *domain.InputParameters, config MonteCarloConfig) (*domain.MonteCarloResults, error) {
	if params == nil {
		return nil, ErrMissingInput
	}
	if params.HorizonYears() <= 0 {
		return nil, fmt.Errorf("%w: initial age %d, end age %d", ErrInvalidHorizon, params.InitialAge, params.EndAge)
	}

	if config.NumSimulations <= 0 {
		config.NumSimulations = DefaultMonteCarloSimulations
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultMonteCarloConcurrency
	}
	if config.Seed == 0 {
		config.Seed = params.EffectiveSeed()
	}

	startYear := params.StartYear
	if startYear == 0 {
		startYear = nowFunc().Year()
	}

	ce.Logger.Infof("running %d Monte Carlo simulations (base seed %d, %d workers)",
		config.NumSimulations, config.Seed, config.Concurrency)

	outcomes := make([]domain.SimulationOutcome, config.NumSimulations)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)

	for k := 0; k < config.NumSimulations; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			seed := RunSeed(config.Seed, k)
			runParams := *params
			runParams.InterestScenario = domain.InterestScenarioStochastic
			runParams.Seed = &seed
			runParams.StartYear = startYear

			run, err := ce.simulate(gctx, &runParams)
			if err != nil {
				return fmt.Errorf("simulation %d (seed %d): %w", k, seed, err)
			}
			outcomes[k] = summarizeRun(seed, run)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finals := make([]decimal.Decimal, len(outcomes))
	for i, o := range outcomes {
		finals[i] = o.FinalTotalAssets
	}
	sortBalances(finals)

	success := calculateSuccessRate(outcomes)
	results := &domain.MonteCarloResults{
		Simulations:       outcomes,
		SuccessRate:       success,
		BankruptcyRate:    decimal.NewFromInt(1).Sub(success),
		MedianFinalAssets: finals[len(finals)/2],
		PercentileRanges:  calculatePercentileRanges(finals),
		NumSimulations:    config.NumSimulations,
		BaseSeed:          config.Seed,
		HorizonYears:      params.HorizonYears(),
	}

	ce.Logger.Infof("Monte Carlo complete: success rate %s%%, median final assets %s",
		results.SuccessRate.Mul(decimal.NewFromInt(100)).StringFixed(1), results.MedianFinalAssets.StringFixed(0))
	return results, nil
}

func summarizeRun(seed int64, run *domain.SimulationRun) domain.SimulationOutcome {
	outcome := domain.SimulationOutcome{Seed: seed}
	if final := run.Final(); final != nil {
		outcome.FinalTotalAssets = final.TotalAssets
	}
	if shortfall := run.FirstShortfall(); shortfall != nil {
		age := shortfall.Age
		outcome.Bankrupt = true
		outcome.FirstShortfallAge = &age
	}
	return outcome
}

// calculateSuccessRate returns the share of runs that never went bankrupt
func calculateSuccessRate(outcomes []domain.SimulationOutcome) decimal.Decimal {
	if len(outcomes) == 0 {
		return decimal.Zero
	}
	successCount := 0
	for _, o := range outcomes {
		if !o.Bankrupt {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(outcomes))))
}

// calculatePercentileRanges reads percentiles off ascending sorted balances
func calculatePercentileRanges(sorted []decimal.Decimal) domain.PercentileRanges {
	n := len(sorted)
	return domain.PercentileRanges{
		P10: sorted[n/10],
		P25: sorted[n/4],
		P50: sorted[n/2],
		P75: sorted[3*n/4],
		P90: sorted[9*n/10],
	}
}

// sortBalances sorts balances in ascending order
func sortBalances(balances []decimal.Decimal) {
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].LessThan(balances[j])
	})
}
