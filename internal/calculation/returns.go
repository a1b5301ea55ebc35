package calculation

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

const (
	// assetSeedStride separates the per-class generator seeds
	assetSeedStride = 101
	// clipSigmas bounds a realized return to mu ± clipSigmas*σ
	clipSigmas = 3.0
	// zeroSpread is the relative sd below which a sample counts as constant
	zeroSpread = 1e-12
)

// AssetClass is one entry of the portfolio used for stochastic returns
type AssetClass struct {
	Name       string
	Volatility float64 // annual standard deviation
}

// AssetTable is the immutable list of asset classes. The portfolio return is the
// equal-weighted average across classes.
type AssetTable struct {
	classes []AssetClass
}

// NewAssetTable copies the given classes into a table
func NewAssetTable(classes ...AssetClass) AssetTable {
	c := make([]AssetClass, len(classes))
	copy(c, classes)
	return AssetTable{classes: c}
}

// DefaultAssetTable returns the five-class household portfolio
func DefaultAssetTable() AssetTable {
	return NewAssetTable(
		AssetClass{Name: "equity_jp_us", Volatility: 0.20},
		AssetClass{Name: "fund_foreign", Volatility: 0.18},
		AssetClass{Name: "ideco_foreign", Volatility: 0.18},
		AssetClass{Name: "bond_dev", Volatility: 0.04},
		AssetClass{Name: "btc", Volatility: 0.70},
	)
}

// Len returns the number of classes
func (t AssetTable) Len() int { return len(t.classes) }

// Classes returns a copy of the classes
func (t AssetTable) Classes() []AssetClass {
	c := make([]AssetClass, len(t.classes))
	copy(c, t.classes)
	return c
}

// ReturnSeries holds the realized yearly returns for one run
type ReturnSeries struct {
	Mu         float64
	Stochastic bool
	PerAsset   [][]float64 // [classIndex][year], nil for fixed
	Portfolio  []float64   // [year]
}

// At returns the portfolio return of a year index; out of range yields mu
func (rs *ReturnSeries) At(year int) float64 {
	if year < 0 || year >= len(rs.Portfolio) {
		return rs.Mu
	}
	return rs.Portfolio[year]
}

// FixedReturns returns a series realizing mu every year
func FixedReturns(horizon int, mu float64) *ReturnSeries {
	mu = ClampExpectedReturn(mu)
	if horizon < 0 {
		horizon = 0
	}
	portfolio := make([]float64, horizon)
	for i := range portfolio {
		portfolio[i] = mu
	}
	return &ReturnSeries{Mu: mu, Portfolio: portfolio}
}

// ClampExpectedReturn limits mu to [-1, 1]; NaN and ±Inf become 0
func ClampExpectedReturn(mu float64) float64 {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, mu))
}

// Standardize rescales xs to zero mean and unit population variance.
// Values with no spread are centred to exactly zero.
func Standardize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}

	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	sd := math.Sqrt(sq / n)
	// constant input leaves only rounding residue in sd
	if math.IsNaN(sd) || sd <= zeroSpread*math.Max(1, math.Abs(mean)) {
		return out
	}

	for i, x := range xs {
		out[i] = (x - mean) / sd
	}
	return out
}

// ReturnGenerator produces seeded stochastic return series
type ReturnGenerator struct {
	Assets AssetTable
}

// NewReturnGenerator creates a generator over an asset table
func NewReturnGenerator(assets AssetTable) *ReturnGenerator {
	return &ReturnGenerator{Assets: assets}
}

// AssetSeed returns the generator seed of one asset class
func AssetSeed(baseSeed int64, classIndex int) int64 {
	return baseSeed + int64(classIndex)*assetSeedStride
}

// AssetSeries generates the clipped yearly returns of one class. It depends only
// on (baseSeed, classIndex, horizon, mu, volatility).
func (rg *ReturnGenerator) AssetSeries(baseSeed int64, classIndex, horizon int, mu float64) []float64 {
	if horizon <= 0 || classIndex < 0 || classIndex >= rg.Assets.Len() {
		return nil
	}
	sigma := rg.Assets.classes[classIndex].Volatility
	mu = ClampExpectedReturn(mu)

	sampler := NewGaussianSampler(NewMulberry32(AssetSeed(baseSeed, classIndex)))
	z := Standardize(sampler.Sample(horizon))

	lo := mu - clipSigmas*sigma
	hi := mu + clipSigmas*sigma
	series := make([]float64, horizon)
	for i, zi := range z {
		series[i] = math.Max(lo, math.Min(hi, mu+sigma*zi))
	}
	return series
}

// Generate builds every class series concurrently and averages them into the portfolio return
func (rg *ReturnGenerator) Generate(ctx context.Context, baseSeed int64, horizon int, mu float64) (*ReturnSeries, error) {
	mu = ClampExpectedReturn(mu)
	if horizon < 0 {
		horizon = 0
	}
	n := rg.Assets.Len()
	if n == 0 {
		return nil, fmt.Errorf("asset table is empty")
	}

	perAsset := make([][]float64, n)
	g, gctx := errgroup.WithContext(ctx)
	for idx := 0; idx < n; idx++ {
		idx := idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perAsset[idx] = rg.AssetSeries(baseSeed, idx, horizon, mu)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to generate asset returns: %w", err)
	}

	w := 1.0 / float64(n)
	portfolio := make([]float64, horizon)
	for i := range portfolio {
		var acc float64
		for a := 0; a < n; a++ {
			acc += w * perAsset[a][i]
		}
		portfolio[i] = acc
	}

	return &ReturnSeries{
		Mu:         mu,
		Stochastic: true,
		PerAsset:   perAsset,
		Portfolio:  portfolio,
	}, nil
}
