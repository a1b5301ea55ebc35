package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	z := Standardize([]float64{1, 2, 3, 4, 5})

	var sum, sumSq float64
	for _, v := range z {
		sum += v
		sumSq += v * v
	}
	assert.InDelta(t, 0, sum/5, 1e-12)
	assert.InDelta(t, 1, sumSq/5, 1e-12)
}

func TestStandardizeZeroSpread(t *testing.T) {
	z := Standardize([]float64{0.7, 0.7, 0.7})
	assert.Equal(t, []float64{0, 0, 0}, z)

	assert.Equal(t, []float64{0, 0, 0, 0, 0}, Standardize([]float64{0.1, 0.1, 0.1, 0.1, 0.1}))
	assert.Equal(t, []float64{0, 0}, Standardize([]float64{-2.5, -2.5}))

	assert.Empty(t, Standardize(nil))
	assert.Equal(t, []float64{0}, Standardize([]float64{3.2}))
}

func TestClampExpectedReturn(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0.04, 0.04},
		{1.5, 1},
		{-2, -1},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClampExpectedReturn(tt.in))
	}
}

func TestFixedReturns(t *testing.T) {
	rs := FixedReturns(3, 0.04)
	assert.False(t, rs.Stochastic)
	assert.Equal(t, []float64{0.04, 0.04, 0.04}, rs.Portfolio)
	assert.Equal(t, 0.04, rs.At(10))
}

func TestAssetSeriesReproducible(t *testing.T) {
	gen := NewReturnGenerator(DefaultAssetTable())

	for idx := 0; idx < gen.Assets.Len(); idx++ {
		a := gen.AssetSeries(123456789, idx, 40, 0.04)
		b := gen.AssetSeries(123456789, idx, 40, 0.04)
		require.Len(t, a, 40)
		assert.Equal(t, a, b, "class %d not reproducible", idx)
	}

	// classes draw from independent streams
	assert.NotEqual(t, gen.AssetSeries(1, 0, 10, 0), gen.AssetSeries(1, 1, 10, 0))
}

func TestAssetSeriesWithinClipBounds(t *testing.T) {
	gen := NewReturnGenerator(DefaultAssetTable())
	classes := gen.Assets.Classes()

	for _, mu := range []float64{-0.5, 0, 0.04, 0.3} {
		for seed := int64(1); seed <= 20; seed++ {
			for idx, class := range classes {
				for _, r := range gen.AssetSeries(seed, idx, 60, mu) {
					assert.LessOrEqual(t, math.Abs(r-mu), clipSigmas*class.Volatility+1e-12,
						"class %s seed %d mu %v", class.Name, seed, mu)
				}
			}
		}
	}
}

func TestAssetSeriesClampsMu(t *testing.T) {
	gen := NewReturnGenerator(NewAssetTable(AssetClass{Name: "flat", Volatility: 0}))
	series := gen.AssetSeries(5, 0, 4, 3.0)
	assert.Equal(t, []float64{1, 1, 1, 1}, series)
}

func TestGeneratePortfolioAverage(t *testing.T) {
	gen := NewReturnGenerator(DefaultAssetTable())
	rs, err := gen.Generate(context.Background(), 99, 30, 0.05)
	require.NoError(t, err)
	require.True(t, rs.Stochastic)
	require.Len(t, rs.PerAsset, 5)
	require.Len(t, rs.Portfolio, 30)

	for i := 0; i < 30; i++ {
		var sum float64
		for a := 0; a < 5; a++ {
			sum += rs.PerAsset[a][i]
		}
		assert.InDelta(t, sum/5, rs.Portfolio[i], 1e-12)
	}

	again, err := gen.Generate(context.Background(), 99, 30, 0.05)
	require.NoError(t, err)
	assert.Equal(t, rs.Portfolio, again.Portfolio)
}

func TestGenerateSingleYearIsCentred(t *testing.T) {
	// one deviate standardizes to zero, so every class realizes mu
	gen := NewReturnGenerator(DefaultAssetTable())
	rs, err := gen.Generate(context.Background(), 7, 1, 0.03)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, rs.Portfolio[0], 1e-12)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewReturnGenerator(DefaultAssetTable())
	_, err := gen.Generate(ctx, 1, 10, 0.04)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateEmptyTable(t *testing.T) {
	gen := NewReturnGenerator(NewAssetTable())
	_, err := gen.Generate(context.Background(), 1, 10, 0.04)
	assert.Error(t, err)
}
