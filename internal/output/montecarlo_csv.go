package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo results
type MonteCarloCSVReport struct {
	Results *domain.MonteCarloResults
}

// WriteSummaryCSV writes aggregate statistics
func (m *MonteCarloCSVReport) WriteSummaryCSV(out io.Writer) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	r := m.Results
	summaryData := [][]string{
		{"Success Rate", FormatRate(r.SuccessRate), "Share of runs whose total assets never turned negative"},
		{"Bankruptcy Rate", FormatRate(r.BankruptcyRate), "Share of runs with negative total assets in any year"},
		{"Median Final Assets", r.MedianFinalAssets.StringFixed(0), "Median total assets at the final age"},
		{"10th Percentile", r.PercentileRanges.P10.StringFixed(0), "Worst 10% of runs"},
		{"25th Percentile", r.PercentileRanges.P25.StringFixed(0), "Below average runs"},
		{"75th Percentile", r.PercentileRanges.P75.StringFixed(0), "Above average runs"},
		{"90th Percentile", r.PercentileRanges.P90.StringFixed(0), "Best 10% of runs"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of simulations run"},
		{"Base Seed", strconv.FormatInt(r.BaseSeed, 10), "Seed of the first run"},
		{"Horizon Years", strconv.Itoa(r.HorizonYears), "Simulated years per run"},
	}

	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDetailedCSV writes one row per simulation
func (m *MonteCarloCSVReport) WriteDetailedCSV(out io.Writer) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"SimulationID", "Seed", "FinalTotalAssets", "Bankrupt", "FirstShortfallAge"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, sim := range m.Results.Simulations {
		shortfall := ""
		if sim.FirstShortfallAge != nil {
			shortfall = strconv.Itoa(*sim.FirstShortfallAge)
		}
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(sim.Seed, 10),
			sim.FinalTotalAssets.StringFixed(0),
			boolToString(sim.Bankrupt),
			shortfall,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write simulation row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// GenerateAllCSVReports creates the summary and detailed CSV files in a single directory
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"monte_carlo_summary.csv", m.WriteSummaryCSV},
		{"monte_carlo_detailed.csv", m.WriteDetailedCSV},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(outputDir, f.name), f.write); err != nil {
			return fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()
	return write(file)
}
