package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple CSV output: one row per simulated year,
// or the Monte Carlo summary when the report has no single run.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	if report.Run == nil && report.MonteCarlo != nil {
		if err := (&MonteCarloCSVReport{Results: report.MonteCarlo}).WriteSummaryCSV(buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(buf)
	header := []string{"Age", "Year", "Income", "TotalExpense", "ReturnRate", "Savings", "InvestedPrincipal", "TotalAssets"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if report.Run != nil {
		for _, r := range report.Run.Records {
			row := []string{
				intToString(r.Age),
				intToString(r.Year),
				r.Income.StringFixed(0),
				r.TotalExpense.StringFixed(0),
				r.ReturnRate.StringFixed(6),
				r.Savings.StringFixed(0),
				r.InvestedPrincipal.StringFixed(0),
				r.TotalAssets.StringFixed(0),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
