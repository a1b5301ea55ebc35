package output

import (
	"bytes"
	"encoding/csv"
	"strings"
)

// CSVDetailedExporter provides every ledger column per year, or one row per
// Monte Carlo run when the report has no single run.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	if report.Run == nil && report.MonteCarlo != nil {
		if err := (&MonteCarloCSVReport{Results: report.MonteCarlo}).WriteDetailedCSV(buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(buf)
	header := []string{"Age", "Year", "SpouseAge", "SelfIncome", "SpouseIncome", "InvestmentIncome", "Income", "ReturnRate"}
	for _, name := range ExpenseCategoryNames {
		header = append(header, strings.ToUpper(name[:1])+name[1:])
	}
	header = append(header, "TotalExpense", "Savings", "InvestedPrincipal", "NISA", "IDeCo", "TotalAssets")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if report.Run != nil {
		for _, r := range report.Run.Records {
			spouseAge := ""
			if r.SpouseAge != nil {
				spouseAge = intToString(*r.SpouseAge)
			}
			row := []string{
				intToString(r.Age),
				intToString(r.Year),
				spouseAge,
				r.IncomeDetail.Self.StringFixed(0),
				r.IncomeDetail.Spouse.StringFixed(0),
				r.IncomeDetail.Investment.StringFixed(0),
				r.Income.StringFixed(0),
				r.ReturnRate.StringFixed(6),
			}
			for _, amount := range ExpenseCategories(r.Expenses) {
				row = append(row, amount.StringFixed(0))
			}
			row = append(row,
				r.TotalExpense.StringFixed(0),
				r.Savings.StringFixed(0),
				r.InvestedPrincipal.StringFixed(0),
				r.NISA.StringFixed(0),
				r.IDeCo.StringFixed(0),
				r.TotalAssets.StringFixed(0),
			)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
