package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
)

// ConsoleVerboseFormatter renders the full console report: assumptions, summary, ledger
// and expense breakdown, plus the Monte Carlo section when present.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "HOUSEHOLD CASH FLOW PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if run := report.Run; run != nil {
		writeRunSummary(&buf, run, report.retirementAge())
		writeLedgerTable(&buf, run)
		writeExpenseTable(&buf, run)
	}

	if report.MonteCarlo != nil {
		writeMonteCarloSummary(&buf, report.MonteCarlo)
	}

	return buf.Bytes(), nil
}

func writeRunSummary(w io.Writer, run *domain.SimulationRun, retirementAge int) {
	s := AnalyzeRun(run, retirementAge)

	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Run ID:               %s\n", run.ID)
	if run.Scenario == domain.InterestScenarioStochastic {
		fmt.Fprintf(w, "Interest scenario:    %s (seed %d)\n", run.Scenario, run.Seed)
	} else {
		fmt.Fprintf(w, "Interest scenario:    %s\n", run.Scenario)
	}
	if len(run.Records) > 0 {
		first := run.Records[0]
		fmt.Fprintf(w, "Projection:           age %d to %d (%d-%d)\n", first.Age, s.FinalAge, first.Year, run.Final().Year)
	}
	fmt.Fprintf(w, "Final total assets:   %s\n", FormatYen(s.FinalTotalAssets))
	fmt.Fprintf(w, "Peak total assets:    %s (age %d)\n", FormatYen(s.PeakTotalAssets), s.PeakAge)
	if s.ReachesRetirement {
		fmt.Fprintf(w, "Assets at retirement: %s\n", FormatYen(s.AssetsAtRetirement))
	}
	if s.RetiredYears > 0 {
		fmt.Fprintf(w, "Years in retirement:  %d\n", s.RetiredYears)
	}
	fmt.Fprintf(w, "Lifetime income:      %s\n", FormatYen(s.LifetimeIncome))
	fmt.Fprintf(w, "Lifetime expense:     %s\n", FormatYen(s.LifetimeExpense))
	if s.LargestCategory != "" {
		fmt.Fprintf(w, "Largest expense:      %s (%s)\n", s.LargestCategory, FormatYen(s.LargestCategorySum))
	}
	if s.FirstShortfallAge != nil {
		fmt.Fprintf(w, "WARNING: total assets turn negative at age %d\n", *s.FirstShortfallAge)
	} else {
		fmt.Fprintln(w, "Total assets stay non-negative for the whole projection")
	}
	fmt.Fprintln(w)
}

func writeLedgerTable(w io.Writer, run *domain.SimulationRun) {
	fmt.Fprintln(w, "YEARLY LEDGER")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Age\tYear\tIncome\tExpense\tReturn\tSavings\tInvestments\tTotal Assets\t")
	for _, r := range run.Records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Age, r.Year,
			FormatYen(r.Income),
			FormatYen(r.TotalExpense),
			FormatRate(r.ReturnRate),
			FormatYen(r.Savings),
			FormatYen(r.InvestedPrincipal),
			FormatYen(r.TotalAssets))
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func writeExpenseTable(w io.Writer, run *domain.SimulationRun) {
	fmt.Fprintln(w, "EXPENSE BREAKDOWN")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"Age"}
	for _, name := range ExpenseCategoryNames {
		header = append(header, strings.ToUpper(name[:1])+name[1:])
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, r := range run.Records {
		cells := []string{intToString(r.Age)}
		for _, amount := range ExpenseCategories(r.Expenses) {
			cells = append(cells, FormatYen(amount))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func writeMonteCarloSummary(w io.Writer, mc *domain.MonteCarloResults) {
	fmt.Fprintln(w, "MONTE CARLO ANALYSIS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Simulations:          %d (base seed %d, %d years each)\n", mc.NumSimulations, mc.BaseSeed, mc.HorizonYears)
	fmt.Fprintf(w, "Success rate:         %s\n", FormatRate(mc.SuccessRate))
	fmt.Fprintf(w, "Bankruptcy rate:      %s\n", FormatRate(mc.BankruptcyRate))
	fmt.Fprintf(w, "Median final assets:  %s\n", FormatYen(mc.MedianFinalAssets))
	fmt.Fprintln(w, "Final total assets by percentile:")
	fmt.Fprintf(w, "  P10: %s\n", FormatYen(mc.PercentileRanges.P10))
	fmt.Fprintf(w, "  P25: %s\n", FormatYen(mc.PercentileRanges.P25))
	fmt.Fprintf(w, "  P50: %s\n", FormatYen(mc.PercentileRanges.P50))
	fmt.Fprintf(w, "  P75: %s\n", FormatYen(mc.PercentileRanges.P75))
	fmt.Fprintf(w, "  P90: %s\n", FormatYen(mc.PercentileRanges.P90))
	fmt.Fprintln(w)
}
