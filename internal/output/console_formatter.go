package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOUSEHOLD PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")

	if run := report.Run; run != nil && len(run.Records) > 0 {
		s := AnalyzeRun(run, report.retirementAge())
		first := run.Records[0]
		fmt.Fprintf(&buf, "Ages %d-%d (%s): Final=%s Peak=%s@%d\n",
			first.Age, s.FinalAge, run.Scenario,
			FormatYen(s.FinalTotalAssets), FormatYen(s.PeakTotalAssets), s.PeakAge)
		if s.ReachesRetirement {
			fmt.Fprintf(&buf, "  AtRetirement=%s\n", FormatYen(s.AssetsAtRetirement))
		}
		if s.FirstShortfallAge != nil {
			fmt.Fprintf(&buf, "  Shortfall from age %d\n", *s.FirstShortfallAge)
		}
	}

	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintf(&buf, "Monte Carlo (%d runs): Success=%s Bankruptcy=%s Median=%s\n",
			mc.NumSimulations, FormatRate(mc.SuccessRate), FormatRate(mc.BankruptcyRate), FormatYen(mc.MedianFinalAssets))
	}
	return buf.Bytes(), nil
}
