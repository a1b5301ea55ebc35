package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lifeplan/cashflow-simulator/internal/domain"
)

// Report is the input to every formatter. Run, MonteCarlo or both may be set.
type Report struct {
	Params      *domain.InputParameters   `json:"input,omitempty"`
	Run         *domain.SimulationRun     `json:"run,omitempty"`
	MonteCarlo  *domain.MonteCarloResults `json:"monte_carlo,omitempty"`
	Assumptions []string                  `json:"assumptions,omitempty"`
}

// NewReport builds a report and fills in the assumptions list from the inputs
func NewReport(params *domain.InputParameters, run *domain.SimulationRun, mc *domain.MonteCarloResults) *Report {
	r := &Report{Params: params, Run: run, MonteCarlo: mc}
	if params != nil {
		r.Assumptions = GenerateAssumptions(params)
	}
	return r
}

// retirementAge returns the configured retirement age, or 0 when unknown
func (r *Report) retirementAge() int {
	if r.Params == nil {
		return 0
	}
	return r.Params.RetirementAge
}

// GenerateReport renders the report with the named formatter and writes it to w.
func GenerateReport(w io.Writer, report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}
