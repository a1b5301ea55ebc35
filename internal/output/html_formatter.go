package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"yen":        FormatYen,
	"rate":       FormatRate,
	"categories": ExpenseCategories,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	data := struct {
		*Report
		Summary        RunSummary
		AssumptionList []string
		CategoryNames  []string
	}{
		Report:         report,
		Summary:        AnalyzeRun(report.Run, report.retirementAge()),
		AssumptionList: assumptions,
		CategoryNames:  ExpenseCategoryNames,
	}

	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
