package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter renders a report to bytes. Format must not write anywhere itself.
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name is the canonical format name used on the command line.
	Name() string
}

// registration ties a formatter to its saved-file extension and its synonyms
type registration struct {
	formatter Formatter
	extension string
	aliases   []string
}

var registry = []registration{
	{ConsoleVerboseFormatter{}, "txt", []string{"console-verbose", "verbose", "text"}},
	{ConsoleFormatter{}, "txt", []string{"summary", "lite"}},
	{CSVSummarizer{}, "csv", []string{"csv-summary"}},
	{CSVDetailedExporter{}, "csv", []string{"csv-detailed"}},
	{JSONFormatter{}, "json", []string{"json-pretty"}},
	{HTMLFormatter{}, "html", []string{"html-report"}},
}

func lookup(name string) (registration, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, r := range registry {
		if r.formatter.Name() == n {
			return r, true
		}
		for _, alias := range r.aliases {
			if alias == n {
				return r, true
			}
		}
	}
	return registration{}, false
}

// GetFormatterByName returns the formatter for a name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	if r, ok := lookup(name); ok {
		return r.formatter
	}
	return nil
}

// NormalizeFormatName resolves an alias to its canonical name. Unknown names are
// returned lowercased.
func NormalizeFormatName(name string) string {
	if r, ok := lookup(name); ok {
		return r.formatter.Name()
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.formatter.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns every alias, sorted.
func AvailableFormatAliases() []string {
	var aliases []string
	for _, r := range registry {
		aliases = append(aliases, r.aliases...)
	}
	sort.Strings(aliases)
	return aliases
}

// FileExtension returns the extension used when saving a format; unknown names get "txt".
func FileExtension(name string) string {
	if r, ok := lookup(name); ok {
		return r.extension
	}
	return "txt"
}

// WriteFormatted renders the report and saves it as lifeplan_report_<timestamp>.<ext> in dir.
func WriteFormatted(f Formatter, report *Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	name := fmt.Sprintf("lifeplan_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
