package calculation

// Logger is the printf-style logging surface of the engine. internal/log
// provides the slog-backed implementation; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// SetLogger sets the logger for the engine and its net income calculator.
// A nil logger installs NopLogger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	if ce.NetIncomeCalc != nil {
		ce.NetIncomeCalc.Logger = l
	}
}

// debugf logs ledger detail only when the engine runs in debug mode
func (ce *CalculationEngine) debugf(format string, args ...any) {
	if !ce.Debug {
		return
	}
	ce.Logger.Debugf(format, args...)
}
