package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the clock used to resolve an unset start year (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
