package harness

import (
	"time"
)

// Aggregated counts over a set of results.
type Summary struct {
	Suites   int
	Passed   int
	Failed   int
	Skipped  int
	Checks   int
	Failures int
	Duration time.Duration
}

// Aggregate results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, res := range results {
		s.Suites++
		s.Checks += res.Checks
		s.Failures += res.Failures
		s.Duration += res.Duration

		switch {
		case res.Skipped != "":
			s.Skipped++
		case res.Failed():
			s.Failed++
		default:
			s.Passed++
		}
	}
	return s
}

// Return true if every suite passed or was skipped.
func (s Summary) OK() bool {
	return s.Failed == 0
}
