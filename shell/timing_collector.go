package shell

import "time"

// TimingCollector accumulates the time query handlers spend in each phase.
// Nil fields are skipped, so the zero value collects nothing.
type TimingCollector struct {
	QueryTime     *time.Duration
	UnmarshalTime *time.Duration
	BusinessTime  *time.Duration
}

// NewTimingCollector creates a TimingCollector that adds to the given durations.
func NewTimingCollector(queryTime, unmarshalTime, businessTime *time.Duration) TimingCollector {
	return TimingCollector{
		QueryTime:     queryTime,
		UnmarshalTime: unmarshalTime,
		BusinessTime:  businessTime,
	}
}

// RecordQuery records journal query time.
func (t TimingCollector) RecordQuery(duration time.Duration) {
	if t.QueryTime != nil {
		*t.QueryTime += duration
	}
}

// RecordUnmarshal records event unmarshaling time.
func (t TimingCollector) RecordUnmarshal(duration time.Duration) {
	if t.UnmarshalTime != nil {
		*t.UnmarshalTime += duration
	}
}

// RecordBusiness records projection time.
func (t TimingCollector) RecordBusiness(duration time.Duration) {
	if t.BusinessTime != nil {
		*t.BusinessTime += duration
	}
}
