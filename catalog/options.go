package catalog

import (
	"time"
)

// Logger is the structured logger used by a Catalog. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Catalog.
type Option func(*Catalog) error

// WithClock sets the clock the Catalog uses to stamp loan dates and events.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) error {
		if now == nil {
			return ErrNilOption
		}

		c.now = now

		return nil
	}
}

// WithRandom sets the source RandomBook uses to pick an index in [0, n).
// Defaults to math/rand/v2 IntN.
func WithRandom(intN func(n int) int) Option {
	return func(c *Catalog) error {
		if intN == nil {
			return ErrNilOption
		}

		c.intN = intN

		return nil
	}
}

// WithLogger sets the logger for the Catalog.
//
// Debug level: members and documents added
// Info level: loans started and ended
// Warn level: rejected operations (business rule violations)
// Error level: events the EventRecorder could not take.
func WithLogger(logger Logger) Option {
	return func(c *Catalog) error {
		c.logger = logger
		return nil
	}
}

// WithEventRecorder sets the recorder that receives every domain event of the Catalog.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(c *Catalog) error {
		c.recorder = recorder
		return nil
	}
}
