// Package poll implements adaptive polling with exponential backoff.
//
// Transaction processing in a custody workspace is bursty: a transfer may
// settle in seconds or sit in an approval queue for minutes. The poller
// starts at a short interval, backs off multiplicatively while nothing
// changes, and snaps back to the initial interval as soon as the observed
// state moves. Jitter is added to every wait to prevent thundering herd
// when many clients watch the same workspace.
package poll

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultInitialInterval = 2 * time.Second
	DefaultMaxBackoff      = 30 * time.Second
	DefaultMultiplier      = 1.5
	DefaultJitterFactor    = 0.3
)

// Config controls the backoff schedule. Zero fields take the package
// defaults.
type Config struct {
	InitialInterval time.Duration
	MaxBackoff      time.Duration
	Multiplier      float64
	JitterFactor    float64
}

func (c Config) withDefaults() Config {
	if c.InitialInterval <= 0 {
		c.InitialInterval = DefaultInitialInterval
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = DefaultMaxBackoff
	}
	if c.MaxBackoff < c.InitialInterval {
		c.MaxBackoff = c.InitialInterval
	}
	if c.Multiplier <= 1 {
		c.Multiplier = DefaultMultiplier
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = DefaultJitterFactor
	}
	return c
}

// Backoff tracks the current poll interval.
type Backoff struct {
	cfg     Config
	current time.Duration
}

// NewBackoff creates a backoff starting at the initial interval.
func NewBackoff(cfg Config) *Backoff {
	cfg = cfg.withDefaults()
	return &Backoff{cfg: cfg, current: cfg.InitialInterval}
}

// Reset returns the interval to the initial value. Called when the
// polled state changed, so the next change is likely soon.
func (b *Backoff) Reset() {
	b.current = b.cfg.InitialInterval
}

// Advance increases the interval multiplicatively, capped at MaxBackoff.
func (b *Backoff) Advance() {
	next := time.Duration(float64(b.current) * b.cfg.Multiplier)
	if next > b.cfg.MaxBackoff {
		next = b.cfg.MaxBackoff
	}
	b.current = next
}

// Next returns the wait before the next poll: the current interval plus
// jitter in [0, JitterFactor*interval).
func (b *Backoff) Next() time.Duration {
	jitter := time.Duration(rand.Float64() * b.cfg.JitterFactor * float64(b.current))
	return b.current + jitter
}

// Wait sleeps for the next interval or until the context is done.
func (b *Backoff) Wait(ctx context.Context) error {
	timer := time.NewTimer(b.Next())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckFunc inspects the polled state once. done ends the poll loop,
// changed resets the backoff schedule, and a non-nil error aborts the
// loop immediately. Transient failures a caller wants to ride out are
// reported as (false, false, nil).
type CheckFunc func(ctx context.Context) (done, changed bool, err error)

// Until polls check until it reports done, returns an error, or ctx is
// done. The first check runs immediately with no initial delay.
func Until(ctx context.Context, cfg Config, check CheckFunc) error {
	backoff := NewBackoff(cfg)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, changed, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if changed {
			backoff.Reset()
		} else {
			backoff.Advance()
		}

		if err := backoff.Wait(ctx); err != nil {
			return err
		}
	}
}
