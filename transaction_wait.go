package custovault

import (
	"context"
	"errors"

	"github.com/custovault/client-go/internal/poll"
)

// WaitForTransaction polls a transaction until it settles and returns the
// final record. By default it waits for any terminal status; callers
// decide from Status whether the transfer succeeded. WithWaitForStatus
// waits for specific statuses instead, and the wait still ends, with
// ErrStatusNotReached, if the transaction settles without passing through
// one of them.
//
// Polling starts at the wait interval and backs off while the status is
// unchanged. A TimeoutError is returned when the wait timeout elapses
// before the transaction settles.
func (c *Client) WaitForTransaction(ctx context.Context, txID string, opts ...WaitOption) (*Transaction, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &waitConfig{
		timeout:  defaultWaitTimeout,
		interval: defaultWaitInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		tx         *Transaction
		lastStatus TransactionStatus
	)

	err := poll.Until(waitCtx, poll.Config{InitialInterval: cfg.interval}, func(ctx context.Context) (bool, bool, error) {
		got, err := c.GetTransaction(ctx, txID)
		if err != nil {
			// Ride out transient failures; the status check itself is
			// read-only, so the next tick simply asks again.
			if errors.Is(err, ErrServerFault) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrRetriesExhausted) {
				return false, false, nil
			}
			return false, false, err
		}

		tx = got
		changed := got.Status != lastStatus
		lastStatus = got.Status

		done := got.Status.Terminal()
		if len(cfg.statuses) > 0 {
			done = done || statusIn(got.Status, cfg.statuses)
		}
		return done, changed, nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Operation: "wait for transaction " + txID, Timeout: cfg.timeout}
		}
		return nil, err
	}

	if len(cfg.statuses) > 0 && !statusIn(tx.Status, cfg.statuses) {
		return tx, ErrStatusNotReached
	}
	return tx, nil
}

func statusIn(s TransactionStatus, set []TransactionStatus) bool {
	for _, t := range set {
		if s == t {
			return true
		}
	}
	return false
}
