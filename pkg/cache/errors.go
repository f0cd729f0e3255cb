package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote board cache cannot be reached.
var ErrUnavailable = errors.New("board cache unavailable")

// transientError marks a failure worth another attempt, such as a refused
// connection while Redis is still starting.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsTransient reports whether err, or anything it wraps, was marked with
// Transient.
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// Backoff retries an operation with a doubling delay between attempts.
type Backoff struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // wait before the second try
}

// connectBackoff is used when dialing remote caches. Tests shorten it.
var connectBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns an error not marked Transient, or
// runs out of attempts. The last error is returned unwrapped of its
// transient mark so callers can match it with errors.Is.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	var te transientError
	if errors.As(err, &te) {
		return te.err
	}
	return err
}
