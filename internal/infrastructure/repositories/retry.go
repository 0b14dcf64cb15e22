package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	domainerrors "estate-hub.backend/internal/domain/errors"
	"github.com/lib/pq"
)

const (
	maxStoreAttempts = 3
	retryBackoffBase = 50 * time.Millisecond
)

// isTransient reports whether err looks like a connectivity failure worth a
// bounded retry. Class 08 is postgres "connection exception".
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return false
}

// withRetry runs fn up to maxStoreAttempts times on transient store errors.
// Exhausted retries surface as ErrStoreUnavailable so callers can tell
// "try again later" apart from domain failures. Business-rule errors pass
// through untouched on the first attempt.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxStoreAttempts; attempt++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoffBase << attempt):
		}
	}
	return domainerrors.StoreUnavailable(err)
}
