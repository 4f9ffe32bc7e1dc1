// Package service holds the business rules between the HTTP/bot front ends
// and the storage backends.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finly/internal/domain"

	"github.com/google/uuid"
)

const DefaultStoreTimeout = 5 * time.Second

// storeCtx bounds a single store round trip.
func storeCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr marks deadline failures as retryable upstream errors and wraps
// everything else with the operation name.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUpstream, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func newID() string {
	return uuid.NewString()
}

// ParseID checks that s is one of our record ids.
func ParseID(field, s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", domain.Invalid(field, "%s is not a valid id", field)
	}
	return id.String(), nil
}
