package db

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when creating a document whose ID is taken.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrUnavailable is returned when Firestore could not be reached in time.
	// Callers may retry.
	ErrUnavailable = errors.New("document store unavailable")
)

// classify wraps Firestore errors with ErrNotFound or ErrUnavailable where the
// gRPC status or the context says so. Other errors pass through unchanged.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
