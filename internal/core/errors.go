package core

import (
	"errors"
	"fmt"
	"strings"

	"pawmart-backend/internal/db"
)

// Error taxonomy shared by every service. Handlers map these to HTTP status
// codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnavailable     = errors.New("service temporarily unavailable")
	ErrInternal        = errors.New("internal error")
)

// translateRepoError maps a repository error onto the core taxonomy.
func translateRepoError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validateDocID rejects identifiers Firestore cannot address as a single
// document.
func validateDocID(id, kind string) error {
	switch {
	case id == "":
		return invalidInput("%s id is required", kind)
	case len(id) > 1500:
		return invalidInput("%s id is too long", kind)
	case strings.Contains(id, "/"):
		return invalidInput("%s id must not contain '/'", kind)
	case id == "." || id == "..":
		return invalidInput("%s id is not valid", kind)
	case strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"):
		return invalidInput("%s id is reserved", kind)
	}
	return nil
}
