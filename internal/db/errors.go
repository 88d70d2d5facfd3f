package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when attempting to insert a duplicate record.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidArgument is returned when a caller-supplied value is malformed,
	// e.g. a subscriber filter that does not parse as a non-negative integer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPermissionDenied is returned when a write is attempted by an absent
	// or anonymous identity.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrImportFailed is returned when the external metadata API has no match
	// for a channel id or handle.
	ErrImportFailed = errors.New("channel import failed")

	// ErrStore wraps any transport or backend failure; the underlying message
	// is passed through opaquely.
	ErrStore = errors.New("store error")
)

// WrapError wraps backend errors with operation context and maps them onto the
// taxonomy above. Anything that is not a recognized condition becomes ErrStore.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w (constraint: %s)", operation, ErrDuplicateKey, pgErr.ConstraintName)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w (constraint: %s)", operation, ErrInvalidArgument, pgErr.ConstraintName)
		default:
			return fmt.Errorf("%s: %w [%s]: %s", operation, ErrStore, pgErr.Code, pgErr.Message)
		}
	}

	// Already one of ours; keep the chain intact.
	for _, known := range []error{ErrNotFound, ErrDuplicateKey, ErrInvalidArgument, ErrPermissionDenied, ErrImportFailed, ErrStore} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", operation, err)
		}
	}

	return fmt.Errorf("%s: %w: %v", operation, ErrStore, err)
}

// IsNotFound returns true if the error is an ErrNotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey returns true if the error is an ErrDuplicateKey error.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

// IsInvalidArgument returns true if the error is an ErrInvalidArgument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsPermissionDenied returns true if the error is an ErrPermissionDenied error.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsImportFailed returns true if the error is an ErrImportFailed error.
func IsImportFailed(err error) bool {
	return errors.Is(err, ErrImportFailed)
}
