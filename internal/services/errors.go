package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoIdentifiers   = errors.New("at least one identifier is required")

	// Transient storage faults, kept distinct so the caller can decide
	// to retry with backoff. The services themselves never retry these.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageTimeout     = errors.New("storage timeout")
)

// IdentityCollisionError reports that the supplied identifiers matched
// more than one existing user. No mutation has occurred.
type IdentityCollisionError struct {
	UserIDs []int64
}

func (e *IdentityCollisionError) Error() string {
	return fmt.Sprintf("identifiers match multiple existing users: %v", e.UserIDs)
}

// ProfileLimitError reports that the owning user already holds the maximum
// number of profiles.
type ProfileLimitError struct {
	UserID int64
	Count  int
}

func (e *ProfileLimitError) Error() string {
	return fmt.Sprintf("user %d already has %d profiles", e.UserID, e.Count)
}

// ProfileNameExistsError reports a per-user profile name conflict.
type ProfileNameExistsError struct {
	UserID int64
	Name   string
}

func (e *ProfileNameExistsError) Error() string {
	return fmt.Sprintf("profile name %q already exists for user %d", e.Name, e.UserID)
}

// isUniqueViolation reports whether err is a duplicate-key failure from
// the store, either translated by GORM or raw from the Postgres driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// classifyStorage folds driver-level failures into the two transient
// fault kinds. Errors it does not recognize (including the typed conflict
// errors above) pass through unchanged.
func classifyStorage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "57014": // query canceled
			return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return err
}
