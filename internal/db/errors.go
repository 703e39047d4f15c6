package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the SQLSTATE Postgres reports when a write breaks
// a unique constraint.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, however deeply wrapped.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// SlotConflictError indicates an attempt to assign a posting to a display
// slot already held by another active posting. The write is refused rather
// than overwriting the occupant.
type SlotConflictError struct {
	Position string
	Priority int
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("display slot %s/%d is already occupied", e.Position, e.Priority)
}

// NotFoundError indicates a record keyed by ID does not exist.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
