package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes we react to.
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrSerializationFail   = "40001" // serialization_failure
	PgErrDeadlockDetected    = "40P01" // deadlock_detected
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pgCode(err) == PgErrUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || pgCode(err) == PgErrForeignKeyViolation
}

// IsRetryable reports transaction conflicts the caller may simply retry.
func IsRetryable(err error) bool {
	switch pgCode(err) {
	case PgErrSerializationFail, PgErrDeadlockDetected:
		return true
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
