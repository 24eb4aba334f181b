package storeerr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is decided once here, at the data-access boundary. Call sites branch on
// kinds, never on error message text.
type Kind string

const (
	// KindTransport covers connectivity and cancellation failures.
	KindTransport Kind = "transport"
	// KindNotFound means a referenced record is missing.
	KindNotFound Kind = "not_found"
	// KindConflict means a concurrent write won (unique violation or a
	// conditional update that matched zero rows).
	KindConflict Kind = "conflict"
	// KindSchemaFieldMissing means an expected column or relation does not
	// exist yet; callers surface migration guidance instead of a raw error.
	KindSchemaFieldMissing Kind = "schema_field_missing"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
		}
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, string(e.Kind))
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func NotFound(op, what string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: errors.New(what + " not found")}
}

func Conflict(op, what string) *Error {
	return &Error{Kind: KindConflict, Op: op, Err: errors.New(what)}
}

// Classify maps a raw store failure into a kinded error. Postgres error codes
// win; a message-substring check remains as a fallback for drivers that do not
// expose codes.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(KindNotFound, op, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return New(KindTransport, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "42703": // undefined_column
			return New(KindSchemaFieldMissing, op, err)
		case "42P01": // undefined_table
			return New(KindSchemaFieldMissing, op, err)
		case "23505": // unique_violation
			return New(KindConflict, op, err)
		}
		return New(KindTransport, op, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "does not exist") &&
		(strings.Contains(msg, "column") || strings.Contains(msg, "relation")) {
		return New(KindSchemaFieldMissing, op, err)
	}
	return New(KindTransport, op, err)
}

func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsConflict(err error) bool { return KindOf(err) == KindConflict }

func IsSchemaFieldMissing(err error) bool { return KindOf(err) == KindSchemaFieldMissing }
