package storeerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassifyPostgresCodes(t *testing.T) {
	cases := []struct {
		name string
		code string
		want Kind
	}{
		{name: "undefined_column", code: "42703", want: KindSchemaFieldMissing},
		{name: "undefined_table", code: "42P01", want: KindSchemaFieldMissing},
		{name: "unique_violation", code: "23505", want: KindConflict},
		{name: "other_pg_error", code: "57P01", want: KindTransport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify("op", &pgconn.PgError{Code: tc.code, Message: tc.name})
			if got := KindOf(err); got != tc.want {
				t.Fatalf("KindOf=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyGormNotFound(t *testing.T) {
	err := Classify("op", gorm.ErrRecordNotFound)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}

func TestClassifyContextErrors(t *testing.T) {
	for _, in := range []error{context.Canceled, context.DeadlineExceeded} {
		err := Classify("op", in)
		if KindOf(err) != KindTransport {
			t.Fatalf("%v: expected transport kind, got %q", in, KindOf(err))
		}
	}
}

func TestClassifyMessageFallback(t *testing.T) {
	err := Classify("op", errors.New(`ERROR: column "order" does not exist`))
	if !IsSchemaFieldMissing(err) {
		t.Fatalf("expected schema-field-missing from message fallback, got %v", err)
	}

	err = Classify("op", errors.New(`relation "professional" does not exist`))
	if !IsSchemaFieldMissing(err) {
		t.Fatalf("expected schema-field-missing for missing relation, got %v", err)
	}

	err = Classify("op", errors.New("dial tcp: connection refused"))
	if KindOf(err) != KindTransport {
		t.Fatalf("expected transport default, got %q", KindOf(err))
	}
}

func TestClassifyIsStableAndUnwraps(t *testing.T) {
	raw := &pgconn.PgError{Code: "42703", Message: "boom"}
	once := Classify("op", raw)
	twice := Classify("outer", fmt.Errorf("wrapped: %w", once))
	if !IsSchemaFieldMissing(twice) {
		t.Fatalf("reclassification lost the kind: %v", twice)
	}

	var pgErr *pgconn.PgError
	if !errors.As(once, &pgErr) {
		t.Fatalf("classified error does not unwrap to pg error")
	}
}

func TestClassifyNil(t *testing.T) {
	if err := Classify("op", nil); err != nil {
		t.Fatalf("Classify(nil)=%v", err)
	}
}

func TestConstructors(t *testing.T) {
	if !IsNotFound(NotFound("op", "record")) {
		t.Fatalf("NotFound constructor kind mismatch")
	}
	if !IsConflict(Conflict("op", "order value changed")) {
		t.Fatalf("Conflict constructor kind mismatch")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors must have no kind")
	}
}
