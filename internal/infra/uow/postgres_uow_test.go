//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"github.com/Alvaro-R-Martinez/MeuHumus/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: "40001"},
			want: true,
		},
		{
			name: "deadlock detected",
			err:  &pgconn.PgError{Code: "40P01"},
			want: true,
		},
		{
			name: "unique violation from racing ledger creation",
			err:  &pgconn.PgError{Code: "23505"},
			want: true,
		},
		{
			name: "wrapped retryable error",
			err:  errs.Wrap(&pgconn.PgError{Code: "40001"}, "failed to commit"),
			want: true,
		},
		{
			name: "foreign key violation is not retryable",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("something else"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= 4; attempt++ {
		exp := time.Duration(1<<attempt) * base
		for range 20 {
			got := calculateBackoff(attempt, base)
			assert.GreaterOrEqual(t, got, exp, "attempt %d", attempt)
			assert.Less(t, got, exp+exp/5, "attempt %d", attempt)
		}
	}
}

func TestCryptoRandInt63n(t *testing.T) {
	assert.Zero(t, cryptoRandInt63n(0))
	assert.Zero(t, cryptoRandInt63n(-5))

	for range 50 {
		v := cryptoRandInt63n(10)
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(10))
	}
}
