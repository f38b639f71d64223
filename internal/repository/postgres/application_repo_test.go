package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableTxError(t *testing.T) {
	assert.True(t, isRetryableTxError(&pgconn.PgError{Code: "40001"}),
		"serialization failures are retried")
	assert.True(t, isRetryableTxError(&pgconn.PgError{Code: "23505"}),
		"losing the team-creation race is retried")
	assert.True(t, isRetryableTxError(
		fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40001"})),
		"wrapped driver errors are unwrapped")

	assert.False(t, isRetryableTxError(&pgconn.PgError{Code: "23514"}),
		"check violations are real failures")
	assert.False(t, isRetryableTxError(errors.New("connection reset")))
	assert.False(t, isRetryableTxError(nil))
}
