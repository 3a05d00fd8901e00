package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewRetryPolicy_SinEsperaUnSoloIntento(t *testing.T) {
	p := newRetryPolicy(context.Background(), 0)
	assert.Equal(t, backoff.Stop, p.NextBackOff())
}

func TestNewRetryPolicy_RespetaIntervaloMaximo(t *testing.T) {
	p := newRetryPolicy(context.Background(), time.Minute)
	for i := 0; i < 10; i++ {
		d := p.NextBackOff()
		assert.NotEqual(t, backoff.Stop, d)
		// el jitter por defecto es ±50%
		assert.LessOrEqual(t, d, retryMaxInterval+retryMaxInterval/2)
	}
}

func TestNewRetryPolicy_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newRetryPolicy(ctx, time.Minute)
	assert.Equal(t, backoff.Stop, p.NextBackOff())
}

func TestPgCode_ErroresEnvueltos(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation})
	fk := fmt.Errorf("upsert: %w", &pgconn.PgError{Code: codeForeignKeyViolation})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
