package csvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/infrastructure/csvstore"
)

func TestReadDataset_Paginacion(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, dir, "payments.csv", "payment_id,invoice_id,amount\nP1,I1,10\nP2,I1,20\nP3,I2,30\n")
	s := csvstore.New(dir, nil)

	rows, total, err := s.ReadDataset(context.Background(), "payments", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "P2", rows[0]["payment_id"])
	assert.Equal(t, "30", rows[1]["amount"])

	rows, _, err = s.ReadDataset(context.Background(), "payments", 10, 99)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadDataset_CustomersUsaMaestro(t *testing.T) {
	s := csvstore.New(newDataDir(t), nil)

	rows, total, err := s.ReadDataset(context.Background(), "customers", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Globex", rows[1]["customer_name"])
}

func TestReadDataset_NoEncontrado(t *testing.T) {
	s := csvstore.New(newDataDir(t), nil)

	_, _, err := s.ReadDataset(context.Background(), "secrets", 10, 0)
	assert.ErrorIs(t, err, domain.ErrDatasetNotFound)

	_, _, err = s.ReadDataset(context.Background(), "disputes", 10, 0)
	assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
}

func TestDatasets_Catorce(t *testing.T) {
	names := csvstore.Datasets()
	assert.Len(t, names, 14)
	assert.Contains(t, names, "strategy_effectiveness")
}
