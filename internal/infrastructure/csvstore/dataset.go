package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jhoicas/Cartera-api/internal/domain"
)

// datasetFiles datasets auxiliares expuestos en solo lectura y su archivo.
var datasetFiles = map[string]string{
	"customers":              CustomersFile,
	"invoices":               InvoicesFile,
	"customer_interactions":  InteractionsFile,
	"payments":               "payments.csv",
	"collection_cases":       "collection_cases.csv",
	"disputes":               "disputes.csv",
	"risk_scores":            "risk_scores.csv",
	"orders":                 "orders.csv",
	"gl_entries":             "gl_entries.csv",
	"invoice_line_items":     "invoice_line_items.csv",
	"payment_plans":          "payment_plans.csv",
	"dso_analytics":          "dso_analytics.csv",
	"strategy_effectiveness": "strategy_effectiveness.csv",
	"collection_performance": "collection_performance.csv",
}

// Datasets nombres válidos, ordenados.
func Datasets() []string {
	names := make([]string, 0, len(datasetFiles))
	for n := range datasetFiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReadDataset lee el CSV del dataset name directamente de disco y devuelve la página pedida.
// Nombre desconocido o archivo ausente: domain.ErrDatasetNotFound.
func (s *Store) ReadDataset(ctx context.Context, name string, limit, offset int) ([]map[string]string, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	file, ok := datasetFiles[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, name)
	}
	t, err := s.openTable(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, file)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("leer dataset %s: %w", name, err)
	}

	total := len(t.rows)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	out := make([]map[string]string, 0, end-offset)
	for _, row := range t.rows[offset:end] {
		m := make(map[string]string, len(t.header))
		for _, h := range t.header {
			m[h] = t.get(row, h)
		}
		out = append(out, m)
	}
	return out, total, nil
}
