package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formatos aceptados para fechas de los CSV, en orden de preferencia.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// interactionDateLayout formato con el que se escribe interaction_date (hora local, microsegundos).
const interactionDateLayout = "2006-01-02T15:04:05.000000"

// parseDate devuelve nil para vacíos o valores ilegibles; el llamador los trata como "sin fecha".
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// parseMoney convierte un monto; cualquier error de formato produce cero.
func parseMoney(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(interactionDateLayout)
}

// table resultado crudo de leer un CSV con encabezado.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// get devuelve la celda de la columna name; filas cortas o columnas ausentes dan "".
func (t *table) get(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *table) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}
	return nil
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &table{index: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezado csv: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t := &table{header: header, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		t.index[h] = i
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila csv: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}
