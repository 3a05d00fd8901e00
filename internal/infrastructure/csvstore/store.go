// Package csvstore implementa el almacenamiento de cartera sobre archivos CSV planos:
// maestro de clientes, facturas y el log de interacciones (solo anexado).
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Cartera-api/internal/domain"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
	"github.com/jhoicas/Cartera-api/pkg/logger"
)

// Nombres de archivo dentro del directorio de datos.
const (
	CustomersFile    = "customer_master.csv"
	InvoicesFile     = "invoices.csv"
	InteractionsFile = "customer_interactions.csv"
)

var (
	_ repository.LedgerRepository = (*Store)(nil)
	_ repository.DatasetReader    = (*Store)(nil)
)

// Store mantiene en memoria las tres tablas de cartera.
// Las tablas nunca se mutan en sitio: cada cambio construye un slice nuevo y lo
// publica bajo mu, así los lectores pueden copiar fuera del lock.
type Store struct {
	dir string
	log *logger.Logger

	mu           sync.RWMutex
	loaded       bool
	customers    []entity.Customer
	invoices     []entity.Invoice
	interactions []entity.Interaction

	// writeMu serializa escrituras al log y recargas completas.
	writeMu sync.Mutex
}

// New crea un store sobre dir. No lee nada hasta Load o el primer acceso.
func New(dir string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{dir: dir, log: log}
}

// Dir directorio de datos.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// Load lee las tres tablas y reemplaza el estado en memoria de una sola vez.
// Clientes y facturas son obligatorios; si faltan se devuelve error y el estado
// anterior se conserva. Un log de interacciones ausente se carga vacío.
func (s *Store) Load() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	customers, err := s.loadCustomers()
	if err != nil {
		return err
	}
	invoices, err := s.loadInvoices()
	if err != nil {
		return err
	}
	interactions, err := s.loadInteractions()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.customers = customers
	s.invoices = invoices
	s.interactions = interactions
	s.loaded = true
	s.mu.Unlock()

	s.log.Info().
		Str("dir", s.dir).
		Int("customers", len(customers)).
		Int("invoices", len(invoices)).
		Int("interactions", len(interactions)).
		Msg("datos de cartera cargados")
	return nil
}

// ensureLoaded dispara una única recarga si las tablas no están en memoria.
func (s *Store) ensureLoaded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	if err := s.Load(); err != nil {
		s.log.Error().Err(err).Msg("recarga de datos fallida")
		return fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return nil
}

// Ready indica si los datos están en memoria; intenta la recarga perezosa si no.
func (s *Store) Ready(ctx context.Context) error {
	return s.ensureLoaded(ctx)
}

// Customers copia del maestro de clientes.
func (s *Store) Customers(ctx context.Context) ([]entity.Customer, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	src := s.customers
	s.mu.RUnlock()
	out := make([]entity.Customer, len(src))
	copy(out, src)
	return out, nil
}

// Invoices copia de la tabla de facturas.
func (s *Store) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	src := s.invoices
	s.mu.RUnlock()
	out := make([]entity.Invoice, len(src))
	copy(out, src)
	return out, nil
}

// Interactions copia del log de interacciones en orden de escritura.
func (s *Store) Interactions(ctx context.Context) ([]entity.Interaction, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	src := s.interactions
	s.mu.RUnlock()
	out := make([]entity.Interaction, len(src))
	copy(out, src)
	return out, nil
}

// AppendInteraction anexa rec al CSV y, solo si la escritura fue exitosa, a la tabla en memoria.
func (s *Store) AppendInteraction(ctx context.Context, rec entity.Interaction) error {
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.appendRow(interactionRow(rec)); err != nil {
		return fmt.Errorf("anexar interacción %s: %w", rec.ID, err)
	}

	s.mu.Lock()
	next := make([]entity.Interaction, len(s.interactions), len(s.interactions)+1)
	copy(next, s.interactions)
	s.interactions = append(next, rec)
	s.mu.Unlock()
	return nil
}

func (s *Store) appendRow(row []string) error {
	f, err := os.OpenFile(s.path(InteractionsFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(entity.InteractionColumns); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Counts tamaños actuales de las tablas (health y logs).
func (s *Store) Counts() (customers, invoices, interactions int, loaded bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), len(s.invoices), len(s.interactions), s.loaded
}

func (s *Store) openTable(name string) (*table, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTable(f)
}

func (s *Store) loadCustomers() ([]entity.Customer, error) {
	t, err := s.openTable(CustomersFile)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", CustomersFile, err)
	}
	if err := t.require("customer_id"); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", CustomersFile, err)
	}
	out := make([]entity.Customer, 0, len(t.rows))
	for _, row := range t.rows {
		c := entity.Customer{
			ID:    t.get(row, "customer_id"),
			Name:  t.get(row, "customer_name"),
			Email: t.get(row, "email"),
		}
		for i, h := range t.header {
			switch h {
			case "customer_id", "customer_name", "email":
				continue
			}
			if i < len(row) {
				if c.Extra == nil {
					c.Extra = make(map[string]string)
				}
				c.Extra[h] = row[i]
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) loadInvoices() ([]entity.Invoice, error) {
	t, err := s.openTable(InvoicesFile)
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", InvoicesFile, err)
	}
	if err := t.require("invoice_id", "customer_id", "due_date", "total_amount", "payment_status"); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", InvoicesFile, err)
	}
	out := make([]entity.Invoice, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, entity.Invoice{
			ID:            t.get(row, "invoice_id"),
			CustomerID:    t.get(row, "customer_id"),
			DueDate:       parseDate(t.get(row, "due_date")),
			InvoiceDate:   parseDate(t.get(row, "invoice_date")),
			TotalAmount:   parseMoney(t.get(row, "total_amount")),
			PaidAmount:    parseMoney(t.get(row, "paid_amount")),
			BalanceAmount: parseMoney(t.get(row, "balance_amount")),
			PaymentStatus: t.get(row, "payment_status"),
		})
	}
	return out, nil
}

func (s *Store) loadInteractions() ([]entity.Interaction, error) {
	t, err := s.openTable(InteractionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Str("file", InteractionsFile).Msg("log de interacciones ausente, se inicia vacío")
		return []entity.Interaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", InteractionsFile, err)
	}
	out := make([]entity.Interaction, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, entity.Interaction{
			ID:             t.get(row, "interaction_id"),
			CustomerID:     t.get(row, "customer_id"),
			CustomerName:   t.get(row, "customer_name"),
			Date:           parseDate(t.get(row, "interaction_date")),
			Type:           t.get(row, "interaction_type"),
			Purpose:        t.get(row, "purpose"),
			Summary:        t.get(row, "summary"),
			InitiatedBy:    t.get(row, "initiated_by"),
			HandledBy:      t.get(row, "handled_by"),
			RepID:          t.get(row, "rep_id"),
			RelatedInvoice: t.get(row, "related_invoice"),
			Outcome:        t.get(row, "outcome"),
			Notes:          t.get(row, "notes"),
		})
	}
	return out, nil
}

// interactionRow serializa rec en el orden de entity.InteractionColumns.
func interactionRow(rec entity.Interaction) []string {
	return []string{
		rec.ID,
		rec.CustomerID,
		rec.CustomerName,
		formatDate(rec.Date),
		rec.Type,
		rec.Purpose,
		rec.Summary,
		rec.InitiatedBy,
		rec.HandledBy,
		rec.RepID,
		rec.RelatedInvoice,
		rec.Outcome,
		rec.Notes,
	}
}
