package repository

import (
	"context"

	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// LedgerRepository puerto de lectura de cartera y escritura del log de interacciones.
// Las lecturas devuelven copias: el llamador puede modificarlas sin afectar al store.
type LedgerRepository interface {
	Customers(ctx context.Context) ([]entity.Customer, error)
	Invoices(ctx context.Context) ([]entity.Invoice, error)
	Interactions(ctx context.Context) ([]entity.Interaction, error)
	// AppendInteraction persiste primero en disco y solo después en memoria.
	AppendInteraction(ctx context.Context, rec entity.Interaction) error
}

// DatasetReader lectura genérica de los CSV auxiliares de cartera.
type DatasetReader interface {
	ReadDataset(ctx context.Context, name string, limit, offset int) (rows []map[string]string, total int, err error)
}
