package collections

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
)

const dueDateLayout = "2006-01-02"

// DashboardUseCase vistas de solo lectura sobre la cartera vencida.
//
// Las tres operaciones comparten la misma forma: filtrar Overdue, clasificar por
// antigüedad y acumular sobre la plantilla fija de seis tramos.
type DashboardUseCase struct {
	ledger repository.LedgerRepository
	dso    DSOProvider
	clock  Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(ledger repository.LedgerRepository, dso DSOProvider, clock Clock) *DashboardUseCase {
	if clock == nil {
		clock = SystemClock
	}
	return &DashboardUseCase{ledger: ledger, dso: dso, clock: clock}
}

// GetARDashboard detalle de vencidos más suma por tramo. Los seis tramos están siempre presentes.
func (uc *DashboardUseCase) GetARDashboard(ctx context.Context) (*dto.ARDashboardDTO, error) {
	rows, err := uc.overdueRows(ctx)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]decimal.Decimal, len(domaincoll.AgingBuckets))
	for _, b := range domaincoll.AgingBuckets {
		summary[b] = decimal.Zero
	}
	total := decimal.Zero
	for _, r := range rows {
		summary[r.AgingBucket] = summary[r.AgingBucket].Add(r.TotalAmount)
		total = total.Add(r.TotalAmount)
	}

	return &dto.ARDashboardDTO{
		OverdueInvoices:    rows,
		AgingSummaryAmount: summary,
		TotalOverdueAmount: total,
		CalculatedDSO:      uc.dso.DSO(ctx),
	}, nil
}

// GetDelinquentAccounts solo el detalle de facturas vencidas ([] si no hay).
func (uc *DashboardUseCase) GetDelinquentAccounts(ctx context.Context) ([]dto.DelinquentInvoiceDTO, error) {
	return uc.overdueRows(ctx)
}

// GetReportSummary suma y conteo por tramo.
// Sin facturas vencidas devuelve un resumen vacío (sin plantilla) y DSO 0, a diferencia del dashboard.
func (uc *DashboardUseCase) GetReportSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	invoices, err := uc.ledger.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	today := uc.clock.Now()

	var overdue []entity.Invoice
	for _, inv := range invoices {
		if inv.IsOverdue() {
			overdue = append(overdue, inv)
		}
	}
	if len(overdue) == 0 {
		return &dto.ReportSummaryDTO{
			AgingSummary:       map[string]dto.BucketStatDTO{},
			TotalOverdueAmount: decimal.Zero,
		}, nil
	}

	summary := make(map[string]dto.BucketStatDTO, len(domaincoll.AgingBuckets))
	for _, b := range domaincoll.AgingBuckets {
		summary[b] = dto.BucketStatDTO{Sum: decimal.Zero}
	}
	total := decimal.Zero
	for _, inv := range overdue {
		b := domaincoll.ClassifyAging(inv.DueDate, today)
		st := summary[b]
		st.Sum = st.Sum.Add(inv.TotalAmount)
		st.Count++
		summary[b] = st
		total = total.Add(inv.TotalAmount)
	}

	return &dto.ReportSummaryDTO{
		AgingSummary:       summary,
		TotalOverdueAmount: total,
		TotalOverdueCount:  len(overdue),
		CalculatedDSO:      uc.dso.DSO(ctx),
	}, nil
}

// overdueRows filtra Overdue, une el nombre del maestro de clientes (se descarta el de
// la factura) y clasifica. Conserva el orden del archivo de facturas.
func (uc *DashboardUseCase) overdueRows(ctx context.Context) ([]dto.DelinquentInvoiceDTO, error) {
	invoices, err := uc.ledger.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.ledger.Customers(ctx)
	if err != nil {
		return nil, err
	}
	names := customerNames(customers)
	today := uc.clock.Now()

	rows := make([]dto.DelinquentInvoiceDTO, 0)
	for _, inv := range invoices {
		if !inv.IsOverdue() {
			continue
		}
		due := "N/A"
		if inv.DueDate != nil {
			due = inv.DueDate.Format(dueDateLayout)
		}
		rows = append(rows, dto.DelinquentInvoiceDTO{
			InvoiceID:    inv.ID,
			DueDate:      due,
			TotalAmount:  inv.TotalAmount,
			CustomerName: names[inv.CustomerID],
			CustomerID:   inv.CustomerID,
			AgingBucket:  domaincoll.ClassifyAging(inv.DueDate, today),
		})
	}
	return rows, nil
}

// customerNames índice id -> nombre; ante ids repetidos gana el primero.
func customerNames(customers []entity.Customer) map[string]string {
	m := make(map[string]string, len(customers))
	for _, c := range customers {
		if _, ok := m[c.ID]; !ok {
			m[c.ID] = c.Name
		}
	}
	return m
}
