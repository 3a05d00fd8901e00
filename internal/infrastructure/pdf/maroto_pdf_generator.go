// Package pdf implementa el reporte de antigüedad de cartera en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  Fecha de corte              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Tramo | Facturas | Monto                           │
//	│  TOTAL VENCIDO + DSO                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Factura | Cliente | Vence | Tramo | Monto          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cartera-api/internal/application/collections"
	domaincoll "github.com/jhoicas/Cartera-api/internal/domain/collections"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ collections.AgingReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa collections.AgingReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateAgingReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateAgingReport(_ context.Context, r collections.AgingReport) ([]byte, error) {
	if r.Summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Antigüedad de cartera", true).
		WithAuthor(nonEmpty(r.CompanyName, "Cartera"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("RESUMEN POR TRAMO"))
	m.AddRows(summaryHeaderRow())
	m.AddRows(summaryRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("FACTURAS VENCIDAS"))
	m.AddRows(detailHeaderRow())
	m.AddRows(detailRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r collections.AgingReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.CompanyName, "Cartera"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de antigüedad de cartera", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FECHA DE CORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func summaryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Tramo", 6, align.Left),
		h("Facturas", 2, align.Center),
		h("Monto", 4, align.Right),
	)
}

// summaryRows sigue el orden fijo de tramos. Un resumen sin plantilla
// (sin vencidas) se muestra como una sola línea informativa.
func summaryRows(r collections.AgingReport) []core.Row {
	if len(r.Summary.AgingSummary) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin facturas vencidas a la fecha.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(domaincoll.AgingBuckets))
	for _, b := range domaincoll.AgingBuckets {
		st := r.Summary.AgingSummary[b]
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(b, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", st.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(money(r.Currency, st.Sum), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(r collections.AgingReport) core.Row {
	bold := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Top: 1, Right: 1})
	}
	return row.New(14).Add(
		col.New(4),
		col.New(4).Add(
			bold("TOTAL VENCIDO:", colorPrimary),
			text.New("DSO (días):", props.Text{Size: 9, Align: align.Right, Top: 7, Right: 1}),
		),
		col.New(4).Add(
			bold(money(r.Currency, r.Summary.TotalOverdueAmount)+fmt.Sprintf("  (%d)", r.Summary.TotalOverdueCount), colorAlert),
			text.New(fmt.Sprintf("%d", r.Summary.CalculatedDSO), props.Text{Size: 9, Align: align.Right, Top: 7, Right: 1}),
		),
	)
}

func detailHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Factura", 2, align.Left),
		h("Cliente", 4, align.Left),
		h("Vence", 2, align.Center),
		h("Tramo", 2, align.Center),
		h("Monto", 2, align.Right),
	)
}

func detailRows(r collections.AgingReport) []core.Row {
	rows := make([]core.Row, 0, len(r.Invoices))
	for _, inv := range r.Invoices {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(inv.InvoiceID, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(inv.CustomerName, inv.CustomerID), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(inv.DueDate, props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(inv.AgingBucket, props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(r.Currency, inv.TotalAmount), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(currency string, d decimal.Decimal) string {
	s := formatMoney(d.StringFixed(2))
	if currency == "" {
		return s
	}
	return currency + " " + s
}

// formatMoney inserta separadores de miles en la parte entera.
// Ej: "25000.50" → "25,000.50", "-1000000.00" → "-1,000,000.00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
