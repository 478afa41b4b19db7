// Package pdf genera el reporte de inventario imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: productos / valor / alertas / agotados         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: Ref | Producto | Cant. | Umbral | Proveedor        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTOS: Ref | Producto | Categoría | Cant. | Valor       │
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

	"github.com/jhoicas/stockflow/internal/application/analytics"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.StockReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.StockReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador; title aparece en la cabecera.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Reporte de inventario"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReportPDF(_ context.Context, report *analytics.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statisticsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("ALERTAS DE STOCK (%d)", len(report.LowStock)), colorAlert))
	if len(report.LowStock) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Sin productos en alerta.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	} else {
		m.AddRows(lowStockHeaderRow())
		m.AddRows(lowStockRows(report.LowStock)...)
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle(fmt.Sprintf("PRODUCTOS (%d)", len(report.Products)), colorPrimary))
	m.AddRows(productHeaderRow())
	m.AddRows(productRows(report.Products, report.Currency)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, report *analytics.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(strings.ToUpper(title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func statisticsRow(report *analytics.StockReport) core.Row {
	s := report.Statistics
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Productos", fmt.Sprintf("%d", s.TotalProducts)),
		cell("Valor del stock", formatAmount(s.TotalValue, report.Currency)),
		cell("En alerta", fmt.Sprintf("%d", s.LowStockCount)),
		cell("Agotados", fmt.Sprintf("%d", s.OutOfStockCount)),
	)
}

func sectionTitle(label string, color *props.Color) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func lowStockHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Ref.", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Cant.", 1, align.Right),
		headerCell("Umbral", 1, align.Right),
		headerCell("Proveedor", 4, align.Left),
	)
}

func lowStockRows(items []*entity.ProductView) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, row.New(6).Add(
			cell(p.Reference, 2, align.Left),
			cell(p.Name, 4, align.Left),
			cell(fmt.Sprintf("%d", p.Quantity), 1, align.Right),
			cell(fmt.Sprintf("%d", p.MinThreshold), 1, align.Right),
			cell(nonEmpty(p.SupplierName, "—"), 4, align.Left),
		))
	}
	return rows
}

func productHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Ref.", 2, align.Left),
		headerCell("Producto", 4, align.Left),
		headerCell("Categoría", 2, align.Left),
		headerCell("Cant.", 1, align.Right),
		headerCell("Valor", 3, align.Right),
	)
}

func productRows(items []*entity.ProductView, currency string) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, p := range items {
		value := p.SalePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		rows = append(rows, row.New(6).Add(
			cell(p.Reference, 2, align.Left),
			cell(p.Name, 4, align.Left),
			cell(nonEmpty(p.CategoryName, "—"), 2, align.Left),
			cell(fmt.Sprintf("%d", p.Quantity), 1, align.Right),
			cell(formatAmount(value, currency), 3, align.Right),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

// formatAmount formatea un importe con puntos de miles y coma decimal.
// Ej: 1234567.5 → "1.234.567,50 €"
func formatAmount(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if neg {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

// groupThousands inserta puntos de miles en un entero sin signo.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
