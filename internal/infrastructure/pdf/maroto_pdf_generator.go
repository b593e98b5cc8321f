// Package pdf genera los documentos imprimibles de la consola con Maroto v2:
// hojas de etiquetas con código de barras y el reporte de movimientos.
//
// Reporte de movimientos (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + usuario   │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas / Salidas / Ajustes / Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Artículo | Tipo | Cantidad | Motivo          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/inventario-console/internal/application/view"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// LabelsPerRow etiquetas por fila en la hoja.
const LabelsPerRow = 3

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Names resuelve IDs a nombres; *view.Resolver lo implementa.
type Names interface {
	ItemName(id int64) string
	GroupName(id int64) string
}

// Generator produce PDFs en memoria.
type Generator struct {
	author string
}

// NewGenerator construye el generador; author se escribe en los metadatos.
func NewGenerator(author string) *Generator {
	return &Generator{author: nonEmpty(author, "Inventario")}
}

func (g *Generator) build(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

// ItemLabels hoja de etiquetas: nombre, código de barras y precio de cada artículo.
// Los artículos sin código principal llevan la leyenda "Sin código".
func (g *Generator) ItemLabels(ctx context.Context, items []entity.Item, names Names) ([]byte, error) {
	m := g.build("Etiquetas de artículos")

	for start := 0; start < len(items); start += LabelsPerRow {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + LabelsPerRow
		if end > len(items) {
			end = len(items)
		}
		m.AddRows(labelRows(items[start:end], names)...)
		m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	if len(items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay artículos para imprimir", props.Text{Size: 10, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiquetas: %w", err)
	}
	return doc.GetBytes(), nil
}

func labelRows(items []entity.Item, names Names) []core.Row {
	nameCols := make([]core.Col, 0, LabelsPerRow)
	barCols := make([]core.Col, 0, LabelsPerRow)
	infoCols := make([]core.Col, 0, LabelsPerRow)
	size := 12 / LabelsPerRow

	for _, it := range items {
		nameCols = append(nameCols, col.New(size).Add(text.New(it.Name, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1, Left: 1, Right: 1,
		})))

		bc := strings.TrimSpace(it.Barcodes[0])
		if bc == "" {
			barCols = append(barCols, col.New(size).Add(text.New("Sin código", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 6,
			})))
		} else {
			barCols = append(barCols, col.New(size).Add(code.NewBar(bc, props.Barcode{
				Percent: 80,
				Center:  true,
			})))
		}

		info := bc
		if it.GroupID != 0 {
			info = strings.TrimSpace(info + "  " + names.GroupName(it.GroupID))
		}
		infoCols = append(infoCols, col.New(size).Add(
			text.New(info, props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 0.5}),
			text.New("$"+money(it.Price()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 4,
			}),
		))
	}
	for len(nameCols) < LabelsPerRow {
		nameCols = append(nameCols, col.New(size))
		barCols = append(barCols, col.New(size))
		infoCols = append(infoCols, col.New(size))
	}

	return []core.Row{
		row.New(7).Add(nameCols...),
		row.New(18).Add(barCols...),
		row.New(10).Add(infoCols...),
	}
}

// MovementReport reporte de movimientos con resumen por tipo.
func (g *Generator) MovementReport(ctx context.Context, movements []entity.Movement, names Names, generatedAt time.Time, user string) ([]byte, error) {
	m := g.build("Reporte de movimientos")

	m.AddRows(reportHeaderRow(generatedAt, user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(view.Summarize(movements)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(movementHeaderRow())
	for _, mv := range movements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.AddRows(movementRow(mv, names))
	}
	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportHeaderRow(generatedAt time.Time, user string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Usuario: "+nonEmpty(user, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func summaryRow(s view.Summary) core.Row {
	cell := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", n), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		)
	}
	return row.New(14).Add(
		cell("Entradas", s.Entradas),
		cell("Salidas", s.Salidas),
		cell("Ajustes", s.Ajustes),
		cell("Total", s.Total),
	)
}

func movementHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Tipo", 2, align.Center),
		h("Cantidad", 1, align.Right),
		h("Motivo", 3, align.Left),
	)
}

func movementRow(mv entity.Movement, names Names) core.Row {
	date := "-"
	if !mv.Date.IsZero() {
		date = mv.Date.Format("02/01/2006")
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(date, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(names.ItemName(mv.ItemID), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(mv.Kind.Label(), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(mv.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(nonEmpty(mv.Reason, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con puntos de miles y coma decimal. Ej: 1234.5 → "1.234,50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000"
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
