// Package pdf genera el kardex imprimible de un material.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código + Nombre        │  Fecha de emisión          │
//	│  RESUMEN: Stock apertura / actual / costo promedio / valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cantidad | Anterior | Nuevo | Notas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de movimientos                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/pkg/numparse"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ inventory.KardexPDFGenerator = (*KardexPDFGenerator)(nil)

// KardexPDFGenerator implementa inventory.KardexPDFGenerator usando Maroto v2.
type KardexPDFGenerator struct {
	format *numparse.Formatter
	now    func() time.Time
}

// NewKardexPDFGenerator construye el generador; las cifras usan los separadores de format.
func NewKardexPDFGenerator(format *numparse.Formatter) *KardexPDFGenerator {
	return &KardexPDFGenerator{format: format, now: time.Now}
}

// GenerateKardexPDF genera el PDF con los movimientos en el orden recibido (cronológico).
func (g *KardexPDFGenerator) GenerateKardexPDF(
	_ context.Context,
	material *entity.Material,
	txs []*entity.Transaction,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+material.Code, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(material))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(material))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(txs)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Movimientos: %d", len(txs)), props.Text{Size: 8, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *KardexPDFGenerator) headerRow(material *entity.Material) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(material.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Código: %s   |   Familia: %s   |   Unidad: %s",
				material.Code, material.GroupOrDefault(), nonEmpty(material.Unit, "—")),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *KardexPDFGenerator) summaryRow(material *entity.Material) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(13).Add(
		cell("STOCK APERTURA", g.format.Format(material.InitialStock, 2)),
		cell("STOCK ACTUAL", g.format.Format(material.CurrentStock, 2)),
		cell("COSTO PROMEDIO", "$"+g.format.Format(material.UnitCost, 4)),
		cell("VALORIZACIÓN", "$"+g.format.Format(material.StockValue(), 2)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Anterior", 2, align.Right),
		h("Nuevo", 2, align.Right),
		h("Notas", 3, align.Left),
	)
}

// tableRows una fila por movimiento; las salidas se resaltan en rojo.
func (g *KardexPDFGenerator) tableRows(txs []*entity.Transaction) []core.Row {
	rows := make([]core.Row, 0, len(txs))
	for _, tx := range txs {
		qtyStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if tx.Type == entity.TransactionOUT {
			qtyStyle.Color = colorRed
		}
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(tx.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(string(tx.Type), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.format.Format(tx.Quantity, 2), qtyStyle)),
			col.New(2).Add(text.New(g.format.Format(tx.PreviousStock, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.format.Format(tx.ResultingStock, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(nonEmpty(tx.Notes, "—"), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
