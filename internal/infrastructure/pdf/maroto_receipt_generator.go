// Package pdf implementa la generación del comprobante de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Tienda + dirección │ N° venta + fecha │
//	│  ───────────────────────────────────────────  │
//	│  DETALLE: Cant | Producto | P.Unit | Total     │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                 │
//	│  FOOTER: leyenda                               │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa ledger.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

var _ ledger.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del comprobante y devuelve sus bytes.
// Usa las capturas de la venta (nombre y precio al vender), no el catálogo.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	store *entity.Store,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, store))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda + dirección (izq) y N° de venta + fecha (der).
func headerRow(sale *entity.Sale, store *entity.Store) core.Row {
	fecha := sale.Timestamp.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(store.Address, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(fecha, props.Text{
				Size: 9, Align: align.Right, Top: 12,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(5).Add(text.New("Producto", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("P. Unit", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func detailRow(sale *entity.Sale) core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", sale.Quantity), props.Text{Size: 9})),
		col.New(5).Add(text.New(sale.ProductName, props.Text{Size: 9})),
		col.New(2).Add(text.New(sale.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right})),
		col.New(3).Add(text.New(sale.TotalPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right})),
	)
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(9).Add(
		col.New(8).Add(text.New("TOTAL A PAGAR", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New("$ "+sale.TotalPrice.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
		})),
	)
}

func footerRow() core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New("Gracias por su compra", props.Text{
			Size: 8, Align: align.Center, Color: colorGray,
		})),
	)
}
