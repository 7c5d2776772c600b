// Package pdf implementa la representación gráfica de facturas, cotizaciones
// y recibos de pago usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + Tax ID  │  Título + Número + Fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  CLIENTE: Nombre + empresa + contacto                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Importe                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Descuento / TOTAL            │
//	│  (cotización part: anticipo + saldo)                         │
//	│  (recibo: método de pago + referencia + documento origen)    │
//	│  NOTAS / TÉRMINOS                                            │
//	└─────────────────────────────────────────────────────────────┘
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

	appbilling "github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/billing"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes. El documento llega
// con los totales ya computados; aquí solo se dibuja.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *appbilling.DocumentForPDF) ([]byte, error) {
	author := ""
	if doc.Business != nil {
		author = doc.Business.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title+" "+doc.Number, true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if doc.DocType == document.DocTypeReceipt {
		m.AddRows(receiptRows(doc)...)
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableItemRows(doc) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalsRow(doc))
		if doc.ShowPaymentSplit {
			m.AddRows(paymentSplitRow(doc))
		}
	}

	if notes := notesRows(doc); len(notes) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(notes...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y título + número + fechas (der).
func headerRow(doc *appbilling.DocumentForPDF) core.Row {
	businessName := ""
	taxID := ""
	if doc.Business != nil {
		businessName = doc.Business.Name
		taxID = doc.Business.TaxID
	}

	left := col.New(7).Add(
		text.New(businessName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	)
	if taxID != "" {
		left.Add(text.New("Tax ID: "+taxID, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}

	right := col.New(5).Add(
		text.New(doc.Title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(doc.Number, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Fecha: "+doc.Date.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	)
	if !doc.SecondaryDate.IsZero() {
		label := "Vence"
		if doc.DocType == document.DocTypeQuote {
			label = "Válida hasta"
		}
		right.Add(text.New(label+": "+doc.SecondaryDate.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 19, Color: colorGray,
		}))
	}

	return row.New(24).Add(left, right)
}

// partiesRows: datos del emisor y del cliente.
func partiesRows(doc *appbilling.DocumentForPDF) []core.Row {
	var rows []core.Row

	if doc.Business != nil {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(doc.Business.Address, "—"),
				nonEmpty(doc.Business.Phone, "—"),
				nonEmpty(doc.Business.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)))
	}

	if doc.Client != nil {
		name := doc.Client.Name
		if doc.Client.CompanyName != "" {
			name += " — " + doc.Client.CompanyName
		}
		rows = append(rows, row.New(14).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(doc.Client.Email, "—"),
				nonEmpty(doc.Client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)))
	}

	return rows
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del documento.
func tableItemRows(doc *appbilling.DocumentForPDF) []core.Row {
	result := make([]core.Row, 0, len(doc.Items))
	for _, it := range doc.Items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(it.UnitPrice, doc.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money.Format(it.Amount, doc.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *appbilling.DocumentForPDF) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	labels := col.New(3).Add(label("Subtotal:"))
	values := col.New(3).Add(value(money.Format(doc.Subtotal, doc.Currency)))
	top := 5.0
	if doc.TaxAmount.Sign() != 0 {
		labels.Add(text.New(fmt.Sprintf("Impuesto (%s%%):", doc.TaxRate.String()), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values.Add(text.New(money.Format(doc.TaxAmount, doc.Currency), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
		top += 5
	}
	if doc.DiscountAmount.Sign() != 0 {
		labels.Add(text.New("Descuento:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		values.Add(text.New("-"+money.Format(doc.DiscountAmount, doc.Currency), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
		top += 5
	}
	labels.Add(text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: top,
	}))
	values.Add(text.New(money.Format(doc.Total, doc.Currency), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(26).Add(col.New(6), labels, values)
}

// paymentSplitRow: anticipo y saldo para cotizaciones con plan parcial.
func paymentSplitRow(doc *appbilling.DocumentForPDF) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Anticipo:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("Saldo restante:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5,
			}),
		),
		col.New(3).Add(
			text.New(money.Format(doc.PaymentAmount, doc.Currency), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New(money.Format(doc.RemainingBalance, doc.Currency), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 5,
			}),
		),
	)
}

// receiptRows: cuerpo del recibo — monto recibido, método y documento origen.
func receiptRows(doc *appbilling.DocumentForPDF) []core.Row {
	rows := []core.Row{
		row.New(16).Add(col.New(12).Add(
			text.New("MONTO RECIBIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(money.Format(doc.Total, doc.Currency), props.Text{
				Style: fontstyle.Bold, Size: 16, Top: 7, Color: colorPrimary,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Método de pago: "+paymentMethodLabel(doc.PaymentMethod), props.Text{
				Size: 9, Top: 2,
			}),
		)),
	}
	if doc.PaymentReference != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Referencia: "+doc.PaymentReference, props.Text{Size: 9, Top: 1, Color: colorGray}),
		)))
	}
	if doc.SourceNumber != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Documento origen: "+doc.SourceNumber, props.Text{Size: 9, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

// notesRows: notas y términos al pie.
func notesRows(doc *appbilling.DocumentForPDF) []core.Row {
	var rows []core.Row
	if doc.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}
	if doc.Terms != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("TÉRMINOS Y CONDICIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Terms, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
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

func paymentMethodLabel(method string) string {
	switch method {
	case "cash":
		return "Efectivo"
	case "bank_transfer":
		return "Transferencia bancaria"
	case "card":
		return "Tarjeta"
	default:
		return "Otro"
	}
}
