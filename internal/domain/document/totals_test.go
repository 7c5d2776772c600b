package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(qty, price string) document.LineItem {
	return document.NewLineItem("").
		WithQuantity(dec(qty)).
		WithUnitPrice(dec(price))
}

// Escenario concreto de la suite: 2 líneas [2×50, 1×30], IVA 10%, sin
// descuento → subtotal 130, impuesto 13, total 143.
func TestComputeTotals_FacturaConImpuesto(t *testing.T) {
	items := []document.LineItem{item("2", "50"), item("1", "30")}

	totals := document.ComputeTotals(items, dec("10"), decimal.Zero)

	assert.True(t, dec("130").Equal(totals.Subtotal), "subtotal: %s", totals.Subtotal)
	assert.True(t, dec("13").Equal(totals.TaxAmount), "impuesto: %s", totals.TaxAmount)
	assert.True(t, dec("143").Equal(totals.Total), "total: %s", totals.Total)
}

// Función pura: dos invocaciones con la misma entrada dan la misma salida.
func TestComputeTotals_Idempotente(t *testing.T) {
	items := []document.LineItem{item("3", "19.99"), item("1", "0.01")}

	a := document.ComputeTotals(items, dec("7.5"), dec("5"))
	b := document.ComputeTotals(items, dec("7.5"), dec("5"))

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.TaxAmount.Equal(b.TaxAmount))
	assert.True(t, a.Total.Equal(b.Total))
}

// Aditividad: subtotal(A∪B) = subtotal(A) + subtotal(B) para cualquier partición.
func TestComputeTotals_SubtotalAditivo(t *testing.T) {
	a := []document.LineItem{item("2", "50"), item("4", "12.25")}
	b := []document.LineItem{item("1", "30"), item("10", "0.10"), item("3", "7")}

	union := append(append([]document.LineItem{}, a...), b...)

	subA := document.ComputeTotals(a, decimal.Zero, decimal.Zero).Subtotal
	subB := document.ComputeTotals(b, decimal.Zero, decimal.Zero).Subtotal
	subU := document.ComputeTotals(union, decimal.Zero, decimal.Zero).Subtotal

	assert.True(t, subU.Equal(subA.Add(subB)))
}

// Sin recorte: cantidades negativas se aceptan aritméticamente (notas de
// crédito improvisadas); el motor no bloquea subtotales negativos.
func TestComputeTotals_NegativosSinClamping(t *testing.T) {
	items := []document.LineItem{item("-1", "100"), item("1", "40")}

	totals := document.ComputeTotals(items, dec("10"), decimal.Zero)

	assert.True(t, dec("-60").Equal(totals.Subtotal))
	assert.True(t, dec("-66").Equal(totals.Total))
}

// Descuento entra después del impuesto: total = subtotal + tax − descuento.
func TestComputeTotals_Descuento(t *testing.T) {
	items := []document.LineItem{item("1", "200")}

	totals := document.ComputeTotals(items, dec("5"), dec("10"))

	assert.True(t, dec("200").Equal(totals.Subtotal))
	assert.True(t, dec("10").Equal(totals.TaxAmount))
	assert.True(t, dec("200").Equal(totals.Total))
}

// Frontera del plan de pago: "part" aplica el porcentaje, "full" lo ignora.
func TestComputePaymentAmount_Frontera(t *testing.T) {
	total := dec("1000")

	assert.True(t, dec("250").Equal(document.ComputePaymentAmount(total, "part", dec("25"))))
	assert.True(t, dec("1000").Equal(document.ComputePaymentAmount(total, "full", dec("25"))))
}

// Escenario concreto de cotización: subtotal 1000, IVA 5% → total 1050;
// plan part 40% → anticipo 420, saldo 630.
func TestComputePaymentAmount_CotizacionParcial(t *testing.T) {
	items := []document.LineItem{item("1", "1000")}
	totals := document.ComputeTotals(items, dec("5"), decimal.Zero)

	assert.True(t, dec("1050").Equal(totals.Total))

	payment := document.ComputePaymentAmount(totals.Total, "part", dec("40"))
	assert.True(t, dec("420").Equal(payment))
	assert.True(t, dec("630").Equal(document.RemainingBalance(totals.Total, payment)))
}
