package document

import (
	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// Totals agrupa los agregados derivados de un documento.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals calcula subtotal, impuesto y total a partir de las líneas
// actuales. Es una función pura: los totales nunca se mantienen de forma
// incremental, se recalculan completos en cada mutación para que ninguna
// edición deje agregados obsoletos.
//
//	subtotal = Σ amount
//	tax      = subtotal × taxRatePercent / 100
//	total    = subtotal + tax − discount
//
// No hay redondeo intermedio ni recorte de negativos: el redondeo ocurre solo
// al formatear para presentación (pkg/money).
func ComputeTotals(items []LineItem, taxRatePercent, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Amount)
	}
	tax := subtotal.Mul(taxRatePercent).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax).Sub(discount),
	}
}

// ComputePaymentAmount calcula el monto de pago de una cotización según su
// plan: con "full" es el total (el porcentaje se ignora); con "part" es
// total × percentage / 100.
func ComputePaymentAmount(total decimal.Decimal, plan string, percentage decimal.Decimal) decimal.Decimal {
	if plan == entity.PaymentPlanPart {
		return total.Mul(percentage).Div(hundred)
	}
	return total
}

// RemainingBalance es el saldo pendiente tras el pago parcial.
func RemainingBalance(total, paymentAmount decimal.Decimal) decimal.Decimal {
	return total.Sub(paymentAmount)
}
