package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en un recibo.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
	PaymentMethodOther        = "other"
)

// Receipt representa un recibo de pago. No tiene estado: su existencia es la
// constancia de un pago realizado. Referencia como máximo a una factura o a
// una cotización, nunca a ambas.
type Receipt struct {
	ID               string
	OwnerID          string
	ClientID         string
	Number           string // ej. "RCT-2503-012"
	Currency         string
	Date             time.Time
	InvoiceID        string // vacío si el recibo no referencia factura
	QuoteID          string // vacío si el recibo no referencia cotización
	PaymentMethod    string
	PaymentReference string
	AmountReceived   decimal.Decimal
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
