package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización. accepted, rejected y expired son terminales.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusViewed   = "viewed"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
	QuoteStatusExpired  = "expired"
)

// Planes de pago de una cotización.
const (
	PaymentPlanFull = "full" // pago único por el total
	PaymentPlanPart = "part" // anticipo de PaymentPercentage sobre el total
)

// Quote representa una cotización. PaymentAmount es derivado del total y del
// plan de pago; PaymentPercentage solo tiene significado con plan "part".
type Quote struct {
	ID                string
	OwnerID           string
	ClientID          string
	Number            string // ej. "QT-2503-004"
	Currency          string
	IssueDate         time.Time
	ExpiryDate        time.Time
	Status            string
	TaxRate           decimal.Decimal // porcentaje 0–100
	DiscountAmount    decimal.Decimal
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	Total             decimal.Decimal
	PaymentPlan       string          // full | part
	PaymentPercentage decimal.Decimal // 1–100, solo con plan part
	PaymentAmount     decimal.Decimal
	Notes             string
	Terms             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// QuoteItem es una línea de la cotización. Amount es siempre Quantity × UnitPrice.
type QuoteItem struct {
	ID          string
	QuoteID     string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	Position    int
}
