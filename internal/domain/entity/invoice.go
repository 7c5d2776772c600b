package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. El flujo típico es
// draft → sent → viewed → paid | overdue | cancelled, pero salvo los estados
// terminales la asignación directa entre estados es libre (ver domain/document).
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusViewed    = "viewed"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice representa la cabecera de una factura.
// Subtotal, TaxAmount y Total son derivados: se recalculan siempre desde las
// líneas con el motor de totales, nunca se editan de forma independiente.
type Invoice struct {
	ID             string
	OwnerID        string
	ClientID       string
	Number         string // ej. "INV-2503-007"
	Currency       string // código ISO 4217
	IssueDate      time.Time
	DueDate        time.Time
	Status         string
	TaxRate        decimal.Decimal // porcentaje 0–100
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	Terms          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceItem es una línea facturable de la factura.
// Amount es siempre Quantity × UnitPrice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	Position    int // orden de la línea dentro del documento
}
