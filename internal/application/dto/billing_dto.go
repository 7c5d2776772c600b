package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de documento tal como llega del formulario.
// Quantity y UnitPrice viajan como texto: la coerción numérica (estricta o
// leniente según configuración) ocurre en el use case, no en el parser JSON.
type LineItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// LineItemResponse línea en respuestas, con el monto derivado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateInvoiceRequest body para POST /api/invoices (también para PUT).
type CreateInvoiceRequest struct {
	ClientID       string            `json:"client_id"`
	Number         string            `json:"number,omitempty"` // opcional; vacío = se asigna al crear
	Currency       string            `json:"currency,omitempty"`
	IssueDate      string            `json:"issue_date,omitempty"` // YYYY-MM-DD
	DueDate        string            `json:"due_date,omitempty"`
	TaxRate        string            `json:"tax_rate,omitempty"` // porcentaje 0–100
	DiscountAmount string            `json:"discount_amount,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Terms          string            `json:"terms,omitempty"`
	Items          []LineItemRequest `json:"items"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID             string             `json:"id"`
	ClientID       string             `json:"client_id"`
	ClientName     string             `json:"client_name,omitempty"`
	Number         string             `json:"number"`
	Currency       string             `json:"currency"`
	IssueDate      string             `json:"issue_date"`
	DueDate        string             `json:"due_date,omitempty"`
	Status         string             `json:"status"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Total          decimal.Decimal    `json:"total"`
	TotalDisplay   string             `json:"total_display"` // total formateado con la moneda
	Notes          string             `json:"notes,omitempty"`
	Terms          string             `json:"terms,omitempty"`
	Items          []LineItemResponse `json:"items"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateQuoteRequest body para POST /api/quotes (también para PUT).
type CreateQuoteRequest struct {
	ClientID          string            `json:"client_id"`
	Number            string            `json:"number,omitempty"`
	Currency          string            `json:"currency,omitempty"`
	IssueDate         string            `json:"issue_date,omitempty"`
	ExpiryDate        string            `json:"expiry_date,omitempty"`
	TaxRate           string            `json:"tax_rate,omitempty"`
	DiscountAmount    string            `json:"discount_amount,omitempty"`
	PaymentPlan       string            `json:"payment_plan,omitempty"`       // full | part
	PaymentPercentage string            `json:"payment_percentage,omitempty"` // 1–100, solo con part
	Notes             string            `json:"notes,omitempty"`
	Terms             string            `json:"terms,omitempty"`
	Items             []LineItemRequest `json:"items"`
}

// QuoteResponse cotización con detalle y desglose del plan de pago.
type QuoteResponse struct {
	ID                string             `json:"id"`
	ClientID          string             `json:"client_id"`
	ClientName        string             `json:"client_name,omitempty"`
	Number            string             `json:"number"`
	Currency          string             `json:"currency"`
	IssueDate         string             `json:"issue_date"`
	ExpiryDate        string             `json:"expiry_date,omitempty"`
	Status            string             `json:"status"`
	TaxRate           decimal.Decimal    `json:"tax_rate"`
	DiscountAmount    decimal.Decimal    `json:"discount_amount"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TaxAmount         decimal.Decimal    `json:"tax_amount"`
	Total             decimal.Decimal    `json:"total"`
	PaymentPlan       string             `json:"payment_plan"`
	PaymentPercentage decimal.Decimal    `json:"payment_percentage"`
	PaymentAmount     decimal.Decimal    `json:"payment_amount"`
	RemainingBalance  decimal.Decimal    `json:"remaining_balance"`
	TotalDisplay      string             `json:"total_display"`
	Notes             string             `json:"notes,omitempty"`
	Terms             string             `json:"terms,omitempty"`
	Items             []LineItemResponse `json:"items"`
}

// QuoteListResponse listado paginado de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateStatusRequest body para PATCH /api/{invoices|quotes}/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateReceiptRequest body para POST /api/receipts (también para PUT).
// InvoiceID y QuoteID son mutuamente excluyentes.
type CreateReceiptRequest struct {
	ClientID         string `json:"client_id"`
	Number           string `json:"number,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Date             string `json:"date,omitempty"` // YYYY-MM-DD
	InvoiceID        string `json:"invoice_id,omitempty"`
	QuoteID          string `json:"quote_id,omitempty"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference,omitempty"`
	AmountReceived   string `json:"amount_received"`
	Notes            string `json:"notes,omitempty"`
}

// ReceiptResponse recibo en respuestas.
type ReceiptResponse struct {
	ID               string          `json:"id"`
	ClientID         string          `json:"client_id"`
	ClientName       string          `json:"client_name,omitempty"`
	Number           string          `json:"number"`
	Currency         string          `json:"currency"`
	Date             string          `json:"date"`
	InvoiceID        string          `json:"invoice_id,omitempty"`
	QuoteID          string          `json:"quote_id,omitempty"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	AmountReceived   decimal.Decimal `json:"amount_received"`
	AmountDisplay    string          `json:"amount_display"`
	Notes            string          `json:"notes,omitempty"`
}

// ReceiptListResponse listado paginado de recibos.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NextNumberResponse vista previa del próximo número de documento.
// El número no queda reservado: la asignación definitiva ocurre al guardar.
type NextNumberResponse struct {
	Number string `json:"number"`
}

// ConvertQuoteResponse resultado de POST /api/quotes/:id/convert.
type ConvertQuoteResponse struct {
	InvoiceID string `json:"invoice_id"`
	Number    string `json:"number"`
}
