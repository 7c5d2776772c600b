package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas del propietario para la vista principal.
type DashboardResponse struct {
	InvoiceCount     int             `json:"invoice_count"`
	QuoteCount       int             `json:"quote_count"`
	ReceiptCount     int             `json:"receipt_count"`
	ClientCount      int             `json:"client_count"`
	RevenueCollected decimal.Decimal `json:"revenue_collected"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	QuotesAccepted   int             `json:"quotes_accepted"`
	QuotesPending    int             `json:"quotes_pending"`
	AcceptanceRate   decimal.Decimal `json:"acceptance_rate"` // porcentaje 0–100
}
