package repository

import "github.com/shopspring/decimal"

// DashboardSummary resultado crudo de las consultas agregadas del dashboard.
// Lo produce la DB; el use case lo convierte en DTO.
type DashboardSummary struct {
	InvoiceCount     int
	QuoteCount       int
	ReceiptCount     int
	ClientCount      int
	RevenueCollected decimal.Decimal // suma de totales de facturas pagadas
	Outstanding      decimal.Decimal // suma de totales en sent|viewed|overdue
	QuotesAccepted   int
	QuotesPending    int // draft|sent|viewed
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only.
type AnalyticsRepository interface {
	GetDashboardSummary(ownerID string) (*DashboardSummary, error)
}
