package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardSummary agrega en una sola consulta los conteos y montos del
// propietario. Ingresos cobrados = facturas pagadas; pendiente de cobro =
// facturas enviadas, vistas o vencidas.
func (r *AnalyticsRepo) GetDashboardSummary(ownerID string) (*repository.DashboardSummary, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM invoices WHERE owner_id = $1)                                   AS invoice_count,
	    (SELECT COUNT(*) FROM quotes   WHERE owner_id = $1)                                   AS quote_count,
	    (SELECT COUNT(*) FROM receipts WHERE owner_id = $1)                                   AS receipt_count,
	    (SELECT COUNT(*) FROM clients  WHERE owner_id = $1)                                   AS client_count,
	    (SELECT COALESCE(SUM(total), 0) FROM invoices WHERE owner_id = $1 AND status = $2)    AS revenue_collected,
	    (SELECT COALESCE(SUM(total), 0) FROM invoices
	        WHERE owner_id = $1 AND status IN ($3, $4, $5))                                   AS outstanding,
	    (SELECT COUNT(*) FROM quotes WHERE owner_id = $1 AND status = $6)                     AS quotes_accepted,
	    (SELECT COUNT(*) FROM quotes WHERE owner_id = $1 AND status IN ($7, $3, $4))          AS quotes_pending`

	var s repository.DashboardSummary
	err := r.pool.QueryRow(context.Background(), query,
		ownerID,
		entity.InvoiceStatusPaid,
		entity.InvoiceStatusSent, entity.InvoiceStatusViewed, entity.InvoiceStatusOverdue,
		entity.QuoteStatusAccepted,
		entity.QuoteStatusDraft,
	).Scan(
		&s.InvoiceCount, &s.QuoteCount, &s.ReceiptCount, &s.ClientCount,
		&s.RevenueCollected, &s.Outstanding,
		&s.QuotesAccepted, &s.QuotesPending,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &s, nil
}
