// Package analytics expone las métricas agregadas del dashboard.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

// DashboardUseCase arma la vista principal a partir del resumen agregado.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetDashboard devuelve las métricas del propietario. La tasa de aceptación
// se calcula sobre las cotizaciones resueltas o pendientes; sin cotizaciones
// la tasa es cero, no un error.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	summary, err := uc.analyticsRepo.GetDashboardSummary(ownerID)
	if err != nil {
		return nil, err
	}

	acceptanceRate := decimal.Zero
	if decided := summary.QuotesAccepted + summary.QuotesPending; decided > 0 {
		acceptanceRate = decimal.NewFromInt(int64(summary.QuotesAccepted)).
			Div(decimal.NewFromInt(int64(decided))).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	return &dto.DashboardResponse{
		InvoiceCount:     summary.InvoiceCount,
		QuoteCount:       summary.QuoteCount,
		ReceiptCount:     summary.ReceiptCount,
		ClientCount:      summary.ClientCount,
		RevenueCollected: summary.RevenueCollected,
		Outstanding:      summary.Outstanding,
		QuotesAccepted:   summary.QuotesAccepted,
		QuotesPending:    summary.QuotesPending,
		AcceptanceRate:   acceptanceRate,
	}, nil
}
