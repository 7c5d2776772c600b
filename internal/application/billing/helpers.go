package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
)

const dateLayout = "2006-01-02"

// parseDate interpreta YYYY-MM-DD; vacío retorna def.
func parseDate(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

// formatDate renderiza una fecha para DTO; cero retorna "".
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseItems convierte las líneas del formulario al modelo de dominio,
// recalculando el monto de cada una. La coerción numérica sigue el modo
// configurado (estricto por defecto, leniente si BILLING_LENIENT_NUMBERS).
func parseItems(in []dto.LineItemRequest, lenient bool) ([]document.LineItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]document.LineItem, 0, len(in))
	for _, req := range in {
		qty, err := document.ParseAmount(req.Quantity, lenient)
		if err != nil {
			return nil, err
		}
		price, err := document.ParseAmount(req.UnitPrice, lenient)
		if err != nil {
			return nil, err
		}
		if qty.IsNegative() || price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		li := document.NewLineItem(uuid.New().String())
		li.Description = req.Description
		li = li.WithQuantity(qty).WithUnitPrice(price)
		items = append(items, li)
	}
	return items, nil
}

// periodBounds devuelve [inicio, fin) del mes calendario de t, el periodo del
// esquema de numeración.
func periodBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

// parseRate interpreta un porcentaje 0–100.
func parseRate(raw string, lenient bool) (decimal.Decimal, error) {
	rate, err := document.ParseAmount(raw, lenient)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return rate, nil
}

func toLineItemResponses(items []document.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, dto.LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		})
	}
	return out
}
