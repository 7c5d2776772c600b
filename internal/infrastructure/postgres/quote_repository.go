package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, owner_id, client_id, number, currency, issue_date, expiry_date, status,
	       tax_rate, discount_amount, subtotal, tax_amount, total,
	       payment_plan, payment_percentage, payment_amount,
	       COALESCE(notes, ''), COALESCE(terms, ''), created_at, updated_at`

// Create persiste la cabecera de la cotización.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, owner_id, client_id, number, currency, issue_date, expiry_date, status,
		                    tax_rate, discount_amount, subtotal, tax_amount, total,
		                    payment_plan, payment_percentage, payment_amount, notes, terms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.OwnerID, quote.ClientID, quote.Number, quote.Currency,
		quote.IssueDate, quote.ExpiryDate, quote.Status,
		quote.TaxRate, quote.DiscountAmount, quote.Subtotal, quote.TaxAmount, quote.Total,
		quote.PaymentPlan, quote.PaymentPercentage, quote.PaymentAmount,
		nullIfEmpty(quote.Notes), nullIfEmpty(quote.Terms), quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la cotización.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, description, quantity, unit_price, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.Description, item.Quantity, item.UnitPrice, item.Amount, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// Update reescribe la cabecera completa (totales y plan de pago incluidos).
func (r *QuoteRepo) Update(quote *entity.Quote) error {
	query := `
		UPDATE quotes
		SET client_id = $2, number = $3, currency = $4, issue_date = $5, expiry_date = $6,
		    tax_rate = $7, discount_amount = $8, subtotal = $9, tax_amount = $10, total = $11,
		    payment_plan = $12, payment_percentage = $13, payment_amount = $14,
		    notes = $15, terms = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.ClientID, quote.Number, quote.Currency,
		quote.IssueDate, quote.ExpiryDate,
		quote.TaxRate, quote.DiscountAmount, quote.Subtotal, quote.TaxAmount, quote.Total,
		quote.PaymentPlan, quote.PaymentPercentage, quote.PaymentAmount,
		nullIfEmpty(quote.Notes), nullIfEmpty(quote.Terms), quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *QuoteRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID. Devuelve (nil, nil) si no existe.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// GetItemsByQuoteID obtiene las líneas ordenadas por posición.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, description, quantity, unit_price, amount, position
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Amount, &it.Position); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteItemsByQuoteID borra todas las líneas (para reescritura en Update).
func (r *QuoteRepo) DeleteItemsByQuoteID(quoteID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quote_items WHERE quote_id = $1`, quoteID)
	if err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	return nil
}

// ListByOwner lista las cotizaciones del propietario, más recientes primero.
func (r *QuoteRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quotes WHERE owner_id = $1 ORDER BY issue_date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Delete elimina la cotización; las líneas caen por ON DELETE CASCADE.
func (r *QuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// CountInPeriod cuenta las cotizaciones del propietario emitidas en [from, to).
func (r *QuoteRepo) CountInPeriod(ownerID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotes WHERE owner_id = $1 AND issue_date >= $2 AND issue_date < $3`,
		ownerID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return count, nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.OwnerID, &q.ClientID, &q.Number, &q.Currency,
		&q.IssueDate, &q.ExpiryDate, &q.Status,
		&q.TaxRate, &q.DiscountAmount, &q.Subtotal, &q.TaxAmount, &q.Total,
		&q.PaymentPlan, &q.PaymentPercentage, &q.PaymentAmount,
		&q.Notes, &q.Terms, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
