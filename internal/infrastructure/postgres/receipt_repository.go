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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, owner_id, client_id, number, currency, date,
	       COALESCE(invoice_id::TEXT, ''), COALESCE(quote_id::TEXT, ''),
	       payment_method, COALESCE(payment_reference, ''), amount_received,
	       COALESCE(notes, ''), created_at, updated_at`

// Create persiste el recibo.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, owner_id, client_id, number, currency, date, invoice_id, quote_id,
		                      payment_method, payment_reference, amount_received, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.OwnerID, receipt.ClientID, receipt.Number, receipt.Currency, receipt.Date,
		nullIfEmpty(receipt.InvoiceID), nullIfEmpty(receipt.QuoteID),
		receipt.PaymentMethod, nullIfEmpty(receipt.PaymentReference), receipt.AmountReceived,
		nullIfEmpty(receipt.Notes), receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// Update reescribe el recibo completo.
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	query := `
		UPDATE receipts
		SET client_id = $2, number = $3, currency = $4, date = $5, invoice_id = $6, quote_id = $7,
		    payment_method = $8, payment_reference = $9, amount_received = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.ClientID, receipt.Number, receipt.Currency, receipt.Date,
		nullIfEmpty(receipt.InvoiceID), nullIfEmpty(receipt.QuoteID),
		receipt.PaymentMethod, nullIfEmpty(receipt.PaymentReference), receipt.AmountReceived,
		nullIfEmpty(receipt.Notes), receipt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un recibo por ID. Devuelve (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	rec, err := scanReceipt(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return rec, nil
}

// ListByOwner lista los recibos del propietario, más recientes primero.
func (r *ReceiptRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + `
		FROM receipts WHERE owner_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Delete elimina el recibo.
func (r *ReceiptRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

// CountInPeriod cuenta los recibos del propietario fechados en [from, to).
func (r *ReceiptRepo) CountInPeriod(ownerID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM receipts WHERE owner_id = $1 AND date >= $2 AND date < $3`,
		ownerID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return count, nil
}

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rec entity.Receipt
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.ClientID, &rec.Number, &rec.Currency, &rec.Date,
		&rec.InvoiceID, &rec.QuoteID,
		&rec.PaymentMethod, &rec.PaymentReference, &rec.AmountReceived,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
