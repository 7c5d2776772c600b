package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/billing"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción, ejecuta fn con repos de facturación
// atados a la tx y hace Commit o Rollback. Las escrituras compuestas
// (documento + líneas, conversión de cotización) pasan por aquí.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	receiptRepo repository.ReceiptRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	quoteRepo := NewQuoteRepository(tx)
	receiptRepo := NewReceiptRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(invoiceRepo, quoteRepo, receiptRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
