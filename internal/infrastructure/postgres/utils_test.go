package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// errQuerier devuelve siempre el mismo error en Exec; sirve para probar el
// mapeo de errores de los repositorios sin una base de datos.
type errQuerier struct {
	err error
}

func (q errQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q errQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q errQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("no usado")
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "invoices_owner_id_number_key"}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(uniqueViolation()))
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestCreateInvoice_NumeroDuplicadoEsErrDuplicate(t *testing.T) {
	repo := NewInvoiceRepository(errQuerier{err: uniqueViolation()})

	err := repo.Create(&entity.Invoice{
		ID:        "inv-1",
		OwnerID:   "owner-1",
		ClientID:  "client-1",
		Number:    "INV-2503-001",
		Currency:  "USD",
		IssueDate: time.Now(),
		DueDate:   time.Now(),
		Status:    entity.InvoiceStatusDraft,
		TaxRate:   decimal.Zero,
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		Total:     decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateInvoice_NumeroDuplicadoEsErrDuplicate(t *testing.T) {
	repo := NewInvoiceRepository(errQuerier{err: uniqueViolation()})

	err := repo.Update(&entity.Invoice{ID: "inv-1", Number: "INV-2503-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateQuote_NumeroDuplicadoEsErrDuplicate(t *testing.T) {
	repo := NewQuoteRepository(errQuerier{err: uniqueViolation()})

	err := repo.Create(&entity.Quote{ID: "qt-1", Number: "QT-2503-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateReceipt_NumeroDuplicadoEsErrDuplicate(t *testing.T) {
	repo := NewReceiptRepository(errQuerier{err: uniqueViolation()})

	err := repo.Create(&entity.Receipt{ID: "rc-1", Number: "RCT-2503-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateBusiness_PerfilDuplicadoEsErrDuplicate(t *testing.T) {
	repo := NewBusinessRepository(errQuerier{err: uniqueViolation()})

	err := repo.Create(&entity.Business{ID: "b-1", OwnerID: "owner-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateInvoice_OtroErrorNoEsDuplicate(t *testing.T) {
	repo := NewInvoiceRepository(errQuerier{err: errors.New("connection refused")})

	err := repo.Create(&entity.Invoice{ID: "inv-1"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if v := nullIfEmpty("nota"); assert.NotNil(t, v) {
		assert.Equal(t, "nota", *v)
	}
}
