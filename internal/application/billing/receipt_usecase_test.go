package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

type fakeReceiptRepo struct {
	receipts map[string]*entity.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: map[string]*entity.Receipt{}}
}

func (r *fakeReceiptRepo) Create(rec *entity.Receipt) error {
	cp := *rec
	r.receipts[rec.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) Update(rec *entity.Receipt) error {
	cp := *rec
	r.receipts[rec.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	return r.receipts[id], nil
}

func (r *fakeReceiptRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, rec := range r.receipts {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReceiptRepo) Delete(id string) error {
	delete(r.receipts, id)
	return nil
}

func (r *fakeReceiptRepo) CountInPeriod(ownerID string, from, to time.Time) (int64, error) {
	var n int64
	for _, rec := range r.receipts {
		if rec.OwnerID == ownerID && !rec.Date.Before(from) && rec.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func newReceiptFixture(t *testing.T) (*ReceiptUseCase, *fakeInvoiceRepo, *fakeQuoteRepo) {
	t.Helper()
	receiptRepo := newFakeReceiptRepo()
	invoiceRepo := newFakeInvoiceRepo()
	quoteRepo := newFakeQuoteRepo()
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", OwnerID: "owner-1", Name: "Acme Corp"},
	}}
	runner := &fakeTxRunner{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		receiptRepo: receiptRepo,
		seqRepo:     &fakeSequenceRepo{counters: map[string]int64{}},
	}
	uc := NewReceiptUseCase(runner, receiptRepo, invoiceRepo, quoteRepo, clientRepo,
		document.NewNumberAllocator(), Config{DefaultCurrency: "USD"})
	return uc, invoiceRepo, quoteRepo
}

func receiptRequest() dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		ClientID:       "client-1",
		PaymentMethod:  entity.PaymentMethodBankTransfer,
		AmountReceived: "500",
	}
}

func TestReceiptCreate_SueltoSinReferencia(t *testing.T) {
	uc, _, _ := newReceiptFixture(t)

	resp, err := uc.Create(context.Background(), "owner-1", receiptRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^RCT-\d{4}-\d{3}$`, resp.Number)
	assert.True(t, resp.AmountReceived.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, resp.InvoiceID)
	assert.Empty(t, resp.QuoteID)
}

func TestReceiptCreate_AmbasReferenciasRechazada(t *testing.T) {
	uc, invoiceRepo, quoteRepo := newReceiptFixture(t)
	invoiceRepo.Create(&entity.Invoice{ID: "inv-1", OwnerID: "owner-1"})
	quoteRepo.Create(&entity.Quote{ID: "qt-1", OwnerID: "owner-1"})

	req := receiptRequest()
	req.InvoiceID = "inv-1"
	req.QuoteID = "qt-1"
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiptCreate_FacturaReferenciadaDebeExistir(t *testing.T) {
	uc, _, _ := newReceiptFixture(t)

	req := receiptRequest()
	req.InvoiceID = "no-existe"
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptCreate_FacturaAjenaProhibida(t *testing.T) {
	uc, invoiceRepo, _ := newReceiptFixture(t)
	invoiceRepo.Create(&entity.Invoice{ID: "inv-ajena", OwnerID: "owner-2"})

	req := receiptRequest()
	req.InvoiceID = "inv-ajena"
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceiptCreate_MontoYMetodoValidados(t *testing.T) {
	uc, _, _ := newReceiptFixture(t)

	req := receiptRequest()
	req.AmountReceived = "0"
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero rechazado")

	req = receiptRequest()
	req.PaymentMethod = "cheque"
	_, err = uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método desconocido rechazado")
}

func TestReceiptUpdate_CambiaReferencia(t *testing.T) {
	uc, _, quoteRepo := newReceiptFixture(t)
	quoteRepo.Create(&entity.Quote{ID: "qt-1", OwnerID: "owner-1"})

	created, err := uc.Create(context.Background(), "owner-1", receiptRequest())
	require.NoError(t, err)

	req := receiptRequest()
	req.QuoteID = "qt-1"
	req.AmountReceived = "750.25"
	updated, err := uc.Update(context.Background(), "owner-1", created.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "qt-1", updated.QuoteID)
	assert.True(t, updated.AmountReceived.Equal(decimal.RequireFromString("750.25")))
	assert.Equal(t, created.Number, updated.Number)
}
