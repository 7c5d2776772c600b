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
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string][]*entity.InvoiceItem{},
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
		inv.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	delete(r.items, id)
	return nil
}

func (r *fakeInvoiceRepo) CountInPeriod(ownerID string, from, to time.Time) (int64, error) {
	var n int64
	for _, inv := range r.invoices {
		if inv.OwnerID == ownerID && !inv.IssueDate.Before(from) && inv.IssueDate.Before(to) {
			n++
		}
	}
	return n, nil
}

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
	items  map[string][]*entity.QuoteItem
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes: map[string]*entity.Quote{},
		items:  map[string][]*entity.QuoteItem{},
	}
}

func (r *fakeQuoteRepo) Create(q *entity.Quote) error {
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) CreateItem(item *entity.QuoteItem) error {
	cp := *item
	r.items[item.QuoteID] = append(r.items[item.QuoteID], &cp)
	return nil
}

func (r *fakeQuoteRepo) Update(q *entity.Quote) error {
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	if q, ok := r.quotes[id]; ok {
		q.Status = status
		q.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.quotes[id], nil
}

func (r *fakeQuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	return r.items[quoteID], nil
}

func (r *fakeQuoteRepo) DeleteItemsByQuoteID(quoteID string) error {
	delete(r.items, quoteID)
	return nil
}

func (r *fakeQuoteRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.quotes {
		if q.OwnerID == ownerID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) Delete(id string) error {
	delete(r.quotes, id)
	delete(r.items, id)
	return nil
}

func (r *fakeQuoteRepo) CountInPeriod(ownerID string, from, to time.Time) (int64, error) {
	var n int64
	for _, q := range r.quotes {
		if q.OwnerID == ownerID && !q.IssueDate.Before(from) && q.IssueDate.Before(to) {
			n++
		}
	}
	return n, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
	fail     bool
}

func (r *fakeSequenceRepo) Next(ownerID, docType, period string) (int64, error) {
	if r.fail {
		return 0, assert.AnError
	}
	key := ownerID + "/" + docType + "/" + period
	r.counters[key]++
	return r.counters[key], nil
}

// fakeTxRunner ejecuta el callback directamente sobre los repos en memoria.
type fakeTxRunner struct {
	invoiceRepo repository.InvoiceRepository
	quoteRepo   repository.QuoteRepository
	receiptRepo repository.ReceiptRepository
	seqRepo     repository.SequenceRepository
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	repository.InvoiceRepository,
	repository.QuoteRepository,
	repository.ReceiptRepository,
	repository.SequenceRepository,
) error) error {
	return fn(r.invoiceRepo, r.quoteRepo, r.receiptRepo, r.seqRepo)
}

// ── armado ────────────────────────────────────────────────────────────────────

func newQuoteFixture(t *testing.T) (*QuoteUseCase, *fakeInvoiceRepo, *fakeQuoteRepo) {
	t.Helper()
	invoiceRepo := newFakeInvoiceRepo()
	quoteRepo := newFakeQuoteRepo()
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", OwnerID: "owner-1", Name: "Acme Corp"},
	}}
	seqRepo := &fakeSequenceRepo{counters: map[string]int64{}}
	runner := &fakeTxRunner{
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		seqRepo:     seqRepo,
	}
	uc := NewQuoteUseCase(runner, quoteRepo, clientRepo, document.NewNumberAllocator(), Config{
		DefaultCurrency: "USD",
	})
	return uc, invoiceRepo, quoteRepo
}

func quoteRequest() dto.CreateQuoteRequest {
	return dto.CreateQuoteRequest{
		ClientID:          "client-1",
		TaxRate:           "10",
		PaymentPlan:       "part",
		PaymentPercentage: "40",
		Items: []dto.LineItemRequest{
			{Description: "Diseño", Quantity: "2", UnitPrice: "100"},
			{Description: "Desarrollo", Quantity: "1", UnitPrice: "800"},
		},
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestQuoteCreate_TotalesYPlanDePago(t *testing.T) {
	uc, _, _ := newQuoteFixture(t)

	resp, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)

	// subtotal 1000, impuesto 100, total 1100; pago parcial 40% = 440
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1100)))
	assert.True(t, resp.PaymentAmount.Equal(decimal.NewFromInt(440)))
	assert.True(t, resp.RemainingBalance.Equal(decimal.NewFromInt(660)))
	assert.Equal(t, entity.QuoteStatusDraft, resp.Status)
	assert.Regexp(t, `^QT-\d{4}-\d{3}$`, resp.Number)
	assert.Equal(t, "USD", resp.Currency)
}

func TestQuoteCreate_SinLineasRechazada(t *testing.T) {
	uc, _, _ := newQuoteFixture(t)

	req := quoteRequest()
	req.Items = nil
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuoteUpdate_SinLineasConservaElDocumento(t *testing.T) {
	uc, _, quoteRepo := newQuoteFixture(t)

	created, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)

	req := quoteRequest()
	req.Items = nil
	_, err = uc.Update(context.Background(), "owner-1", created.ID, req)
	assert.ErrorIs(t, err, domain.ErrLastLineItem)

	items, _ := quoteRepo.GetItemsByQuoteID(created.ID)
	assert.Len(t, items, 2, "las líneas existentes quedan intactas")
}

func TestQuoteConvert_CreaFacturaYAceptaCotizacion(t *testing.T) {
	uc, invoiceRepo, quoteRepo := newQuoteFixture(t)

	created, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)

	out, err := uc.Convert(context.Background(), "owner-1", created.ID)
	require.NoError(t, err)

	// La factura nueva copia agregados y líneas de la cotización.
	inv := invoiceRepo.invoices[out.InvoiceID]
	require.NotNil(t, inv)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Total.Equal(created.Total))
	assert.True(t, inv.Subtotal.Equal(created.Subtotal))
	assert.True(t, inv.TaxRate.Equal(created.TaxRate))
	assert.Regexp(t, `^INV-\d{4}-\d{3}$`, out.Number)

	items, _ := invoiceRepo.GetItemsByInvoiceID(out.InvoiceID)
	require.Len(t, items, 2)
	assert.Equal(t, "Diseño", items[0].Description)
	assert.True(t, items[1].Amount.Equal(decimal.NewFromInt(800)))

	// La cotización queda aceptada.
	q, _ := quoteRepo.GetByID(created.ID)
	assert.Equal(t, entity.QuoteStatusAccepted, q.Status)
}

func TestQuoteConvert_FallaLaFacturaYLaCotizacionNoSeAcepta(t *testing.T) {
	uc, invoiceRepo, quoteRepo := newQuoteFixture(t)

	created, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.QuoteStatusSent))

	invoiceRepo.createErr = assert.AnError
	_, err = uc.Convert(context.Background(), "owner-1", created.ID)
	require.Error(t, err)

	q, _ := quoteRepo.GetByID(created.ID)
	assert.Equal(t, entity.QuoteStatusSent, q.Status, "la aceptación solo ocurre si la factura se insertó")
	assert.Empty(t, invoiceRepo.invoices)
}

func TestQuoteConvert_RechazadaNoConvierte(t *testing.T) {
	uc, _, quoteRepo := newQuoteFixture(t)

	created, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)
	require.NoError(t, quoteRepo.UpdateStatus(created.ID, entity.QuoteStatusRejected, time.Now()))

	_, err = uc.Convert(context.Background(), "owner-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

func TestQuoteConvert_OtroPropietarioProhibido(t *testing.T) {
	uc, _, _ := newQuoteFixture(t)

	created, err := uc.Create(context.Background(), "owner-1", quoteRequest())
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), "owner-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestQuoteUpdateStatus_CicloDeVida(t *testing.T) {
	uc, _, _ := newQuoteFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, "owner-1", quoteRequest())
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(ctx, "owner-1", created.ID, entity.QuoteStatusSent))
	require.NoError(t, uc.UpdateStatus(ctx, "owner-1", created.ID, entity.QuoteStatusRejected))

	// Rechazada es terminal.
	err = uc.UpdateStatus(ctx, "owner-1", created.ID, entity.QuoteStatusDraft)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

func TestQuoteCreate_NumeroSecuencialPorPeriodo(t *testing.T) {
	uc, _, _ := newQuoteFixture(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, "owner-1", quoteRequest())
	require.NoError(t, err)
	second, err := uc.Create(ctx, "owner-1", quoteRequest())
	require.NoError(t, err)

	period := document.Period(time.Now())
	assert.Equal(t, "QT-"+period+"-001", first.Number)
	assert.Equal(t, "QT-"+period+"-002", second.Number)
}
