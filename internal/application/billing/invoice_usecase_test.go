package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

func newInvoiceFixture(t *testing.T, cfg Config) (*InvoiceUseCase, *fakeInvoiceRepo, *fakeSequenceRepo) {
	t.Helper()
	invoiceRepo := newFakeInvoiceRepo()
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", OwnerID: "owner-1", Name: "Acme Corp"},
	}}
	seqRepo := &fakeSequenceRepo{counters: map[string]int64{}}
	runner := &fakeTxRunner{invoiceRepo: invoiceRepo, seqRepo: seqRepo}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	uc := NewInvoiceUseCase(runner, invoiceRepo, clientRepo, document.NewNumberAllocator(), cfg)
	return uc, invoiceRepo, seqRepo
}

func invoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID:       "client-1",
		TaxRate:        "19",
		DiscountAmount: "50",
		Items: []dto.LineItemRequest{
			{Description: "Licencia anual", Quantity: "3", UnitPrice: "200"},
			{Description: "Instalación", Quantity: "1", UnitPrice: "400"},
		},
	}
}

func TestInvoiceCreate_TotalesConDescuento(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	resp, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	// subtotal 1000, impuesto 19% = 190, total 1000+190−50 = 1140
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(190)), "impuesto %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1140)), "total %s", resp.Total)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.Regexp(t, `^INV-\d{4}-\d{3}$`, resp.Number)
	assert.Len(t, resp.Items, 2)
}

func TestInvoiceCreate_ClienteAjenoProhibido(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	_, err := uc.Create(context.Background(), "owner-2", invoiceRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvoiceCreate_CantidadInvalidaEstricta(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	req := invoiceRequest()
	req.Items[0].Quantity = "abc"
	_, err := uc.Create(context.Background(), "owner-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceCreate_CantidadInvalidaLenienteVaACero(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{LenientNumbers: true})

	req := invoiceRequest()
	req.Items[0].Quantity = "abc" // 3×200 se convierte en 0×200
	resp, err := uc.Create(context.Background(), "owner-1", req)
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(400)), "subtotal %s", resp.Subtotal)
}

func TestInvoiceCreate_ContadorCaidoUsaNumeroDeEmergencia(t *testing.T) {
	uc, _, seqRepo := newInvoiceFixture(t, Config{})
	seqRepo.fail = true

	resp, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err, "el contador caído no debe bloquear la creación")
	assert.Regexp(t, `^INV-\d{4}-\d{3}$`, resp.Number)
}

func TestInvoiceUpdate_ReemplazaLineas(t *testing.T) {
	uc, invoiceRepo, _ := newInvoiceFixture(t, Config{})

	created, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	req := invoiceRequest()
	req.DiscountAmount = ""
	req.TaxRate = "0"
	req.Items = []dto.LineItemRequest{
		{Description: "Único servicio", Quantity: "1", UnitPrice: "250"},
	}
	updated, err := uc.Update(context.Background(), "owner-1", created.ID, req)
	require.NoError(t, err)

	assert.True(t, updated.Total.Equal(decimal.NewFromInt(250)), "total %s", updated.Total)
	items, _ := invoiceRepo.GetItemsByInvoiceID(created.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "Único servicio", items[0].Description)
	assert.Equal(t, created.Number, updated.Number, "el número asignado no cambia al editar")
}

func TestInvoiceUpdate_SinLineasConservaElDocumento(t *testing.T) {
	uc, invoiceRepo, _ := newInvoiceFixture(t, Config{})

	created, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	req := invoiceRequest()
	req.Items = nil
	_, err = uc.Update(context.Background(), "owner-1", created.ID, req)
	assert.ErrorIs(t, err, domain.ErrLastLineItem)

	items, _ := invoiceRepo.GetItemsByInvoiceID(created.ID)
	assert.Len(t, items, 2, "las líneas existentes quedan intactas")
}

func TestInvoiceUpdateStatus_CicloDeVida(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	created, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusSent))
	require.NoError(t, uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusPaid))

	// paid es terminal
	err = uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

func TestInvoiceUpdateStatus_CanceladaSoloVuelveABorrador(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	created, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusCancelled))

	err = uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
	assert.NoError(t, uc.UpdateStatus(context.Background(), "owner-1", created.ID, entity.InvoiceStatusDraft))
}

func TestInvoiceNextNumber_VistaPreviaPorConteo(t *testing.T) {
	uc, _, _ := newInvoiceFixture(t, Config{})

	n, err := uc.NextNumber(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{4}-001$`, n)

	// la vista previa queda cacheada hasta que un documento se guarde
	again, err := uc.NextNumber(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, n, again)

	_, err = uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	after, err := uc.NextNumber(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d{4}-002$`, after)
}

func TestInvoiceDelete_OtroPropietarioProhibido(t *testing.T) {
	uc, invoiceRepo, _ := newInvoiceFixture(t, Config{})

	created, err := uc.Create(context.Background(), "owner-1", invoiceRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(context.Background(), "owner-2", created.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), "owner-1", created.ID))
	got, _ := invoiceRepo.GetByID(created.ID)
	assert.Nil(t, got)
}
