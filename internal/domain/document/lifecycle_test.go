package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

func TestValidateTransition_FlujoTipicoFactura(t *testing.T) {
	steps := [][2]string{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusSent},
		{entity.InvoiceStatusSent, entity.InvoiceStatusViewed},
		{entity.InvoiceStatusViewed, entity.InvoiceStatusPaid},
		{entity.InvoiceStatusViewed, entity.InvoiceStatusOverdue},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled},
	}
	for _, s := range steps {
		assert.NoError(t, document.ValidateTransition(document.DocTypeInvoice, s[0], s[1]),
			"%s → %s debe permitirse", s[0], s[1])
	}
}

// La reasignación directa entre estados no terminales es libre: el grafo
// típico no es un autómata estricto.
func TestValidateTransition_ReasignacionLibreNoTerminal(t *testing.T) {
	assert.NoError(t, document.ValidateTransition(document.DocTypeInvoice,
		entity.InvoiceStatusViewed, entity.InvoiceStatusDraft))
	assert.NoError(t, document.ValidateTransition(document.DocTypeQuote,
		entity.QuoteStatusViewed, entity.QuoteStatusSent))
}

func TestValidateTransition_PaidEsTerminal(t *testing.T) {
	err := document.ValidateTransition(document.DocTypeInvoice,
		entity.InvoiceStatusPaid, entity.InvoiceStatusDraft)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

// Revert explícito permitido: cancelled → draft, y solo a draft.
func TestValidateTransition_CancelledSoloRevierteADraft(t *testing.T) {
	assert.NoError(t, document.ValidateTransition(document.DocTypeInvoice,
		entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft))

	err := document.ValidateTransition(document.DocTypeInvoice,
		entity.InvoiceStatusCancelled, entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

func TestValidateTransition_TerminalesDeCotizacion(t *testing.T) {
	for _, terminal := range []string{
		entity.QuoteStatusAccepted,
		entity.QuoteStatusRejected,
		entity.QuoteStatusExpired,
	} {
		err := document.ValidateTransition(document.DocTypeQuote, terminal, entity.QuoteStatusDraft)
		assert.ErrorIs(t, err, domain.ErrStatusLocked, "desde %s", terminal)
	}
}

func TestValidateTransition_EstadoDesconocido(t *testing.T) {
	err := document.ValidateTransition(document.DocTypeInvoice, entity.InvoiceStatusDraft, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// "accepted" existe para cotizaciones pero no para facturas.
	err = document.ValidateTransition(document.DocTypeInvoice, entity.InvoiceStatusDraft, entity.QuoteStatusAccepted)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Los recibos no tienen estado.
	err = document.ValidateTransition(document.DocTypeReceipt, "draft", "sent")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestValidateTransition_MismoEstadoEsNoOp(t *testing.T) {
	assert.NoError(t, document.ValidateTransition(document.DocTypeQuote,
		entity.QuoteStatusSent, entity.QuoteStatusSent))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, document.IsTerminal(document.DocTypeInvoice, entity.InvoiceStatusPaid))
	assert.False(t, document.IsTerminal(document.DocTypeInvoice, entity.InvoiceStatusCancelled),
		"cancelled admite el revert a draft")
	assert.True(t, document.IsTerminal(document.DocTypeQuote, entity.QuoteStatusExpired))
	assert.False(t, document.IsTerminal(document.DocTypeQuote, entity.QuoteStatusViewed))
}
