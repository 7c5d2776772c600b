package document

import (
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// Ciclo de vida de documentos.
//
// El grafo draft → sent → viewed → ... describe el flujo típico, no un
// autómata estricto: el usuario puede reasignar directamente cualquier estado
// no terminal. Lo único que sí se bloquea son los estados terminales, con una
// excepción explícita: una factura cancelada puede revertirse a draft.
// Los recibos no tienen estado.

var invoiceStatuses = map[string]bool{
	entity.InvoiceStatusDraft:     true,
	entity.InvoiceStatusSent:      true,
	entity.InvoiceStatusViewed:    true,
	entity.InvoiceStatusPaid:      true,
	entity.InvoiceStatusOverdue:   true,
	entity.InvoiceStatusCancelled: true,
}

var quoteStatuses = map[string]bool{
	entity.QuoteStatusDraft:    true,
	entity.QuoteStatusSent:     true,
	entity.QuoteStatusViewed:   true,
	entity.QuoteStatusAccepted: true,
	entity.QuoteStatusRejected: true,
	entity.QuoteStatusExpired:  true,
}

// ValidStatus indica si status existe para el tipo de documento.
func ValidStatus(docType, status string) bool {
	switch docType {
	case DocTypeInvoice:
		return invoiceStatuses[status]
	case DocTypeQuote:
		return quoteStatuses[status]
	default:
		return false
	}
}

// IsTerminal indica si status no admite más transiciones para el tipo dado.
// "cancelled" de factura no se considera terminal porque admite el revert a draft.
func IsTerminal(docType, status string) bool {
	switch docType {
	case DocTypeInvoice:
		return status == entity.InvoiceStatusPaid
	case DocTypeQuote:
		return status == entity.QuoteStatusAccepted ||
			status == entity.QuoteStatusRejected ||
			status == entity.QuoteStatusExpired
	default:
		return false
	}
}

// ValidateTransition valida la reasignación de estado from → to.
//
//   - to debe existir para el tipo de documento (ErrInvalidStatus).
//   - from terminal no admite cambios (ErrStatusLocked).
//   - factura cancelada solo admite el revert a draft (ErrStatusLocked para
//     cualquier otro destino).
//   - el resto de reasignaciones entre estados no terminales es libre.
func ValidateTransition(docType, from, to string) error {
	if !ValidStatus(docType, to) {
		return domain.ErrInvalidStatus
	}
	if !ValidStatus(docType, from) {
		return domain.ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	if IsTerminal(docType, from) {
		return domain.ErrStatusLocked
	}
	if docType == DocTypeInvoice && from == entity.InvoiceStatusCancelled && to != entity.InvoiceStatusDraft {
		return domain.ErrStatusLocked
	}
	return nil
}
