package repository

import (
	"time"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// Update reescribe la cabecera completa (totales incluidos).
	Update(invoice *entity.Invoice) error
	UpdateStatus(id, status string, updatedAt time.Time) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// DeleteItemsByInvoiceID borra todas las líneas; se usa al reemplazarlas
	// en una edición del documento.
	DeleteItemsByInvoiceID(invoiceID string) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Invoice, error)
	Delete(id string) error
	// CountInPeriod cuenta las facturas del propietario emitidas en [from, to).
	// Alimenta la vista previa de numeración (mejor esfuerzo).
	CountInPeriod(ownerID string, from, to time.Time) (int64, error)
}
