package repository

import (
	"time"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para cotizaciones y sus líneas.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	Update(quote *entity.Quote) error
	UpdateStatus(id, status string, updatedAt time.Time) error
	GetByID(id string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	DeleteItemsByQuoteID(quoteID string) error
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Quote, error)
	Delete(id string) error
	CountInPeriod(ownerID string, from, to time.Time) (int64, error)
}
