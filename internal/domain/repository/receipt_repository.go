package repository

import (
	"time"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para recibos.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	Update(receipt *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Receipt, error)
	Delete(id string) error
	CountInPeriod(ownerID string, from, to time.Time) (int64, error)
}
