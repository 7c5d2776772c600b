package repository

import "github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para el perfil de negocio.
// Cada usuario tiene a lo sumo un perfil.
type BusinessRepository interface {
	Create(b *entity.Business) error
	GetByOwner(ownerID string) (*entity.Business, error)
	Update(b *entity.Business) error
}
