package repository

import "github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// List devuelve usuarios paginados (superficie de administración).
	List(limit, offset int) ([]*entity.User, error)
}
