package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación de BusinessRepository sobre PostgreSQL.
// Cada propietario tiene a lo sumo un perfil (unique en owner_id).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador del perfil de negocio.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste el perfil de negocio.
func (r *BusinessRepo) Create(b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, name, tax_id, email, phone, address, default_currency, default_tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.OwnerID, b.Name, b.TaxID, b.Email, b.Phone, b.Address,
		b.DefaultCurrency, b.DefaultTaxRate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByOwner obtiene el perfil del propietario. Devuelve (nil, nil) si no existe.
func (r *BusinessRepo) GetByOwner(ownerID string) (*entity.Business, error) {
	query := `
		SELECT id, owner_id, name, tax_id, email, phone, address, default_currency, default_tax_rate, created_at, updated_at
		FROM businesses WHERE owner_id = $1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query, ownerID).Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.TaxID, &b.Email, &b.Phone, &b.Address,
		&b.DefaultCurrency, &b.DefaultTaxRate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update actualiza el perfil completo.
func (r *BusinessRepo) Update(b *entity.Business) error {
	query := `
		UPDATE businesses
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6,
		    default_currency = $7, default_tax_rate = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.TaxID, b.Email, b.Phone, b.Address,
		b.DefaultCurrency, b.DefaultTaxRate, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}
