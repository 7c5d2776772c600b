// Package usecase agrupa los casos de uso transversales de la aplicación.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/money"
)

// BusinessUseCase administra el perfil de negocio del propietario (datos del
// emisor que encabezan los documentos).
type BusinessUseCase struct {
	businessRepo    repository.BusinessRepository
	defaultCurrency string
	defaultTaxRate  decimal.Decimal
}

// NewBusinessUseCase construye el caso de uso; los valores por defecto vienen
// de la configuración de facturación.
func NewBusinessUseCase(businessRepo repository.BusinessRepository, defaultCurrency string, defaultTaxRate decimal.Decimal) *BusinessUseCase {
	return &BusinessUseCase{
		businessRepo:    businessRepo,
		defaultCurrency: defaultCurrency,
		defaultTaxRate:  defaultTaxRate,
	}
}

// Get devuelve el perfil del propietario. Si aún no existe, responde un
// perfil vacío con los valores por defecto en lugar de 404: el formulario de
// configuración siempre tiene algo que mostrar.
func (uc *BusinessUseCase) Get(ctx context.Context, ownerID string) (*dto.BusinessResponse, error) {
	b, err := uc.businessRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return &dto.BusinessResponse{
			DefaultCurrency: uc.defaultCurrency,
			DefaultTaxRate:  uc.defaultTaxRate.String(),
		}, nil
	}
	return toBusinessResponse(b), nil
}

// Upsert crea o actualiza el perfil del propietario.
func (uc *BusinessUseCase) Upsert(ctx context.Context, ownerID string, in dto.BusinessRequest) (*dto.BusinessResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	currency := uc.defaultCurrency
	if in.DefaultCurrency != "" {
		if !money.ValidCode(in.DefaultCurrency) {
			return nil, domain.ErrInvalidInput
		}
		currency = in.DefaultCurrency
	}
	taxRate := uc.defaultTaxRate
	if in.DefaultTaxRate != "" {
		parsed, err := document.ParseAmount(in.DefaultTaxRate, false)
		if err != nil {
			return nil, err
		}
		if parsed.IsNegative() || parsed.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		taxRate = parsed
	}

	now := time.Now()
	b, err := uc.businessRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = &entity.Business{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			CreatedAt: now,
		}
		fillBusiness(b, in, currency, taxRate, now)
		if err := uc.businessRepo.Create(b); err != nil {
			return nil, err
		}
		return toBusinessResponse(b), nil
	}

	fillBusiness(b, in, currency, taxRate, now)
	if err := uc.businessRepo.Update(b); err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

func fillBusiness(b *entity.Business, in dto.BusinessRequest, currency string, taxRate decimal.Decimal, now time.Time) {
	b.Name = in.Name
	b.TaxID = in.TaxID
	b.Email = in.Email
	b.Phone = in.Phone
	b.Address = in.Address
	b.DefaultCurrency = currency
	b.DefaultTaxRate = taxRate
	b.UpdatedAt = now
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:              b.ID,
		Name:            b.Name,
		TaxID:           b.TaxID,
		Email:           b.Email,
		Phone:           b.Phone,
		Address:         b.Address,
		DefaultCurrency: b.DefaultCurrency,
		DefaultTaxRate:  b.DefaultTaxRate.String(),
	}
}
