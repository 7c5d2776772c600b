package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

// ClientUseCase CRUD de clientes del propietario.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// Create registra un cliente nuevo.
func (uc *ClientUseCase) Create(ctx context.Context, ownerID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        in.Name,
		CompanyName: in.CompanyName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update modifica un cliente existente.
func (uc *ClientUseCase) Update(ctx context.Context, ownerID, id string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	client.Name = in.Name
	client.CompanyName = in.CompanyName
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente del propietario.
func (uc *ClientUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ClientResponse, error) {
	client, err := uc.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista los clientes del propietario.
func (uc *ClientUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.owned(ownerID, id); err != nil {
		return err
	}
	return uc.clientRepo.Delete(id)
}

func (uc *ClientUseCase) owned(ownerID, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
	}
}
