package billing

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

// InvoiceUseCase casos de uso de facturas: CRUD, estado y numeración.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	allocator   *document.NumberAllocator
	cfg         Config
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	allocator *document.NumberAllocator,
	cfg Config,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		allocator:   allocator,
		cfg:         cfg,
	}
}

// Create valida la entrada, calcula los totales desde las líneas y persiste
// factura + líneas en una transacción. Si no llega número, se asigna dentro
// de la transacción con el contador atómico del periodo; si el contador falla
// se degrada al número de emergencia antes que bloquear la creación.
func (uc *InvoiceUseCase) Create(ctx context.Context, ownerID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	client, err := uc.ownedClient(ownerID, in.ClientID)
	if err != nil {
		return nil, err
	}

	items, taxRate, discount, err := uc.parseDocumentInput(in.Items, in.TaxRate, in.DiscountAmount)
	if err != nil {
		return nil, err
	}
	currency, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	issueDate, err := parseDate(in.IssueDate, now)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate, issueDate.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	totals := document.ComputeTotals(items, taxRate, discount)

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		ClientID:       client.ID,
		Number:         in.Number,
		Currency:       currency,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Status:         entity.InvoiceStatusDraft,
		TaxRate:        taxRate,
		DiscountAmount: discount,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		Notes:          in.Notes,
		Terms:          in.Terms,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.QuoteRepository,
		_ repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error {
		if inv.Number == "" {
			inv.Number = allocateNumber(seqRepo, ownerID, document.DocTypeInvoice, issueDate)
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for pos, li := range items {
			item := &entity.InvoiceItem{
				ID:          li.ID,
				InvoiceID:   inv.ID,
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Amount:      li.Amount,
				Position:    pos,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El número previsualizado ya se consumió: el próximo render genera otro.
	uc.allocator.Invalidate(ownerID, document.DocTypeInvoice)

	return uc.toResponse(inv, client.Name, items), nil
}

// Update reemplaza cabecera y líneas; los totales se recalculan siempre desde
// las líneas entrantes, nunca se aceptan agregados del cliente HTTP.
func (uc *InvoiceUseCase) Update(ctx context.Context, ownerID, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(ownerID, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.ownedClient(ownerID, in.ClientID)
	if err != nil {
		return nil, err
	}

	// Un documento existente conserva siempre al menos una línea.
	if len(in.Items) == 0 {
		return nil, domain.ErrLastLineItem
	}
	items, taxRate, discount, err := uc.parseDocumentInput(in.Items, in.TaxRate, in.DiscountAmount)
	if err != nil {
		return nil, err
	}
	currency, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	issueDate, err := parseDate(in.IssueDate, inv.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate, inv.DueDate)
	if err != nil {
		return nil, err
	}

	totals := document.ComputeTotals(items, taxRate, discount)

	inv.ClientID = client.ID
	inv.Currency = currency
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	inv.TaxRate = taxRate
	inv.DiscountAmount = discount
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.Notes = in.Notes
	inv.Terms = in.Terms
	inv.UpdatedAt = time.Now()
	if in.Number != "" {
		inv.Number = in.Number
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.QuoteRepository,
		_ repository.ReceiptRepository,
		_ repository.SequenceRepository,
	) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItemsByInvoiceID(inv.ID); err != nil {
			return err
		}
		for pos, li := range items {
			item := &entity.InvoiceItem{
				ID:          li.ID,
				InvoiceID:   inv.ID,
				Description: li.Description,
				Quantity:    li.Quantity,
				UnitPrice:   li.UnitPrice,
				Amount:      li.Amount,
				Position:    pos,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, client.Name, items), nil
}

// GetByID obtiene una factura completa con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(ownerID, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	items := make([]document.LineItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, document.LineItem{
			ID:          r.ID,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      r.Amount,
		})
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
		clientName = client.Name
	}
	return uc.toResponse(inv, clientName, items), nil
}

// List lista las facturas del propietario (sin líneas).
func (uc *InvoiceUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, *uc.toResponse(inv, "", nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina la factura; las líneas caen en cascada.
func (uc *InvoiceUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.ownedInvoice(ownerID, id); err != nil {
		return err
	}
	return uc.invoiceRepo.Delete(id)
}

// UpdateStatus reasigna el estado validando el ciclo de vida del documento.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, ownerID, id, status string) error {
	inv, err := uc.ownedInvoice(ownerID, id)
	if err != nil {
		return err
	}
	if err := document.ValidateTransition(document.DocTypeInvoice, inv.Status, status); err != nil {
		return err
	}
	return uc.invoiceRepo.UpdateStatus(id, status, time.Now())
}

// NextNumber devuelve la vista previa del próximo número. Deriva del conteo
// del periodo (mejor esfuerzo, sin reserva) y queda cacheada por el allocator
// hasta que el documento se guarde.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, ownerID string) (string, error) {
	return uc.allocator.Preview(ownerID, document.DocTypeInvoice, func() (string, error) {
		now := time.Now()
		from, to := periodBounds(now)
		count, err := uc.invoiceRepo.CountInPeriod(ownerID, from, to)
		if err != nil {
			return document.FallbackNumber(document.DocTypeInvoice, now)
		}
		return document.NextNumber(document.DocTypeInvoice, now, count)
	})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *InvoiceUseCase) ownedInvoice(ownerID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func (uc *InvoiceUseCase) ownedClient(ownerID, clientID string) (*entity.Client, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func (uc *InvoiceUseCase) parseDocumentInput(itemsIn []dto.LineItemRequest, taxRateIn, discountIn string) ([]document.LineItem, decimal.Decimal, decimal.Decimal, error) {
	items, err := parseItems(itemsIn, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	taxRate, err := parseRate(taxRateIn, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	discount, err := document.ParseAmount(discountIn, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	if discount.IsNegative() {
		return nil, decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	return items, taxRate, discount, nil
}

func (uc *InvoiceUseCase) resolveCurrency(raw string) (string, error) {
	if raw == "" {
		return uc.cfg.DefaultCurrency, nil
	}
	if !money.ValidCode(raw) {
		return "", domain.ErrInvalidInput
	}
	return raw, nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, clientName string, items []document.LineItem) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		ClientID:       inv.ClientID,
		ClientName:     clientName,
		Number:         inv.Number,
		Currency:       inv.Currency,
		IssueDate:      formatDate(inv.IssueDate),
		DueDate:        formatDate(inv.DueDate),
		Status:         inv.Status,
		TaxRate:        inv.TaxRate,
		DiscountAmount: inv.DiscountAmount,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		TotalDisplay:   money.Format(inv.Total, inv.Currency),
		Notes:          inv.Notes,
		Terms:          inv.Terms,
		Items:          toLineItemResponses(items),
	}
}

// allocateNumber asigna el número definitivo con el contador atómico del
// periodo; si el contador falla, degrada al número de emergencia (la
// disponibilidad gana a la unicidad, ya débil, del esquema).
func allocateNumber(seqRepo repository.SequenceRepository, ownerID, docType string, t time.Time) string {
	seq, err := seqRepo.Next(ownerID, docType, document.Period(t))
	if err == nil {
		if n, ferr := document.FormatNumber(docType, t, seq); ferr == nil {
			return n
		}
	}
	n, _ := document.FallbackNumber(docType, t)
	return n
}
