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

// QuoteUseCase casos de uso de cotizaciones, incluida la conversión a factura.
type QuoteUseCase struct {
	txRunner   BillingTxRunner
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
	allocator  *document.NumberAllocator
	cfg        Config
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner BillingTxRunner,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	allocator *document.NumberAllocator,
	cfg Config,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:   txRunner,
		quoteRepo:  quoteRepo,
		clientRepo: clientRepo,
		allocator:  allocator,
		cfg:        cfg,
	}
}

// Create valida la entrada, calcula totales y desglose del plan de pago, y
// persiste cotización + líneas en una transacción.
func (uc *QuoteUseCase) Create(ctx context.Context, ownerID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
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
	plan, pct, err := parsePaymentPlan(in.PaymentPlan, in.PaymentPercentage, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	issueDate, err := parseDate(in.IssueDate, now)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(in.ExpiryDate, issueDate.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	totals := document.ComputeTotals(items, taxRate, discount)
	paymentAmount := document.ComputePaymentAmount(totals.Total, plan, pct)

	q := &entity.Quote{
		ID:                uuid.New().String(),
		OwnerID:           ownerID,
		ClientID:          client.ID,
		Number:            in.Number,
		Currency:          currency,
		IssueDate:         issueDate,
		ExpiryDate:        expiryDate,
		Status:            entity.QuoteStatusDraft,
		TaxRate:           taxRate,
		DiscountAmount:    discount,
		Subtotal:          totals.Subtotal,
		TaxAmount:         totals.TaxAmount,
		Total:             totals.Total,
		PaymentPlan:       plan,
		PaymentPercentage: pct,
		PaymentAmount:     paymentAmount,
		Notes:             in.Notes,
		Terms:             in.Terms,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.InvoiceRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error {
		if q.Number == "" {
			q.Number = allocateNumber(seqRepo, ownerID, document.DocTypeQuote, issueDate)
		}
		if err := quoteRepo.Create(q); err != nil {
			return err
		}
		return createQuoteItems(quoteRepo, q.ID, items)
	})
	if err != nil {
		return nil, err
	}

	uc.allocator.Invalidate(ownerID, document.DocTypeQuote)

	return uc.toResponse(q, client.Name, items), nil
}

// Update reemplaza cabecera y líneas recalculando totales y plan de pago.
func (uc *QuoteUseCase) Update(ctx context.Context, ownerID, id string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	q, err := uc.ownedQuote(ownerID, id)
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
	plan, pct, err := parsePaymentPlan(in.PaymentPlan, in.PaymentPercentage, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, err
	}
	issueDate, err := parseDate(in.IssueDate, q.IssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(in.ExpiryDate, q.ExpiryDate)
	if err != nil {
		return nil, err
	}

	totals := document.ComputeTotals(items, taxRate, discount)

	q.ClientID = client.ID
	q.Currency = currency
	q.IssueDate = issueDate
	q.ExpiryDate = expiryDate
	q.TaxRate = taxRate
	q.DiscountAmount = discount
	q.Subtotal = totals.Subtotal
	q.TaxAmount = totals.TaxAmount
	q.Total = totals.Total
	q.PaymentPlan = plan
	q.PaymentPercentage = pct
	q.PaymentAmount = document.ComputePaymentAmount(totals.Total, plan, pct)
	q.Notes = in.Notes
	q.Terms = in.Terms
	q.UpdatedAt = time.Now()
	if in.Number != "" {
		q.Number = in.Number
	}

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.InvoiceRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.ReceiptRepository,
		_ repository.SequenceRepository,
	) error {
		if err := quoteRepo.Update(q); err != nil {
			return err
		}
		if err := quoteRepo.DeleteItemsByQuoteID(q.ID); err != nil {
			return err
		}
		return createQuoteItems(quoteRepo, q.ID, items)
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(q, client.Name, items), nil
}

// GetByID obtiene una cotización completa con sus líneas.
func (uc *QuoteUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.QuoteResponse, error) {
	q, err := uc.ownedQuote(ownerID, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, err
	}
	items := quoteItemsToLines(rows)
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(q.ClientID); client != nil {
		clientName = client.Name
	}
	return uc.toResponse(q, clientName, items), nil
}

// List lista las cotizaciones del propietario (sin líneas).
func (uc *QuoteUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.QuoteListResponse, error) {
	page.DefaultPage()
	quotes, err := uc.quoteRepo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, *uc.toResponse(q, "", nil))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina la cotización; las líneas caen en cascada.
func (uc *QuoteUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.ownedQuote(ownerID, id); err != nil {
		return err
	}
	return uc.quoteRepo.Delete(id)
}

// UpdateStatus reasigna el estado validando el ciclo de vida del documento.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, ownerID, id, status string) error {
	q, err := uc.ownedQuote(ownerID, id)
	if err != nil {
		return err
	}
	if err := document.ValidateTransition(document.DocTypeQuote, q.Status, status); err != nil {
		return err
	}
	return uc.quoteRepo.UpdateStatus(id, status, time.Now())
}

// NextNumber devuelve la vista previa del próximo número de cotización.
func (uc *QuoteUseCase) NextNumber(ctx context.Context, ownerID string) (string, error) {
	return uc.allocator.Preview(ownerID, document.DocTypeQuote, func() (string, error) {
		now := time.Now()
		from, to := periodBounds(now)
		count, err := uc.quoteRepo.CountInPeriod(ownerID, from, to)
		if err != nil {
			return document.FallbackNumber(document.DocTypeQuote, now)
		}
		return document.NextNumber(document.DocTypeQuote, now, count)
	})
}

// Convert crea una factura a partir de la cotización y marca la cotización
// como aceptada, todo en una sola transacción: o ambos documentos quedan
// consistentes o no se toca ninguno. La factura nace en borrador, con número
// propio de factura, vence a 30 días y copia líneas, impuesto y descuento.
func (uc *QuoteUseCase) Convert(ctx context.Context, ownerID, id string) (*dto.ConvertQuoteResponse, error) {
	q, err := uc.ownedQuote(ownerID, id)
	if err != nil {
		return nil, err
	}
	if document.IsTerminal(document.DocTypeQuote, q.Status) && q.Status != entity.QuoteStatusAccepted {
		return nil, domain.ErrStatusLocked
	}
	rows, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, err
	}
	items := quoteItemsToLines(rows)
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		ClientID:       q.ClientID,
		Currency:       q.Currency,
		IssueDate:      now,
		DueDate:        now.AddDate(0, 0, 30),
		Status:         entity.InvoiceStatusDraft,
		TaxRate:        q.TaxRate,
		DiscountAmount: q.DiscountAmount,
		Subtotal:       q.Subtotal,
		TaxAmount:      q.TaxAmount,
		Total:          q.Total,
		Notes:          q.Notes,
		Terms:          q.Terms,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error {
		inv.Number = allocateNumber(seqRepo, ownerID, document.DocTypeInvoice, now)
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for pos, li := range items {
			item := &entity.InvoiceItem{
				ID:          uuid.New().String(),
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
		if q.Status != entity.QuoteStatusAccepted {
			if err := quoteRepo.UpdateStatus(q.ID, entity.QuoteStatusAccepted, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.allocator.Invalidate(ownerID, document.DocTypeInvoice)

	return &dto.ConvertQuoteResponse{InvoiceID: inv.ID, Number: inv.Number}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *QuoteUseCase) ownedQuote(ownerID, id string) (*entity.Quote, error) {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil || q == nil {
		return nil, domain.ErrNotFound
	}
	if q.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return q, nil
}

func (uc *QuoteUseCase) ownedClient(ownerID, clientID string) (*entity.Client, error) {
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

func (uc *QuoteUseCase) parseDocumentInput(itemsIn []dto.LineItemRequest, taxRateIn, discountIn string) ([]document.LineItem, decimal.Decimal, decimal.Decimal, error) {
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

func (uc *QuoteUseCase) resolveCurrency(raw string) (string, error) {
	if raw == "" {
		return uc.cfg.DefaultCurrency, nil
	}
	if !money.ValidCode(raw) {
		return "", domain.ErrInvalidInput
	}
	return raw, nil
}

func (uc *QuoteUseCase) toResponse(q *entity.Quote, clientName string, items []document.LineItem) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:                q.ID,
		ClientID:          q.ClientID,
		ClientName:        clientName,
		Number:            q.Number,
		Currency:          q.Currency,
		IssueDate:         formatDate(q.IssueDate),
		ExpiryDate:        formatDate(q.ExpiryDate),
		Status:            q.Status,
		TaxRate:           q.TaxRate,
		DiscountAmount:    q.DiscountAmount,
		Subtotal:          q.Subtotal,
		TaxAmount:         q.TaxAmount,
		Total:             q.Total,
		PaymentPlan:       q.PaymentPlan,
		PaymentPercentage: q.PaymentPercentage,
		PaymentAmount:     q.PaymentAmount,
		RemainingBalance:  document.RemainingBalance(q.Total, q.PaymentAmount),
		TotalDisplay:      money.Format(q.Total, q.Currency),
		Notes:             q.Notes,
		Terms:             q.Terms,
		Items:             toLineItemResponses(items),
	}
}

// parsePaymentPlan normaliza el plan de pago: vacío = full; part exige un
// porcentaje entre 1 y 100.
func parsePaymentPlan(plan, pctRaw string, lenient bool) (string, decimal.Decimal, error) {
	switch plan {
	case "", entity.PaymentPlanFull:
		return entity.PaymentPlanFull, hundredPct, nil
	case entity.PaymentPlanPart:
		pct, err := document.ParseAmount(pctRaw, lenient)
		if err != nil {
			return "", decimal.Zero, err
		}
		if pct.LessThan(decimal.NewFromInt(1)) || pct.GreaterThan(hundredPct) {
			return "", decimal.Zero, domain.ErrInvalidInput
		}
		return entity.PaymentPlanPart, pct, nil
	default:
		return "", decimal.Zero, domain.ErrInvalidInput
	}
}

var hundredPct = decimal.NewFromInt(100)

func createQuoteItems(quoteRepo repository.QuoteRepository, quoteID string, items []document.LineItem) error {
	for pos, li := range items {
		item := &entity.QuoteItem{
			ID:          li.ID,
			QuoteID:     quoteID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
			Position:    pos,
		}
		if err := quoteRepo.CreateItem(item); err != nil {
			return err
		}
	}
	return nil
}

func quoteItemsToLines(rows []*entity.QuoteItem) []document.LineItem {
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
	return items
}
