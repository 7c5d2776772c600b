package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/application/dto"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/money"
)

// ReceiptUseCase casos de uso de recibos de pago. Los recibos no tienen ciclo
// de vida: registran un pago ya ocurrido y opcionalmente referencian la
// factura o la cotización que lo originó (nunca ambas).
type ReceiptUseCase struct {
	txRunner    BillingTxRunner
	receiptRepo repository.ReceiptRepository
	invoiceRepo repository.InvoiceRepository
	quoteRepo   repository.QuoteRepository
	clientRepo  repository.ClientRepository
	allocator   *document.NumberAllocator
	cfg         Config
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner BillingTxRunner,
	receiptRepo repository.ReceiptRepository,
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	allocator *document.NumberAllocator,
	cfg Config,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:    txRunner,
		receiptRepo: receiptRepo,
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		clientRepo:  clientRepo,
		allocator:   allocator,
		cfg:         cfg,
	}
}

// Create valida y persiste un recibo.
func (uc *ReceiptUseCase) Create(ctx context.Context, ownerID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	client, err := uc.ownedClient(ownerID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if err := uc.validateReference(ownerID, in.InvoiceID, in.QuoteID); err != nil {
		return nil, err
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	amount, err := document.ParseAmount(in.AmountReceived, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	currency, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}

	rec := &entity.Receipt{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		ClientID:         client.ID,
		Number:           in.Number,
		Currency:         currency,
		Date:             date,
		InvoiceID:        in.InvoiceID,
		QuoteID:          in.QuoteID,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: in.PaymentReference,
		AmountReceived:   amount,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.InvoiceRepository,
		_ repository.QuoteRepository,
		receiptRepo repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error {
		if rec.Number == "" {
			rec.Number = allocateNumber(seqRepo, ownerID, document.DocTypeReceipt, date)
		}
		return receiptRepo.Create(rec)
	})
	if err != nil {
		return nil, err
	}

	uc.allocator.Invalidate(ownerID, document.DocTypeReceipt)

	return uc.toResponse(rec, client.Name), nil
}

// Update reescribe el recibo con las mismas validaciones del alta.
func (uc *ReceiptUseCase) Update(ctx context.Context, ownerID, id string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	rec, err := uc.ownedReceipt(ownerID, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.ownedClient(ownerID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if err := uc.validateReference(ownerID, in.InvoiceID, in.QuoteID); err != nil {
		return nil, err
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	amount, err := document.ParseAmount(in.AmountReceived, uc.cfg.LenientNumbers)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	currency, err := uc.resolveCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date, rec.Date)
	if err != nil {
		return nil, err
	}

	rec.ClientID = client.ID
	rec.Currency = currency
	rec.Date = date
	rec.InvoiceID = in.InvoiceID
	rec.QuoteID = in.QuoteID
	rec.PaymentMethod = in.PaymentMethod
	rec.PaymentReference = in.PaymentReference
	rec.AmountReceived = amount
	rec.Notes = in.Notes
	rec.UpdatedAt = time.Now()
	if in.Number != "" {
		rec.Number = in.Number
	}

	if err := uc.receiptRepo.Update(rec); err != nil {
		return nil, err
	}
	return uc.toResponse(rec, client.Name), nil
}

// GetByID obtiene un recibo.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ReceiptResponse, error) {
	rec, err := uc.ownedReceipt(ownerID, id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(rec.ClientID); client != nil {
		clientName = client.Name
	}
	return uc.toResponse(rec, clientName), nil
}

// List lista los recibos del propietario.
func (uc *ReceiptUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.ReceiptListResponse, error) {
	page.DefaultPage()
	receipts, err := uc.receiptRepo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		items = append(items, *uc.toResponse(rec, ""))
	}
	return &dto.ReceiptListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina el recibo.
func (uc *ReceiptUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.ownedReceipt(ownerID, id); err != nil {
		return err
	}
	return uc.receiptRepo.Delete(id)
}

// NextNumber devuelve la vista previa del próximo número de recibo.
func (uc *ReceiptUseCase) NextNumber(ctx context.Context, ownerID string) (string, error) {
	return uc.allocator.Preview(ownerID, document.DocTypeReceipt, func() (string, error) {
		now := time.Now()
		from, to := periodBounds(now)
		count, err := uc.receiptRepo.CountInPeriod(ownerID, from, to)
		if err != nil {
			return document.FallbackNumber(document.DocTypeReceipt, now)
		}
		return document.NextNumber(document.DocTypeReceipt, now, count)
	})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *ReceiptUseCase) ownedReceipt(ownerID, id string) (*entity.Receipt, error) {
	rec, err := uc.receiptRepo.GetByID(id)
	if err != nil || rec == nil {
		return nil, domain.ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return rec, nil
}

func (uc *ReceiptUseCase) ownedClient(ownerID, clientID string) (*entity.Client, error) {
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

// validateReference verifica la exclusión mutua y la pertenencia del documento
// referenciado. Ambas referencias vacías es válido (recibo suelto).
func (uc *ReceiptUseCase) validateReference(ownerID, invoiceID, quoteID string) error {
	if invoiceID != "" && quoteID != "" {
		return domain.ErrInvalidInput
	}
	if invoiceID != "" {
		inv, err := uc.invoiceRepo.GetByID(invoiceID)
		if err != nil || inv == nil {
			return domain.ErrNotFound
		}
		if inv.OwnerID != ownerID {
			return domain.ErrForbidden
		}
	}
	if quoteID != "" {
		q, err := uc.quoteRepo.GetByID(quoteID)
		if err != nil || q == nil {
			return domain.ErrNotFound
		}
		if q.OwnerID != ownerID {
			return domain.ErrForbidden
		}
	}
	return nil
}

func (uc *ReceiptUseCase) resolveCurrency(raw string) (string, error) {
	if raw == "" {
		return uc.cfg.DefaultCurrency, nil
	}
	if !money.ValidCode(raw) {
		return "", domain.ErrInvalidInput
	}
	return raw, nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodBankTransfer, entity.PaymentMethodCard, entity.PaymentMethodOther:
		return true
	}
	return false
}

func (uc *ReceiptUseCase) toResponse(rec *entity.Receipt, clientName string) *dto.ReceiptResponse {
	return &dto.ReceiptResponse{
		ID:               rec.ID,
		ClientID:         rec.ClientID,
		ClientName:       clientName,
		Number:           rec.Number,
		Currency:         rec.Currency,
		Date:             formatDate(rec.Date),
		InvoiceID:        rec.InvoiceID,
		QuoteID:          rec.QuoteID,
		PaymentMethod:    rec.PaymentMethod,
		PaymentReference: rec.PaymentReference,
		AmountReceived:   rec.AmountReceived,
		AmountDisplay:    money.Format(rec.AmountReceived, rec.Currency),
		Notes:            rec.Notes,
	}
}
