package billing

import (
	"context"
	"fmt"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

// PDFUseCase arma la entrada del generador PDF para cada tipo de documento.
// El use case resuelve emisor, cliente y líneas; el generador solo dibuja.
type PDFUseCase struct {
	generator    DocumentPDFGenerator
	invoiceRepo  repository.InvoiceRepository
	quoteRepo    repository.QuoteRepository
	receiptRepo  repository.ReceiptRepository
	clientRepo   repository.ClientRepository
	businessRepo repository.BusinessRepository
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	generator DocumentPDFGenerator,
	invoiceRepo repository.InvoiceRepository,
	quoteRepo repository.QuoteRepository,
	receiptRepo repository.ReceiptRepository,
	clientRepo repository.ClientRepository,
	businessRepo repository.BusinessRepository,
) *PDFUseCase {
	return &PDFUseCase{
		generator:    generator,
		invoiceRepo:  invoiceRepo,
		quoteRepo:    quoteRepo,
		receiptRepo:  receiptRepo,
		clientRepo:   clientRepo,
		businessRepo: businessRepo,
	}
}

// GenerateInvoicePDF genera el PDF de una factura.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, ownerID, id string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo líneas de la factura: %w", err)
	}
	lines := make([]LineForPDF, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, LineForPDF{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      r.Amount,
		})
	}
	business, client := uc.parties(ownerID, inv.ClientID)

	doc := &DocumentForPDF{
		DocType:        document.DocTypeInvoice,
		Title:          "FACTURA",
		Number:         inv.Number,
		Status:         inv.Status,
		Currency:       inv.Currency,
		Date:           inv.IssueDate,
		SecondaryDate:  inv.DueDate,
		Business:       business,
		Client:         client,
		Items:          lines,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		Total:          inv.Total,
		Notes:          inv.Notes,
		Terms:          inv.Terms,
	}
	return uc.generator.GenerateDocumentPDF(ctx, doc)
}

// GenerateQuotePDF genera el PDF de una cotización, con el desglose del plan
// de pago cuando es parcial.
func (uc *PDFUseCase) GenerateQuotePDF(ctx context.Context, ownerID, id string) ([]byte, error) {
	q, err := uc.quoteRepo.GetByID(id)
	if err != nil || q == nil {
		return nil, domain.ErrNotFound
	}
	if q.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo líneas de la cotización: %w", err)
	}
	lines := make([]LineForPDF, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, LineForPDF{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Amount:      r.Amount,
		})
	}
	business, client := uc.parties(ownerID, q.ClientID)

	doc := &DocumentForPDF{
		DocType:          document.DocTypeQuote,
		Title:            "COTIZACIÓN",
		Number:           q.Number,
		Status:           q.Status,
		Currency:         q.Currency,
		Date:             q.IssueDate,
		SecondaryDate:    q.ExpiryDate,
		Business:         business,
		Client:           client,
		Items:            lines,
		Subtotal:         q.Subtotal,
		TaxRate:          q.TaxRate,
		TaxAmount:        q.TaxAmount,
		DiscountAmount:   q.DiscountAmount,
		Total:            q.Total,
		PaymentAmount:    q.PaymentAmount,
		RemainingBalance: document.RemainingBalance(q.Total, q.PaymentAmount),
		ShowPaymentSplit: q.PaymentPlan == entity.PaymentPlanPart,
		Notes:            q.Notes,
		Terms:            q.Terms,
	}
	return uc.generator.GenerateDocumentPDF(ctx, doc)
}

// GenerateReceiptPDF genera el PDF de un recibo de pago.
func (uc *PDFUseCase) GenerateReceiptPDF(ctx context.Context, ownerID, id string) ([]byte, error) {
	rec, err := uc.receiptRepo.GetByID(id)
	if err != nil || rec == nil {
		return nil, domain.ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	business, client := uc.parties(ownerID, rec.ClientID)

	doc := &DocumentForPDF{
		DocType:          document.DocTypeReceipt,
		Title:            "RECIBO DE PAGO",
		Number:           rec.Number,
		Currency:         rec.Currency,
		Date:             rec.Date,
		Business:         business,
		Client:           client,
		Total:            rec.AmountReceived,
		PaymentMethod:    rec.PaymentMethod,
		PaymentReference: rec.PaymentReference,
		SourceNumber:     uc.sourceNumber(rec),
		Notes:            rec.Notes,
	}
	return uc.generator.GenerateDocumentPDF(ctx, doc)
}

// parties resuelve emisor y cliente; cualquiera puede faltar sin bloquear el
// render (el generador tolera campos vacíos).
func (uc *PDFUseCase) parties(ownerID, clientID string) (*entity.Business, *entity.Client) {
	business, _ := uc.businessRepo.GetByOwner(ownerID)
	client, _ := uc.clientRepo.GetByID(clientID)
	return business, client
}

// sourceNumber busca el número del documento referenciado por el recibo.
func (uc *PDFUseCase) sourceNumber(rec *entity.Receipt) string {
	if rec.InvoiceID != "" {
		if inv, _ := uc.invoiceRepo.GetByID(rec.InvoiceID); inv != nil {
			return inv.Number
		}
	}
	if rec.QuoteID != "" {
		if q, _ := uc.quoteRepo.GetByID(rec.QuoteID); q != nil {
			return q.Number
		}
	}
	return ""
}
