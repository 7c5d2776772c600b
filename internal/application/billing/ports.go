package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/entity"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/repository"
)

// Config opciones del módulo de facturación (ver pkg/config.BillingConfig).
type Config struct {
	LenientNumbers  bool
	DefaultCurrency string
	DefaultTaxRate  decimal.Decimal
}

// BillingTxRunner ejecuta fn con repositorios atados a una misma transacción.
// Las escrituras compuestas (documento + líneas, conversión de cotización)
// pasan por aquí: o se confirma todo o no se confirma nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		quoteRepo repository.QuoteRepository,
		receiptRepo repository.ReceiptRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// LineForPDF línea ya resuelta para la representación gráfica.
type LineForPDF struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// DocumentForPDF entrada completa del generador PDF: documento más totales ya
// computados. El generador no recalcula nada ni devuelve estado al núcleo.
type DocumentForPDF struct {
	DocType        string // invoice | quote | receipt
	Title          string // "FACTURA", "COTIZACIÓN", "RECIBO DE PAGO"
	Number         string
	Status         string
	Currency       string
	Date           time.Time
	SecondaryDate  time.Time // vencimiento o expiración; cero si no aplica
	Business       *entity.Business
	Client         *entity.Client
	Items          []LineForPDF
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	// Solo cotizaciones con plan part:
	PaymentAmount    decimal.Decimal
	RemainingBalance decimal.Decimal
	ShowPaymentSplit bool
	// Solo recibos:
	PaymentMethod    string
	PaymentReference string
	SourceNumber     string // número de la factura o cotización referenciada
	Notes            string
	Terms            string
}

// DocumentPDFGenerator genera la representación PDF de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *DocumentForPDF) ([]byte, error)
}
