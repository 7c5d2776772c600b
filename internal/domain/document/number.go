package document

import (
	"fmt"
	"time"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
)

// Tipos de documento.
const (
	DocTypeInvoice = "invoice"
	DocTypeQuote   = "quote"
	DocTypeReceipt = "receipt"
)

// Prefix devuelve el prefijo del número legible según el tipo de documento.
func Prefix(docType string) (string, error) {
	switch docType {
	case DocTypeInvoice:
		return "INV", nil
	case DocTypeQuote:
		return "QT", nil
	case DocTypeReceipt:
		return "RCT", nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Period devuelve el periodo YYMM del esquema de numeración para un instante.
func Period(t time.Time) string {
	return t.Format("0601")
}

// FormatNumber arma el número legible {PREFIX}-{YYMM}-{secuencia con ceros}.
// Ej: FormatNumber(DocTypeInvoice, marzo 2025, 7) → "INV-2503-007".
func FormatNumber(docType string, t time.Time, seq int64) (string, error) {
	prefix, err := Prefix(docType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, Period(t), seq), nil
}

// NextNumber deriva el siguiente número a partir del conteo de documentos del
// mismo tipo y periodo: secuencia = conteo + 1.
//
// Esta forma es de mejor esfuerzo y NO garantiza unicidad: dos creaciones
// casi simultáneas pueden leer el mismo conteo y recibir el mismo número. La
// asignación definitiva al crear un documento usa el contador atómico de la
// capa de persistencia (SequenceRepository); NextNumber queda para la vista
// previa del formulario, donde el número aún no se reserva.
func NextNumber(docType string, t time.Time, existingInPeriod int64) (string, error) {
	return FormatNumber(docType, t, existingInPeriod+1)
}

// FallbackNumber genera un número de emergencia con los dígitos finales del
// timestamp cuando el conteo o el contador no están disponibles. Se prefiere
// emitir un número débil antes que bloquear la creación del documento.
func FallbackNumber(docType string, t time.Time) (string, error) {
	return FormatNumber(docType, t, t.Unix()%1000)
}
