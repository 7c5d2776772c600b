// Package document contiene la lógica pura de facturación: líneas, motor de
// totales, numeración de documentos y ciclo de vida de estados. Todo es
// síncrono, determinista y sin dependencias de infraestructura; los errores
// solo provienen de validación de entrada.
package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
)

// LineItem es una línea facturable en memoria, común a facturas y cotizaciones.
// Amount es derivado: siempre Quantity × UnitPrice.
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// NewLineItem crea una línea con los valores por defecto del formulario:
// cantidad 1, precio 0.
func NewLineItem(id string) LineItem {
	return LineItem{
		ID:       id,
		Quantity: decimal.NewFromInt(1),
		Amount:   decimal.Zero,
	}
}

// WithQuantity devuelve una copia de la línea con la cantidad dada y el
// Amount recalculado. Ningún otro campo cambia.
func (li LineItem) WithQuantity(q decimal.Decimal) LineItem {
	li.Quantity = q
	li.Amount = q.Mul(li.UnitPrice)
	return li
}

// WithUnitPrice devuelve una copia de la línea con el precio unitario dado y
// el Amount recalculado. Ningún otro campo cambia.
func (li LineItem) WithUnitPrice(p decimal.Decimal) LineItem {
	li.UnitPrice = p
	li.Amount = li.Quantity.Mul(p)
	return li
}

// RemoveItem elimina la línea en index y devuelve la lista resultante.
// Quitar la última línea restante se rechaza: un documento conserva siempre
// al menos una línea.
func RemoveItem(items []LineItem, index int) ([]LineItem, error) {
	if index < 0 || index >= len(items) {
		return items, domain.ErrInvalidInput
	}
	if len(items) == 1 {
		return items, domain.ErrLastLineItem
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}

// ParseAmount convierte la entrada de un formulario (cantidad o precio) a
// decimal. En modo estricto la entrada no numérica retorna ErrInvalidInput;
// en modo leniente degrada a 0, reproduciendo el comportamiento del frontend
// original. La cadena vacía siempre vale 0.
func ParseAmount(raw string, lenient bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		if lenient {
			return decimal.Zero, nil
		}
		return decimal.Zero, domain.ErrInvalidInput
	}
	return d, nil
}
