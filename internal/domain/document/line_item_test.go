package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain"
	"github.com/Roquverse/flow-invoice-nexus-sub000/internal/domain/document"
)

func TestNewLineItem_Defaults(t *testing.T) {
	li := document.NewLineItem("li-1")

	assert.Equal(t, "li-1", li.ID)
	assert.True(t, decimal.NewFromInt(1).Equal(li.Quantity), "cantidad por defecto 1")
	assert.True(t, li.UnitPrice.IsZero(), "precio por defecto 0")
	assert.True(t, li.Amount.IsZero())
}

// Amount se recalcula siempre desde cantidad y precio, sin importar el valor previo.
func TestLineItem_RecalculoDeAmount(t *testing.T) {
	li := document.NewLineItem("li-1")
	li.Amount = dec("999") // valor previo corrupto a propósito

	li = li.WithQuantity(dec("3")).WithUnitPrice(dec("10"))

	assert.True(t, dec("30").Equal(li.Amount))
	assert.Equal(t, "li-1", li.ID, "ningún otro campo cambia")
}

func TestLineItem_WithQuantityNoTocaPrecio(t *testing.T) {
	li := document.NewLineItem("x").WithUnitPrice(dec("7.50"))

	li = li.WithQuantity(dec("4"))

	assert.True(t, dec("7.5").Equal(li.UnitPrice))
	assert.True(t, dec("30").Equal(li.Amount))
}

// Invariante de línea mínima: quitar la última línea es rechazado y la lista
// queda intacta.
func TestRemoveItem_UltimaLineaRechazada(t *testing.T) {
	items := []document.LineItem{document.NewLineItem("solo")}

	out, err := document.RemoveItem(items, 0)

	assert.ErrorIs(t, err, domain.ErrLastLineItem)
	require.Len(t, out, 1)
	assert.Equal(t, "solo", out[0].ID)
}

func TestRemoveItem_QuitaLineaIntermedia(t *testing.T) {
	items := []document.LineItem{
		document.NewLineItem("a"),
		document.NewLineItem("b"),
		document.NewLineItem("c"),
	}

	out, err := document.RemoveItem(items, 1)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

func TestRemoveItem_IndiceFueraDeRango(t *testing.T) {
	items := []document.LineItem{document.NewLineItem("a"), document.NewLineItem("b")}

	_, err := document.RemoveItem(items, 5)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Modo estricto (por defecto): entrada no numérica es error de validación.
// Modo leniente (BILLING_LENIENT_NUMBERS): degrada a 0 como el frontend original.
func TestParseAmount_EstrictoYLeniente(t *testing.T) {
	d, err := document.ParseAmount("12.34", false)
	require.NoError(t, err)
	assert.True(t, dec("12.34").Equal(d))

	_, err = document.ParseAmount("abc", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err = document.ParseAmount("abc", true)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = document.ParseAmount("  ", true)
	require.NoError(t, err)
	assert.True(t, d.IsZero(), "cadena vacía vale 0 en ambos modos")
}
