package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Roquverse/flow-invoice-nexus-sub000/pkg/money"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestFormat_MonedaConSimbolo(t *testing.T) {
	assert.Equal(t, "$1,234.50", money.Format(dec("1234.5"), "USD"))
	assert.Equal(t, "€99.00", money.Format(dec("99"), "EUR"))
	assert.Equal(t, "₦1,000,000.00", money.Format(dec("1000000"), "NGN"))
}

func TestFormat_MonedaISOSinSimbolo(t *testing.T) {
	// Moneda válida pero sin símbolo registrado: prefijo con el código ISO.
	assert.Equal(t, "CHF 250.00", money.Format(dec("250"), "CHF"))
}

func TestFormat_CodigoInvalido(t *testing.T) {
	assert.Equal(t, "NOPE 10.00", money.Format(dec("10"), "NOPE"))
	assert.Equal(t, "10.00", money.Format(dec("10"), ""))
}

func TestFormat_RedondeoSoloEnPresentacion(t *testing.T) {
	// 10.005 → 10.01 únicamente al formatear; el decimal original no se toca.
	d := dec("10.005")
	assert.Equal(t, "$10.01", money.Format(d, "USD"))
	assert.Equal(t, "10.005", d.String())
}

func TestFormat_Negativo(t *testing.T) {
	assert.Equal(t, "$-1,500.25", money.Format(dec("-1500.25"), "USD"))
}

func TestValidCode(t *testing.T) {
	assert.True(t, money.ValidCode("USD"))
	assert.False(t, money.ValidCode("NOPE"))
}
