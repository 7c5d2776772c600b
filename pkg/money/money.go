// Package money formatea montos monetarios para presentación.
// El redondeo ocurre únicamente aquí, al momento de mostrar: el resto del
// sistema opera con decimales completos para no acumular errores entre
// recomputaciones.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Símbolos de las monedas más usadas por la aplicación. Para el resto se
// antepone el código ISO.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"COP": "$",
	"MXN": "$",
	"NGN": "₦",
	"JPY": "¥",
	"INR": "₹",
	"BRL": "R$",
	"CAD": "$",
	"AUD": "$",
}

// ValidCode indica si code es un código ISO 4217 conocido.
func ValidCode(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// Format renderiza un monto con símbolo, separador de miles y dos decimales.
// Ej: Format(1234.5, "USD") → "$1,234.50". Si la moneda no es ISO 4217 válida
// se usa el código tal cual como prefijo: "XXX 1,234.50".
func Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	rendered := group(amount.Round(2).StringFixed(2))

	unit, err := currency.ParseISO(code)
	if err != nil {
		if code == "" {
			return rendered
		}
		return code + " " + rendered
	}
	if sym, ok := symbols[unit.String()]; ok {
		return sym + rendered
	}
	return unit.String() + " " + rendered
}

// group inserta comas de miles en la parte entera de un string "1234.50".
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}
	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
