package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business representa el perfil de negocio del usuario: los datos del emisor
// que encabezan facturas, cotizaciones y recibos.
type Business struct {
	ID              string
	OwnerID         string
	Name            string
	TaxID           string
	Email           string
	Phone           string
	Address         string
	DefaultCurrency string          // código ISO 4217
	DefaultTaxRate  decimal.Decimal // porcentaje 0–100
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
