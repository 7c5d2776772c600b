package entity

import "time"

// Client representa un cliente del usuario (receptor de facturas y cotizaciones).
type Client struct {
	ID          string
	OwnerID     string
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
