package dto

// CreateClientRequest body para POST /api/clients (también para PUT).
type CreateClientRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// BusinessRequest body para PUT /api/business (perfil del emisor).
type BusinessRequest struct {
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	DefaultCurrency string `json:"default_currency,omitempty"`
	DefaultTaxRate  string `json:"default_tax_rate,omitempty"` // porcentaje 0–100
}

// BusinessResponse perfil de negocio en respuestas.
type BusinessResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TaxID           string `json:"tax_id,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	DefaultCurrency string `json:"default_currency"`
	DefaultTaxRate  string `json:"default_tax_rate"`
}
