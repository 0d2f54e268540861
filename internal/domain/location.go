package domain

import "time"

// Location representa um ponto de venda (um mercadinho autônomo) com suas prateleiras.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
