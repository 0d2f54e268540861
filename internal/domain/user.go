package domain

import "time"

// User representa um operador do sistema: administrador do back-office ou tablet de autoatendimento.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do operador.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleKiosk UserRole = "kiosk"
)

// Valid indica se o papel é conhecido.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleKiosk
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}
