package entity

import "time"

// Roles válidos para User.
const (
	RoleAgent   = "agent"
	RoleManager = "manager"
	RoleSystem  = "system"
)

// User representa un usuario del sistema (agente de cobranza, gerente o integración).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // agent, manager, system
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
