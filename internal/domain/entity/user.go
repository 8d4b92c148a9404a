package entity

import "time"

// Estados válidos para User. La eliminación de usuarios es siempre soft:
// nunca se borra la fila mientras pueda poseer sitios.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa una cuenta de la plataforma.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string // opcional
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede autenticarse y operar.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
