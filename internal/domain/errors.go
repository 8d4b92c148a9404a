package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrSiteNotFound       = errors.New("sitio no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrSubdomainTaken     = errors.New("el subdominio ya está en uso")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNoFieldsToUpdate   = errors.New("no hay campos para actualizar")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountSuspended   = errors.New("cuenta suspendida")
	ErrUserHasSites       = errors.New("el usuario posee sitios activos")
	ErrOwnerNotActive     = errors.New("el nuevo owner no existe o no está activo")
)

// QuotaExceededError indica que el usuario alcanzó el límite de sitios de su plan.
// Lleva el plan para que el handler pueda nombrarlo en el mensaje de error.
type QuotaExceededError struct {
	Plan  string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("límite de sitios alcanzado para el plan %s (%d)", e.Plan, e.Limit)
}

// IsQuotaExceeded verifica si err es un QuotaExceededError y lo devuelve.
func IsQuotaExceeded(err error) (*QuotaExceededError, bool) {
	var qe *QuotaExceededError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
