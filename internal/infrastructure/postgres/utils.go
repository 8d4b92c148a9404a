package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// sortColumn resuelve sortBy contra una allow-list columna→expresión SQL.
// Cualquier valor fuera de la lista cae al default (anti inyección: sortBy se
// interpola en el ORDER BY, nunca puede venir del cliente sin pasar por aquí).
func sortColumn(allowed map[string]string, sortBy, def string) string {
	if col, ok := allowed[sortBy]; ok {
		return col
	}
	return def
}

// sortDirection normaliza sortOrder a ASC o DESC (default DESC).
func sortDirection(sortOrder string) string {
	if strings.EqualFold(sortOrder, "ASC") {
		return "ASC"
	}
	return "DESC"
}
