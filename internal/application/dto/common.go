package dto

// ErrorResponse cuerpo de error HTTP uniforme: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse respuesta de mutaciones sin cuerpo de datos.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination metadatos de página en listados admin.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListQuery query params comunes de los listados admin. Defaults: page=1, limit=20.
// SortBy se valida contra una allow-list por recurso para prevenir inyección SQL.
type ListQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// Defaults normaliza valores fuera de rango.
func (q *ListQuery) Defaults() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
}
