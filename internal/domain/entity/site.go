package entity

import "time"

// Estados válidos para Site. El estado lo gestiona la consola de administración;
// los endpoints de usuario no lo mutan.
const (
	SiteStatusActive    = "active"
	SiteStatusSuspended = "suspended"
)

// Site representa un sitio construido en la plataforma. El subdominio es único
// global (constraint UNIQUE en el store como fuente de verdad ante carreras).
type Site struct {
	ID            string
	OwnerUserID   string
	Name          string
	Subdomain     string
	Plan          string // free, pro, enterprise
	Status        string // active, suspended
	QuotaPages    int
	QuotaAssetsMB int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
