package entity

import "time"

// PublishJob registro de un intento de publicación, para auditoría y estadísticas.
type PublishJob struct {
	ID        string
	SiteID    string
	Scope     string // site, page
	Status    string // pending, success, failed
	CreatedBy string
	CreatedAt time.Time
}
