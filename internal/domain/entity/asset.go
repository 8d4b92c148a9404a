package entity

import "time"

// Asset archivo subido a un sitio. SizeBytes consume la cuota quota_assets_mb.
type Asset struct {
	ID        string
	SiteID    string
	Filename  string
	SizeBytes int64
	CreatedAt time.Time
}
