package entity

import "time"

// Roles de membresía en un sitio. Invariante: exactamente una fila con role=owner
// por sitio, y debe coincidir con Site.OwnerUserID (el transfer las mantiene en sync).
const (
	SiteRoleOwner  = "owner"
	SiteRoleAdmin  = "admin"
	SiteRoleMember = "member"
)

// SiteUser membresía (site, user) con rol. A lo sumo una fila por par.
type SiteUser struct {
	SiteID  string
	UserID  string
	Role    string // owner, admin, member
	AddedAt time.Time
}
