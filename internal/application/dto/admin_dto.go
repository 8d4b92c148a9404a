package dto

import "time"

// AdminLoginRequest entrada de login de la consola de administración.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminIdentity identidad del super admin embebida en el token de dominio admin.
type AdminIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AdminLoginResponse salida de POST /admin/login.
type AdminLoginResponse struct {
	Message string        `json:"message"`
	Admin   AdminIdentity `json:"admin"`
	Token   string        `json:"token"`
}

// AdminCreateUserRequest alta de usuario desde la consola (status libre).
type AdminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Status   string `json:"status" validate:"omitempty,oneof=active suspended"`
}

// AdminUpdateUserRequest actualización de usuario. Name con puntero para permitir
// vaciarlo explícitamente; Status vacío se ignora.
type AdminUpdateUserRequest struct {
	Name   *string `json:"name"`
	Status string  `json:"status" validate:"omitempty,oneof=active suspended"`
}

// ResetPasswordRequest entrada de POST /admin/users/:id/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// AdminUserListItem usuario con conteos de sitios por plan.
type AdminUserListItem struct {
	UserResponse
	SitesCount      int `json:"sites_count"`
	FreeSites       int `json:"free_sites"`
	ProSites        int `json:"pro_sites"`
	EnterpriseSites int `json:"enterprise_sites"`
}

// AdminUserListResponse salida de GET /admin/users.
type AdminUserListResponse struct {
	Users      []AdminUserListItem `json:"users"`
	Pagination Pagination          `json:"pagination"`
}

// OwnedSiteSummary sitio poseído, para el detalle de usuario.
type OwnedSiteSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Subdomain      string    `json:"subdomain"`
	Plan           string    `json:"plan"`
	CreatedAt      time.Time `json:"created_at"`
	PublishedPages int       `json:"published_pages"`
}

// AdminUserDetail usuario con sus sitios poseídos.
type AdminUserDetail struct {
	UserResponse
	SitesCount int                `json:"sites_count"`
	Sites      []OwnedSiteSummary `json:"sites"`
}

// AdminUserDetailResponse salida de GET /admin/users/:id.
type AdminUserDetailResponse struct {
	User AdminUserDetail `json:"user"`
}

// AdminUpdateSiteRequest actualización cross-tenant de un sitio. Un cambio de plan
// recalcula las cuotas por defecto salvo que venga un override explícito.
type AdminUpdateSiteRequest struct {
	Name          string `json:"name" validate:"omitempty,min=1,max=200"`
	Plan          string `json:"plan" validate:"omitempty,oneof=free pro enterprise"`
	Status        string `json:"status" validate:"omitempty,oneof=active suspended"`
	QuotaPages    *int   `json:"quota_pages" validate:"omitempty"`
	QuotaAssetsMB *int   `json:"quota_assets_mb" validate:"omitempty"`
}

// AdminSiteListItem sitio con owner y agregados para el listado admin.
type AdminSiteListItem struct {
	SiteResponse
	OwnerEmail     string `json:"owner_email"`
	OwnerName      string `json:"owner_name,omitempty"`
	OwnerStatus    string `json:"owner_status"`
	PublishedPages int    `json:"published_pages"`
	TotalPages     int    `json:"total_pages"`
	TotalAssets    int    `json:"total_assets"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	MembersCount   int    `json:"members_count"`
}

// AdminSiteListResponse salida de GET /admin/sites.
type AdminSiteListResponse struct {
	Sites      []AdminSiteListItem `json:"sites"`
	Pagination Pagination          `json:"pagination"`
}

// SiteMemberItem membresía con datos del usuario.
type SiteMemberItem struct {
	UserID  string    `json:"user_id"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
	Email   string    `json:"email"`
	Name    string    `json:"name,omitempty"`
	Status  string    `json:"status"`
}

// PageItem página reciente con el nombre del último editor.
type PageItem struct {
	ID            string    `json:"id"`
	Path          string    `json:"path"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	UpdatedBy     string    `json:"updated_by"`
	UpdatedByName string    `json:"updated_by_name,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PublishJobItem publish job reciente con el nombre de quien lo lanzó.
type PublishJobItem struct {
	ID            string    `json:"id"`
	Scope         string    `json:"scope"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdminSiteDetail sitio con owner, miembros y actividad reciente.
type AdminSiteDetail struct {
	SiteResponse
	OwnerEmail      string           `json:"owner_email"`
	OwnerName       string           `json:"owner_name,omitempty"`
	OwnerStatus     string           `json:"owner_status"`
	Members         []SiteMemberItem `json:"members"`
	RecentPages     []PageItem       `json:"recent_pages"`
	RecentPublishes []PublishJobItem `json:"recent_publishes"`
}

// AdminSiteDetailResponse salida de GET /admin/sites/:id.
type AdminSiteDetailResponse struct {
	Site AdminSiteDetail `json:"site"`
}

// TransferSiteRequest entrada de POST /admin/sites/:id/transfer.
type TransferSiteRequest struct {
	NewOwnerID     string `json:"newOwnerId" validate:"required"`
	TransferReason string `json:"transferReason" validate:"omitempty,max=500"`
}

// TransferSiteResponse salida del transfer: owner anterior y nuevo.
type TransferSiteResponse struct {
	Message string `json:"message"`
	From    string `json:"from"`
	To      string `json:"to"`
	Reason  string `json:"reason,omitempty"`
}

// SuspendSiteRequest entrada de POST /admin/sites/:id/suspend.
type SuspendSiteRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// DeletedSiteStats conteos de lo eliminado en cascada junto con el sitio.
type DeletedSiteStats struct {
	PagesCount   int `json:"pages_count"`
	AssetsCount  int `json:"assets_count"`
	MembersCount int `json:"members_count"`
}

// DeleteSiteResponse salida de DELETE /admin/sites/:id.
type DeleteSiteResponse struct {
	Message      string           `json:"message"`
	DeletedStats DeletedSiteStats `json:"deleted_stats"`
}
