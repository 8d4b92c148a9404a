package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
	"github.com/jhoicas/sitebuilder-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RoleSuperAdmin claim de rol de los tokens del dominio admin. No es un nivel sobre
// los tokens de usuario: es un dominio de confianza aparte con su propio secreto.
const RoleSuperAdmin = "super_admin"

// adminID identidad fija del único super admin (la credencial viene de configuración).
const adminID = "super-admin"

// Credentials credencial fija del super admin, inyectada al construir el caso de uso.
type Credentials struct {
	Email    string
	Password string
}

// JWTConfig parámetros de emisión de tokens del dominio admin.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AdminUseCase consola de administración: gestión cross-tenant de usuarios y sitios.
// Toda operación aquí asume un token admin válido; no aplica checks de ownership
// (modelo de dos niveles de confianza intencional).
type AdminUseCase struct {
	userRepo   repository.UserRepository
	siteRepo   repository.SiteRepository
	memberRepo repository.MembershipRepository
	pageRepo   repository.PageRepository
	jobRepo    repository.PublishJobRepository
	statsRepo  repository.StatsRepository
	tx         TxRunner
	creds      Credentials
	jwtCfg     JWTConfig
}

// NewAdminUseCase construye el caso de uso de administración.
func NewAdminUseCase(
	userRepo repository.UserRepository,
	siteRepo repository.SiteRepository,
	memberRepo repository.MembershipRepository,
	pageRepo repository.PageRepository,
	jobRepo repository.PublishJobRepository,
	statsRepo repository.StatsRepository,
	tx TxRunner,
	creds Credentials,
	jwtCfg JWTConfig,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:   userRepo,
		siteRepo:   siteRepo,
		memberRepo: memberRepo,
		pageRepo:   pageRepo,
		jobRepo:    jobRepo,
		statsRepo:  statsRepo,
		tx:         tx,
		creds:      creds,
		jwtCfg:     jwtCfg,
	}
}

// Login compara contra la credencial inyectada en tiempo constante y emite un token
// del dominio admin. Cualquier mismatch (email o password) devuelve el mismo error.
func (uc *AdminUseCase) Login(in dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(uc.creds.Email))
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(uc.creds.Password))
	if emailOK&passOK != 1 {
		return nil, domain.ErrUnauthorized
	}
	identity := dto.AdminIdentity{
		ID:    adminID,
		Email: uc.creds.Email,
		Name:  "Super Admin",
		Role:  RoleSuperAdmin,
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		Role:   identity.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{
		Message: "Admin login successful",
		Admin:   identity,
		Token:   token,
	}, nil
}

// Dashboard conteos globales de la plataforma.
func (uc *AdminUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	s, err := uc.statsRepo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Stats: dto.DashboardStats{
		ActiveUsers:     s.ActiveUsers,
		SuspendedUsers:  s.SuspendedUsers,
		TotalSites:      s.TotalSites,
		FreeSites:       s.FreeSites,
		ProSites:        s.ProSites,
		EnterpriseSites: s.EnterpriseSites,
		PublishedPages:  s.PublishedPages,
		RecentPublishes: s.RecentPublishes,
	}}, nil
}

// normalizeDays acota el parámetro ?days=N. Default 30.
func normalizeDays(days int) int {
	if days <= 0 {
		return 30
	}
	if days > 365 {
		return 365
	}
	return days
}

// UserSignupStats serie diaria de registros de los últimos N días.
func (uc *AdminUseCase) UserSignupStats(ctx context.Context, days int) (*dto.UserStatsResponse, error) {
	days = normalizeDays(days)
	rows, err := uc.statsRepo.SignupsByDay(ctx, days)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailySignupsItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailySignupsItem{Date: r.Date, Signups: r.Signups})
	}
	return &dto.UserStatsResponse{Stats: items, Period: fmt.Sprintf("%d days", days)}, nil
}

// SiteCreationStats serie diaria de creaciones de sitios por plan.
func (uc *AdminUseCase) SiteCreationStats(ctx context.Context, days int) (*dto.SiteStatsSeriesResponse, error) {
	days = normalizeDays(days)
	rows, err := uc.statsRepo.SiteCreationsByDay(ctx, days)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailySitesItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailySitesItem{Date: r.Date, Plan: r.Plan, Created: r.Created})
	}
	return &dto.SiteStatsSeriesResponse{Stats: items, Period: fmt.Sprintf("%d days", days)}, nil
}

// PublishingStats serie diaria de publish jobs por scope y status.
func (uc *AdminUseCase) PublishingStats(ctx context.Context, days int) (*dto.PublishStatsResponse, error) {
	days = normalizeDays(days)
	rows, err := uc.statsRepo.PublishesByDay(ctx, days)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailyPublishItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailyPublishItem{Date: r.Date, Scope: r.Scope, Status: r.Status, Count: r.Count})
	}
	return &dto.PublishStatsResponse{Stats: items, Period: fmt.Sprintf("%d days", days)}, nil
}

// ListUsers listado con búsqueda, filtro por status y paginación.
func (uc *AdminUseCase) ListUsers(ctx context.Context, q dto.ListQuery, status string) (*dto.AdminUserListResponse, error) {
	q.Defaults()
	rows, total, err := uc.userRepo.List(ctx, repository.UserFilter{
		Search:    q.Search,
		Status:    status,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminUserListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.AdminUserListItem{
			UserResponse:    *toUserResponse(&r.User),
			SitesCount:      r.SitesCount,
			FreeSites:       r.FreeSites,
			ProSites:        r.ProSites,
			EnterpriseSites: r.EnterpriseSites,
		})
	}
	return &dto.AdminUserListResponse{
		Users:      items,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// GetUser detalle de un usuario con sus sitios poseídos.
func (uc *AdminUseCase) GetUser(ctx context.Context, id string) (*dto.AdminUserDetailResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	sites, err := uc.siteRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	owned := make([]dto.OwnedSiteSummary, 0, len(sites))
	for _, s := range sites {
		owned = append(owned, dto.OwnedSiteSummary{
			ID:             s.ID,
			Name:           s.Name,
			Subdomain:      s.Subdomain,
			Plan:           s.Plan,
			CreatedAt:      s.CreatedAt,
			PublishedPages: s.PublishedPages,
		})
	}
	return &dto.AdminUserDetailResponse{User: dto.AdminUserDetail{
		UserResponse: *toUserResponse(user),
		SitesCount:   len(owned),
		Sites:        owned,
	}}, nil
}

// CreateUser alta directa desde la consola (permite status inicial suspended).
func (uc *AdminUseCase) CreateUser(ctx context.Context, in dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.UserStatusActive
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateUser modifica name y/o status. Sin campos presentes devuelve ErrNoFieldsToUpdate.
func (uc *AdminUseCase) UpdateUser(ctx context.Context, id string, in dto.AdminUpdateUserRequest) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	changed := false
	if in.Name != nil {
		user.Name = *in.Name
		changed = true
	}
	if in.Status != "" {
		user.Status = in.Status
		changed = true
	}
	if !changed {
		return domain.ErrNoFieldsToUpdate
	}
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// DeleteUser baja lógica: si el usuario posee sitios se rechaza; si no, pasa a
// status=suspended. Nunca hard-delete (las membresías y ediciones lo referencian).
func (uc *AdminUseCase) DeleteUser(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	count, err := uc.siteRepo.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUserHasSites
	}
	user.Status = entity.UserStatusSuspended
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ResetPassword re-hashea y persiste el nuevo password del usuario.
func (uc *AdminUseCase) ResetPassword(ctx context.Context, id, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// ListSites listado cross-tenant con búsqueda, filtro por plan y paginación.
func (uc *AdminUseCase) ListSites(ctx context.Context, q dto.ListQuery, plan string) (*dto.AdminSiteListResponse, error) {
	q.Defaults()
	rows, total, err := uc.siteRepo.List(ctx, repository.SiteFilter{
		Search:    q.Search,
		Plan:      plan,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminSiteListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.AdminSiteListItem{
			SiteResponse:   *toSiteResponse(&r.Site),
			OwnerEmail:     r.OwnerEmail,
			OwnerName:      r.OwnerName,
			OwnerStatus:    r.OwnerStatus,
			PublishedPages: r.PublishedPages,
			TotalPages:     r.TotalPages,
			TotalAssets:    r.TotalAssets,
			TotalSizeBytes: r.TotalSizeBytes,
			MembersCount:   r.MembersCount,
		})
	}
	return &dto.AdminSiteListResponse{
		Sites:      items,
		Pagination: paginate(q.Page, q.Limit, total),
	}, nil
}

// GetSite detalle de un sitio con owner, miembros y actividad reciente.
func (uc *AdminUseCase) GetSite(ctx context.Context, id string) (*dto.AdminSiteDetailResponse, error) {
	site, err := uc.siteRepo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	members, err := uc.memberRepo.ListBySite(ctx, id)
	if err != nil {
		return nil, err
	}
	pages, err := uc.pageRepo.RecentBySite(ctx, id, 10)
	if err != nil {
		return nil, err
	}
	jobs, err := uc.jobRepo.RecentBySite(ctx, id, 5)
	if err != nil {
		return nil, err
	}

	memberItems := make([]dto.SiteMemberItem, 0, len(members))
	for _, m := range members {
		memberItems = append(memberItems, dto.SiteMemberItem{
			UserID:  m.UserID,
			Role:    m.Role,
			AddedAt: m.AddedAt,
			Email:   m.Email,
			Name:    m.Name,
			Status:  m.Status,
		})
	}
	pageItems := make([]dto.PageItem, 0, len(pages))
	for _, p := range pages {
		pageItems = append(pageItems, dto.PageItem{
			ID:            p.ID,
			Path:          p.Path,
			Title:         p.Title,
			Status:        p.Status,
			UpdatedBy:     p.UpdatedBy,
			UpdatedByName: p.UpdatedByName,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	jobItems := make([]dto.PublishJobItem, 0, len(jobs))
	for _, j := range jobs {
		jobItems = append(jobItems, dto.PublishJobItem{
			ID:            j.ID,
			Scope:         j.Scope,
			Status:        j.Status,
			CreatedBy:     j.CreatedBy,
			CreatedByName: j.CreatedByName,
			CreatedAt:     j.CreatedAt,
		})
	}
	return &dto.AdminSiteDetailResponse{Site: dto.AdminSiteDetail{
		SiteResponse:    *toSiteResponse(&site.Site),
		OwnerEmail:      site.OwnerEmail,
		OwnerName:       site.OwnerName,
		OwnerStatus:     site.OwnerStatus,
		Members:         memberItems,
		RecentPages:     pageItems,
		RecentPublishes: jobItems,
	}}, nil
}

// UpdateSite mutación cross-tenant: name, plan, status y cuotas. Un cambio de plan
// aplica las cuotas por defecto del nuevo plan SALVO que la petición traiga un
// override explícito de cuotas.
func (uc *AdminUseCase) UpdateSite(ctx context.Context, id string, in dto.AdminUpdateSiteRequest) error {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrSiteNotFound
	}
	changed := false
	if in.Name != "" {
		site.Name = in.Name
		changed = true
	}
	if in.Plan != "" {
		site.Plan = in.Plan
		if in.QuotaPages == nil && in.QuotaAssetsMB == nil {
			quota := entity.DefaultQuota(in.Plan)
			site.QuotaPages = quota.Pages
			site.QuotaAssetsMB = quota.AssetsMB
		}
		changed = true
	}
	if in.Status != "" {
		site.Status = in.Status
		changed = true
	}
	if in.QuotaPages != nil {
		site.QuotaPages = *in.QuotaPages
		changed = true
	}
	if in.QuotaAssetsMB != nil {
		site.QuotaAssetsMB = *in.QuotaAssetsMB
		changed = true
	}
	if !changed {
		return domain.ErrNoFieldsToUpdate
	}
	site.UpdatedAt = time.Now()
	return uc.siteRepo.Update(ctx, site)
}

// TransferSite transfiere el ownership a un usuario activo existente. Los tres pasos
// (owner_user_id, demote del owner anterior a admin, upsert del nuevo owner) van en
// una sola transacción: después del commit hay exactamente una fila role=owner y
// referencia al nuevo owner.
func (uc *AdminUseCase) TransferSite(ctx context.Context, siteID string, in dto.TransferSiteRequest) (*dto.TransferSiteResponse, error) {
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	newOwner, err := uc.userRepo.GetByID(ctx, in.NewOwnerID)
	if err != nil {
		return nil, err
	}
	if newOwner == nil || !newOwner.IsActive() {
		return nil, domain.ErrOwnerNotActive
	}

	prevOwnerID := site.OwnerUserID
	err = uc.tx.Run(ctx, func(
		sites repository.SiteRepository,
		members repository.MembershipRepository,
		_ repository.PageRepository,
		_ repository.PublishJobRepository,
	) error {
		if err := sites.UpdateOwner(ctx, siteID, newOwner.ID); err != nil {
			return err
		}
		if err := members.UpdateRole(ctx, siteID, prevOwnerID, entity.SiteRoleAdmin); err != nil {
			return err
		}
		return members.Upsert(ctx, &entity.SiteUser{
			SiteID:  siteID,
			UserID:  newOwner.ID,
			Role:    entity.SiteRoleOwner,
			AddedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferSiteResponse{
		Message: "Site ownership transferred successfully",
		From:    prevOwnerID,
		To:      newOwner.ID,
		Reason:  in.TransferReason,
	}, nil
}

// DeleteSite elimina un sitio y devuelve conteos de lo arrastrado por el CASCADE.
func (uc *AdminUseCase) DeleteSite(ctx context.Context, id string) (*dto.DeleteSiteResponse, error) {
	site, err := uc.siteRepo.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	if err := uc.siteRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteSiteResponse{
		Message: "Site deleted successfully",
		DeletedStats: dto.DeletedSiteStats{
			PagesCount:   site.TotalPages,
			AssetsCount:  site.TotalAssets,
			MembersCount: site.MembersCount,
		},
	}, nil
}

// SuspendSite persiste status=suspended en el sitio. Reactivación: PUT /admin/sites/:id
// con status=active.
func (uc *AdminUseCase) SuspendSite(ctx context.Context, id string) error {
	site, err := uc.siteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrSiteNotFound
	}
	site.Status = entity.SiteStatusSuspended
	site.UpdatedAt = time.Now()
	return uc.siteRepo.Update(ctx, site)
}

func paginate(page, limit, total int) dto.Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSiteResponse(s *entity.Site) *dto.SiteResponse {
	if s == nil {
		return nil
	}
	return &dto.SiteResponse{
		ID:            s.ID,
		OwnerUserID:   s.OwnerUserID,
		Name:          s.Name,
		Subdomain:     s.Subdomain,
		Plan:          s.Plan,
		Status:        s.Status,
		QuotaPages:    s.QuotaPages,
		QuotaAssetsMB: s.QuotaAssetsMB,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
