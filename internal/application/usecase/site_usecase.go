package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

// SiteUseCase reglas de ownership y cuotas sobre los sitios del usuario.
//
// Regla de acceso: lectura para owner o miembro (site_users); mutación solo para el
// owner. Sin acceso se responde como si el sitio no existiera (el handler mapea a 404).
type SiteUseCase struct {
	siteRepo repository.SiteRepository
	tx       TxRunner
}

// NewSiteUseCase construye el caso de uso con el puerto de persistencia y el runner de transacciones.
func NewSiteUseCase(siteRepo repository.SiteRepository, tx TxRunner) *SiteUseCase {
	return &SiteUseCase{siteRepo: siteRepo, tx: tx}
}

// Create crea un sitio bajo la cuota del plan. Pasos:
//  1. subdominio libre (pre-check; ante una carrera decide el UNIQUE del store),
//  2. conteo de sitios poseídos < límite del plan (free=1, pro=5, enterprise=999),
//  3. transacción única: INSERT site con cuotas por defecto + membresía owner +
//     página home draft. Sin ventana de fallo parcial.
func (uc *SiteUseCase) Create(ctx context.Context, userID string, in dto.CreateSiteRequest) (*dto.CreateSiteResponse, error) {
	plan := in.Plan
	if plan == "" {
		plan = entity.PlanFree
	}
	if !entity.IsValidPlan(plan) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.siteRepo.GetBySubdomain(ctx, in.Subdomain)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSubdomainTaken
	}

	count, err := uc.siteRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := entity.SiteLimit(plan)
	if count >= limit {
		return nil, &domain.QuotaExceededError{Plan: plan, Limit: limit}
	}

	quota := entity.DefaultQuota(plan)
	now := time.Now()
	site := &entity.Site{
		ID:            uuid.New().String(),
		OwnerUserID:   userID,
		Name:          in.Name,
		Subdomain:     in.Subdomain,
		Plan:          plan,
		Status:        entity.SiteStatusActive,
		QuotaPages:    quota.Pages,
		QuotaAssetsMB: quota.AssetsMB,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.tx.Run(ctx, func(
		sites repository.SiteRepository,
		members repository.MembershipRepository,
		pages repository.PageRepository,
		_ repository.PublishJobRepository,
	) error {
		if err := sites.Create(ctx, site); err != nil {
			return err
		}
		if err := members.Create(ctx, &entity.SiteUser{
			SiteID:  site.ID,
			UserID:  userID,
			Role:    entity.SiteRoleOwner,
			AddedAt: now,
		}); err != nil {
			return err
		}
		return pages.Create(ctx, &entity.Page{
			ID:          uuid.New().String(),
			SiteID:      site.ID,
			Path:        entity.DefaultHomePath,
			Title:       entity.DefaultHomeTitle,
			ContentHTML: entity.DefaultHomeContent,
			Status:      entity.PageStatusDraft,
			UpdatedBy:   userID,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateSiteResponse{
		Message: "Site created successfully",
		Site:    *toSiteResponse(site),
	}, nil
}

// List devuelve los sitios propios y aquellos donde el usuario es miembro.
func (uc *SiteUseCase) List(ctx context.Context, userID string) (*dto.SiteListResponse, error) {
	rows, err := uc.siteRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiteListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.SiteListItem{
			SiteResponse:   *toSiteResponse(&row.Site),
			Role:           row.Role,
			PublishedPages: row.PublishedPages,
			TotalPages:     row.TotalPages,
		})
	}
	return &dto.SiteListResponse{Sites: items}, nil
}

// Get devuelve el detalle de un sitio con sus estadísticas agregadas.
// Devuelve ErrSiteNotFound tanto si el sitio no existe como si el usuario no tiene
// acceso, para no revelar existencia.
func (uc *SiteUseCase) Get(ctx context.Context, userID, siteID string) (*dto.SiteDetailResponse, error) {
	row, err := uc.siteRepo.GetForUser(ctx, siteID, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrSiteNotFound
	}
	stats, err := uc.siteRepo.Stats(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return &dto.SiteDetailResponse{Site: dto.SiteDetail{
		SiteResponse: *toSiteResponse(&row.Site),
		Role:         row.Role,
		Stats: dto.SiteStats{
			PublishedPages: stats.PublishedPages,
			TotalPages:     stats.TotalPages,
			TotalAssets:    stats.TotalAssets,
			TotalSizeBytes: stats.TotalSizeBytes,
		},
	}}, nil
}

// Update modifica name y/o plan. Solo el owner; un cambio de plan recalcula las
// cuotas por defecto. Sin campos presentes devuelve ErrNoFieldsToUpdate.
func (uc *SiteUseCase) Update(ctx context.Context, userID, siteID string, in dto.UpdateSiteRequest) error {
	site, err := uc.ownedSite(ctx, userID, siteID)
	if err != nil {
		return err
	}

	changed := false
	if in.Name != "" {
		site.Name = in.Name
		changed = true
	}
	if in.Plan != "" {
		quota := entity.DefaultQuota(in.Plan)
		site.Plan = in.Plan
		site.QuotaPages = quota.Pages
		site.QuotaAssetsMB = quota.AssetsMB
		changed = true
	}
	if !changed {
		return domain.ErrNoFieldsToUpdate
	}
	site.UpdatedAt = time.Now()
	return uc.siteRepo.Update(ctx, site)
}

// Delete elimina un sitio propio. El CASCADE del store arrastra pages, assets,
// site_users y publish_jobs.
func (uc *SiteUseCase) Delete(ctx context.Context, userID, siteID string) error {
	site, err := uc.ownedSite(ctx, userID, siteID)
	if err != nil {
		return err
	}
	return uc.siteRepo.Delete(ctx, site.ID)
}

// Publish publica todas las páginas draft del sitio y registra un publish job para
// auditoría. Solo el owner. Ambas escrituras van en la misma transacción.
func (uc *SiteUseCase) Publish(ctx context.Context, userID, siteID string) (*dto.PublishSiteResponse, error) {
	site, err := uc.ownedSite(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}

	job := &entity.PublishJob{
		ID:        uuid.New().String(),
		SiteID:    site.ID,
		Scope:     "site",
		Status:    "success",
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	var published int
	err = uc.tx.Run(ctx, func(
		_ repository.SiteRepository,
		_ repository.MembershipRepository,
		pages repository.PageRepository,
		jobs repository.PublishJobRepository,
	) error {
		n, err := pages.PublishBySite(ctx, site.ID, userID)
		if err != nil {
			return err
		}
		published = n
		return jobs.Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PublishSiteResponse{
		Message:        "Site published successfully",
		JobID:          job.ID,
		PagesPublished: published,
	}, nil
}

// ownedSite devuelve el sitio solo si userID es su owner; en cualquier otro caso
// ErrSiteNotFound (sin filtrar existencia a no-owners).
func (uc *SiteUseCase) ownedSite(ctx context.Context, userID, siteID string) (*entity.Site, error) {
	site, err := uc.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil || site.OwnerUserID != userID {
		return nil, domain.ErrSiteNotFound
	}
	return site, nil
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
