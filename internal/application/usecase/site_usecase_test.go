package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido entre los repos fake (emula la DB).
type fakeStore struct {
	sites   map[string]*entity.Site
	members map[string]map[string]string // siteID -> userID -> role
	pages   []*entity.Page
	jobs    []*entity.PublishJob
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sites:   make(map[string]*entity.Site),
		members: make(map[string]map[string]string),
	}
}

type fakeSiteRepo struct{ st *fakeStore }

var _ repository.SiteRepository = (*fakeSiteRepo)(nil)

func (r *fakeSiteRepo) Create(_ context.Context, s *entity.Site) error {
	for _, ex := range r.st.sites {
		if ex.Subdomain == s.Subdomain {
			return domain.ErrSubdomainTaken
		}
	}
	cp := *s
	r.st.sites[s.ID] = &cp
	return nil
}

func (r *fakeSiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	if s, ok := r.st.sites[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSiteRepo) GetBySubdomain(_ context.Context, sub string) (*entity.Site, error) {
	for _, s := range r.st.sites {
		if s.Subdomain == sub {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSiteRepo) GetForUser(_ context.Context, siteID, userID string) (*repository.SiteWithRole, error) {
	s, ok := r.st.sites[siteID]
	if !ok {
		return nil, nil
	}
	role := ""
	if s.OwnerUserID == userID {
		role = entity.SiteRoleOwner
	} else if m, ok := r.st.members[siteID]; ok {
		role = m[userID]
	}
	if role == "" {
		return nil, nil
	}
	row := repository.SiteWithRole{Site: *s, Role: role}
	for _, p := range r.st.pages {
		if p.SiteID == siteID {
			row.TotalPages++
			if p.Status == entity.PageStatusPublished {
				row.PublishedPages++
			}
		}
	}
	return &row, nil
}

func (r *fakeSiteRepo) ListForUser(ctx context.Context, userID string) ([]repository.SiteWithRole, error) {
	var out []repository.SiteWithRole
	for id := range r.st.sites {
		if row, _ := r.GetForUser(ctx, id, userID); row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeSiteRepo) ListByOwner(ctx context.Context, userID string) ([]repository.SiteWithRole, error) {
	var out []repository.SiteWithRole
	for _, s := range r.st.sites {
		if s.OwnerUserID == userID {
			out = append(out, repository.SiteWithRole{Site: *s, Role: entity.SiteRoleOwner})
		}
	}
	return out, nil
}

func (r *fakeSiteRepo) CountByOwner(_ context.Context, userID string) (int, error) {
	n := 0
	for _, s := range r.st.sites {
		if s.OwnerUserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSiteRepo) Update(_ context.Context, s *entity.Site) error {
	cp := *s
	r.st.sites[s.ID] = &cp
	return nil
}

func (r *fakeSiteRepo) UpdateOwner(_ context.Context, siteID, newOwnerID string) error {
	s, ok := r.st.sites[siteID]
	if !ok {
		return domain.ErrSiteNotFound
	}
	s.OwnerUserID = newOwnerID
	return nil
}

func (r *fakeSiteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.st.sites[id]; !ok {
		return domain.ErrSiteNotFound
	}
	delete(r.st.sites, id)
	delete(r.st.members, id)
	return nil
}

func (r *fakeSiteRepo) List(_ context.Context, _ repository.SiteFilter) ([]repository.SiteWithOwner, int, error) {
	return nil, 0, nil
}

func (r *fakeSiteRepo) GetWithOwner(_ context.Context, id string) (*repository.SiteWithOwner, error) {
	s, ok := r.st.sites[id]
	if !ok {
		return nil, nil
	}
	return &repository.SiteWithOwner{Site: *s, MembersCount: len(r.st.members[id])}, nil
}

func (r *fakeSiteRepo) Stats(_ context.Context, siteID string) (*repository.SiteStats, error) {
	var st repository.SiteStats
	for _, p := range r.st.pages {
		if p.SiteID == siteID {
			st.TotalPages++
			if p.Status == entity.PageStatusPublished {
				st.PublishedPages++
			}
		}
	}
	return &st, nil
}

type fakeMembershipRepo struct{ st *fakeStore }

var _ repository.MembershipRepository = (*fakeMembershipRepo)(nil)

func (r *fakeMembershipRepo) Create(_ context.Context, m *entity.SiteUser) error {
	if r.st.members[m.SiteID] == nil {
		r.st.members[m.SiteID] = make(map[string]string)
	}
	r.st.members[m.SiteID][m.UserID] = m.Role
	return nil
}

func (r *fakeMembershipRepo) Upsert(ctx context.Context, m *entity.SiteUser) error {
	return r.Create(ctx, m)
}

func (r *fakeMembershipRepo) UpdateRole(_ context.Context, siteID, userID, role string) error {
	if m, ok := r.st.members[siteID]; ok {
		m[userID] = role
	}
	return nil
}

func (r *fakeMembershipRepo) ListBySite(_ context.Context, siteID string) ([]repository.SiteMember, error) {
	var out []repository.SiteMember
	for userID, role := range r.st.members[siteID] {
		out = append(out, repository.SiteMember{
			SiteUser: entity.SiteUser{SiteID: siteID, UserID: userID, Role: role},
		})
	}
	return out, nil
}

type fakePageRepo struct{ st *fakeStore }

var _ repository.PageRepository = (*fakePageRepo)(nil)

func (r *fakePageRepo) Create(_ context.Context, p *entity.Page) error {
	cp := *p
	r.st.pages = append(r.st.pages, &cp)
	return nil
}

func (r *fakePageRepo) PublishBySite(_ context.Context, siteID, updatedBy string) (int, error) {
	n := 0
	for _, p := range r.st.pages {
		if p.SiteID == siteID && p.Status == entity.PageStatusDraft {
			p.Status = entity.PageStatusPublished
			p.UpdatedBy = updatedBy
			n++
		}
	}
	return n, nil
}

func (r *fakePageRepo) RecentBySite(_ context.Context, siteID string, limit int) ([]repository.PageSummary, error) {
	var out []repository.PageSummary
	for _, p := range r.st.pages {
		if p.SiteID == siteID && len(out) < limit {
			out = append(out, repository.PageSummary{Page: *p})
		}
	}
	return out, nil
}

type fakeJobRepo struct{ st *fakeStore }

var _ repository.PublishJobRepository = (*fakeJobRepo)(nil)

func (r *fakeJobRepo) Create(_ context.Context, j *entity.PublishJob) error {
	cp := *j
	r.st.jobs = append(r.st.jobs, &cp)
	return nil
}

func (r *fakeJobRepo) RecentBySite(_ context.Context, siteID string, limit int) ([]repository.PublishJobSummary, error) {
	var out []repository.PublishJobSummary
	for _, j := range r.st.jobs {
		if j.SiteID == siteID && len(out) < limit {
			out = append(out, repository.PublishJobSummary{PublishJob: *j})
		}
	}
	return out, nil
}

// fakeTx ejecuta fn directamente contra los repos del store (sin transacción real).
type fakeTx struct{ st *fakeStore }

func (t *fakeTx) Run(_ context.Context, fn func(
	sites repository.SiteRepository,
	members repository.MembershipRepository,
	pages repository.PageRepository,
	jobs repository.PublishJobRepository,
) error) error {
	return fn(&fakeSiteRepo{t.st}, &fakeMembershipRepo{t.st}, &fakePageRepo{t.st}, &fakeJobRepo{t.st})
}

func newSiteUC() (*usecase.SiteUseCase, *fakeStore) {
	st := newFakeStore()
	return usecase.NewSiteUseCase(&fakeSiteRepo{st}, &fakeTx{st}), st
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestSiteCreate_PlanFree_AsignaCuotasYHome(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "user-1", dto.CreateSiteRequest{Name: "Mi Sitio", Subdomain: "misitio"})
	require.NoError(t, err)

	assert.Equal(t, "Site created successfully", out.Message)
	assert.Equal(t, entity.PlanFree, out.Site.Plan, "sin plan explícito se asume free")
	assert.Equal(t, 10, out.Site.QuotaPages)
	assert.Equal(t, 100, out.Site.QuotaAssetsMB)
	assert.Equal(t, entity.SiteStatusActive, out.Site.Status)

	// Membresía owner creada en la misma transacción
	assert.Equal(t, entity.SiteRoleOwner, st.members[out.Site.ID]["user-1"])

	// Página home draft por defecto
	require.Len(t, st.pages, 1)
	home := st.pages[0]
	assert.Equal(t, entity.DefaultHomePath, home.Path)
	assert.Equal(t, entity.DefaultHomeTitle, home.Title)
	assert.Equal(t, entity.PageStatusDraft, home.Status)
}

func TestSiteCreate_SegundoSitioFree_ExcedeCuota(t *testing.T) {
	uc, _ := newSiteUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateSiteRequest{Name: "Uno", Subdomain: "uno"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "user-1", dto.CreateSiteRequest{Name: "Dos", Subdomain: "dos"})
	qe, ok := domain.IsQuotaExceeded(err)
	require.True(t, ok, "el segundo sitio free debe exceder la cuota")
	assert.Equal(t, entity.PlanFree, qe.Plan)
	assert.Equal(t, 1, qe.Limit)
}

func TestSiteCreate_PlanPro_PermiteVariosSitios(t *testing.T) {
	uc, _ := newSiteUC()
	ctx := context.Background()

	for i, sub := range []string{"pro-a", "pro-b", "pro-c"} {
		_, err := uc.Create(ctx, "user-1", dto.CreateSiteRequest{
			Name: "Sitio", Subdomain: sub, Plan: entity.PlanPro,
		})
		require.NoError(t, err, "sitio pro #%d", i+1)
	}
}

func TestSiteCreate_SubdominioTomado(t *testing.T) {
	uc, _ := newSiteUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateSiteRequest{Name: "Uno", Subdomain: "tomado"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "user-2", dto.CreateSiteRequest{Name: "Dos", Subdomain: "tomado"})
	assert.ErrorIs(t, err, domain.ErrSubdomainTaken)
}

func TestSiteCreate_PlanInvalido(t *testing.T) {
	uc, _ := newSiteUC()
	_, err := uc.Create(context.Background(), "user-1", dto.CreateSiteRequest{
		Name: "X", Subdomain: "x", Plan: "premium",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests acceso y mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSiteGet_MiembroPuedeLeer_ExtrañoNo(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)
	st.members[out.Site.ID]["member-1"] = entity.SiteRoleMember

	detail, err := uc.Get(ctx, "member-1", out.Site.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SiteRoleMember, detail.Site.Role)

	_, err = uc.Get(ctx, "stranger-1", out.Site.ID)
	assert.ErrorIs(t, err, domain.ErrSiteNotFound, "sin acceso responde como inexistente")
}

func TestSiteUpdate_CambioDePlan_RecalculaCuotas(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)

	err = uc.Update(ctx, "owner-1", out.Site.ID, dto.UpdateSiteRequest{Plan: entity.PlanPro})
	require.NoError(t, err)

	s := st.sites[out.Site.ID]
	assert.Equal(t, entity.PlanPro, s.Plan)
	assert.Equal(t, 100, s.QuotaPages)
	assert.Equal(t, 1000, s.QuotaAssetsMB)
}

func TestSiteUpdate_SinCampos(t *testing.T) {
	uc, _ := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)

	err = uc.Update(ctx, "owner-1", out.Site.ID, dto.UpdateSiteRequest{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestSiteUpdate_NoOwner_RespondeComoInexistente(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)
	st.members[out.Site.ID]["member-1"] = entity.SiteRoleMember

	// Un miembro puede leer pero no mutar
	err = uc.Update(ctx, "member-1", out.Site.ID, dto.UpdateSiteRequest{Name: "Hackeado"})
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)

	err = uc.Delete(ctx, "member-1", out.Site.ID)
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}

func TestSiteDelete_Owner(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "owner-1", out.Site.ID))
	assert.Empty(t, st.sites)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Publish
// ──────────────────────────────────────────────────────────────────────────────

func TestSitePublish_PublicaDraftsYRegistraJob(t *testing.T) {
	uc, st := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)

	pub, err := uc.Publish(ctx, "owner-1", out.Site.ID)
	require.NoError(t, err)

	assert.Equal(t, "Site published successfully", pub.Message)
	assert.Equal(t, 1, pub.PagesPublished, "la home draft debe publicarse")
	assert.NotEmpty(t, pub.JobID)

	assert.Equal(t, entity.PageStatusPublished, st.pages[0].Status)
	require.Len(t, st.jobs, 1)
	assert.Equal(t, "site", st.jobs[0].Scope)
	assert.Equal(t, "success", st.jobs[0].Status)
	assert.Equal(t, "owner-1", st.jobs[0].CreatedBy)
}

func TestSitePublish_NoOwner(t *testing.T) {
	uc, _ := newSiteUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Name: "Sitio", Subdomain: "sitio"})
	require.NoError(t, err)

	_, err = uc.Publish(ctx, "stranger-1", out.Site.ID)
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}
