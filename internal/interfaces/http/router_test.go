package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sitebuilder-api/internal/application/admin"
	"github.com/jhoicas/sitebuilder-api/internal/application/auth"
	"github.com/jhoicas/sitebuilder-api/internal/application/usecase"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
	apphttp "github.com/jhoicas/sitebuilder-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (emulan la DB para el stack HTTP completo)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	users   map[string]*entity.User
	sites   map[string]*entity.Site
	members map[string]map[string]string
	pages   []*entity.Page
	jobs    []*entity.PublishJob
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*entity.User),
		sites:   make(map[string]*entity.Site),
		members: make(map[string]map[string]string),
	}
}

type memUserRepo struct{ st *memStore }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.st.users {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.st.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, _ repository.UserFilter) ([]repository.UserWithSiteCounts, int, error) {
	var out []repository.UserWithSiteCounts
	for _, u := range r.st.users {
		out = append(out, repository.UserWithSiteCounts{User: *u})
	}
	return out, len(out), nil
}

type memSiteRepo struct{ st *memStore }

var _ repository.SiteRepository = (*memSiteRepo)(nil)

func (r *memSiteRepo) Create(_ context.Context, s *entity.Site) error {
	for _, ex := range r.st.sites {
		if ex.Subdomain == s.Subdomain {
			return domain.ErrSubdomainTaken
		}
	}
	cp := *s
	r.st.sites[s.ID] = &cp
	return nil
}

func (r *memSiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	if s, ok := r.st.sites[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memSiteRepo) GetBySubdomain(_ context.Context, sub string) (*entity.Site, error) {
	for _, s := range r.st.sites {
		if s.Subdomain == sub {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSiteRepo) GetForUser(_ context.Context, siteID, userID string) (*repository.SiteWithRole, error) {
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
	return &repository.SiteWithRole{Site: *s, Role: role}, nil
}

func (r *memSiteRepo) ListForUser(ctx context.Context, userID string) ([]repository.SiteWithRole, error) {
	var out []repository.SiteWithRole
	for id := range r.st.sites {
		if row, _ := r.GetForUser(ctx, id, userID); row != nil {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *memSiteRepo) ListByOwner(_ context.Context, userID string) ([]repository.SiteWithRole, error) {
	var out []repository.SiteWithRole
	for _, s := range r.st.sites {
		if s.OwnerUserID == userID {
			out = append(out, repository.SiteWithRole{Site: *s, Role: entity.SiteRoleOwner})
		}
	}
	return out, nil
}

func (r *memSiteRepo) CountByOwner(_ context.Context, userID string) (int, error) {
	n := 0
	for _, s := range r.st.sites {
		if s.OwnerUserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memSiteRepo) Update(_ context.Context, s *entity.Site) error {
	cp := *s
	r.st.sites[s.ID] = &cp
	return nil
}

func (r *memSiteRepo) UpdateOwner(_ context.Context, siteID, newOwnerID string) error {
	s, ok := r.st.sites[siteID]
	if !ok {
		return domain.ErrSiteNotFound
	}
	s.OwnerUserID = newOwnerID
	return nil
}

func (r *memSiteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.st.sites[id]; !ok {
		return domain.ErrSiteNotFound
	}
	delete(r.st.sites, id)
	delete(r.st.members, id)
	return nil
}

func (r *memSiteRepo) List(_ context.Context, _ repository.SiteFilter) ([]repository.SiteWithOwner, int, error) {
	var out []repository.SiteWithOwner
	for _, s := range r.st.sites {
		out = append(out, repository.SiteWithOwner{Site: *s})
	}
	return out, len(out), nil
}

func (r *memSiteRepo) GetWithOwner(_ context.Context, id string) (*repository.SiteWithOwner, error) {
	s, ok := r.st.sites[id]
	if !ok {
		return nil, nil
	}
	return &repository.SiteWithOwner{Site: *s, MembersCount: len(r.st.members[id])}, nil
}

func (r *memSiteRepo) Stats(context.Context, string) (*repository.SiteStats, error) {
	return &repository.SiteStats{}, nil
}

type memMembershipRepo struct{ st *memStore }

var _ repository.MembershipRepository = (*memMembershipRepo)(nil)

func (r *memMembershipRepo) Create(_ context.Context, m *entity.SiteUser) error {
	if r.st.members[m.SiteID] == nil {
		r.st.members[m.SiteID] = make(map[string]string)
	}
	r.st.members[m.SiteID][m.UserID] = m.Role
	return nil
}

func (r *memMembershipRepo) Upsert(ctx context.Context, m *entity.SiteUser) error {
	return r.Create(ctx, m)
}

func (r *memMembershipRepo) UpdateRole(_ context.Context, siteID, userID, role string) error {
	if m, ok := r.st.members[siteID]; ok {
		m[userID] = role
	}
	return nil
}

func (r *memMembershipRepo) ListBySite(_ context.Context, siteID string) ([]repository.SiteMember, error) {
	return nil, nil
}

type memPageRepo struct{ st *memStore }

var _ repository.PageRepository = (*memPageRepo)(nil)

func (r *memPageRepo) Create(_ context.Context, p *entity.Page) error {
	cp := *p
	r.st.pages = append(r.st.pages, &cp)
	return nil
}

func (r *memPageRepo) PublishBySite(_ context.Context, siteID, updatedBy string) (int, error) {
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

func (r *memPageRepo) RecentBySite(context.Context, string, int) ([]repository.PageSummary, error) {
	return nil, nil
}

type memJobRepo struct{ st *memStore }

var _ repository.PublishJobRepository = (*memJobRepo)(nil)

func (r *memJobRepo) Create(_ context.Context, j *entity.PublishJob) error {
	cp := *j
	r.st.jobs = append(r.st.jobs, &cp)
	return nil
}

func (r *memJobRepo) RecentBySite(context.Context, string, int) ([]repository.PublishJobSummary, error) {
	return nil, nil
}

type memStatsRepo struct{}

var _ repository.StatsRepository = (*memStatsRepo)(nil)

func (r *memStatsRepo) Dashboard(context.Context) (*repository.DashboardStats, error) {
	return &repository.DashboardStats{}, nil
}
func (r *memStatsRepo) SignupsByDay(context.Context, int) ([]repository.DailySignups, error) {
	return nil, nil
}
func (r *memStatsRepo) SiteCreationsByDay(context.Context, int) ([]repository.DailySiteCreations, error) {
	return nil, nil
}
func (r *memStatsRepo) PublishesByDay(context.Context, int) ([]repository.DailyPublishes, error) {
	return nil, nil
}

type memTx struct{ st *memStore }

func (t *memTx) Run(_ context.Context, fn func(
	sites repository.SiteRepository,
	members repository.MembershipRepository,
	pages repository.PageRepository,
	jobs repository.PublishJobRepository,
) error) error {
	return fn(&memSiteRepo{t.st}, &memMembershipRepo{t.st}, &memPageRepo{t.st}, &memJobRepo{t.st})
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test con el stack completo
// ──────────────────────────────────────────────────────────────────────────────

const (
	e2eAdminEmail    = "admin@example.com"
	e2eAdminPassword = "super-secreto"
)

func buildFullApp() (*fiber.App, *memStore) {
	st := newMemStore()
	authUC := auth.NewAuthUseCase(&memUserRepo{st}, &memSiteRepo{st}, auth.JWTConfig{
		Secret: testUserSecret, ExpDays: 7, Issuer: testIssuer,
	})
	siteUC := usecase.NewSiteUseCase(&memSiteRepo{st}, &memTx{st})
	adminUC := admin.NewAdminUseCase(
		&memUserRepo{st}, &memSiteRepo{st}, &memMembershipRepo{st},
		&memPageRepo{st}, &memJobRepo{st}, &memStatsRepo{}, &memTx{st},
		admin.Credentials{Email: e2eAdminEmail, Password: e2eAdminPassword},
		admin.JWTConfig{Secret: testAdminSecret, ExpDays: 7, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		SiteUC:         siteUC,
		AdminUC:        adminUC,
		UserJWTSecret:  testUserSecret,
		AdminJWTSecret: testAdminSecret,
	})
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "secreto1", "name": "Ana",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo auth
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_SignupLoginMe(t *testing.T) {
	app, _ := buildFullApp()

	signup(t, app, "ana@example.com")

	// Email duplicado
	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "ana@example.com", "password": "secreto1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", decodeBody(t, resp)["error"])

	// Login correcto
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "secreto1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tok, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, tok)

	// Login incorrecto
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "malo",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["error"])

	// Perfil propio
	resp = doJSON(t, app, http.MethodGet, "/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", me["email"])
}

func TestE2E_SignupValidacion(t *testing.T) {
	app, _ := buildFullApp()

	resp := doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "no-es-email", "password": "secreto1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email format", decodeBody(t, resp)["error"])

	resp = doJSON(t, app, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "ana@example.com", "password": "corta",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo sitios
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_CrearSitio_CuotaFree(t *testing.T) {
	app, st := buildFullApp()
	tok := signup(t, app, "ana@example.com")

	// Sin token → 401
	resp := doJSON(t, app, http.MethodPost, "/sites/", "", map[string]string{
		"name": "Mi Sitio", "subdomain": "misitio",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token provided", decodeBody(t, resp)["error"])

	// Primer sitio free → 201 con cuotas por defecto
	resp = doJSON(t, app, http.MethodPost, "/sites/", tok, map[string]string{
		"name": "Mi Sitio", "subdomain": "misitio",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	site := decodeBody(t, resp)["site"].(map[string]any)
	assert.Equal(t, "free", site["plan"])
	assert.Equal(t, float64(10), site["quota_pages"])
	require.Len(t, st.pages, 1, "la home draft se crea con el sitio")

	// Segundo sitio free → límite del plan
	resp = doJSON(t, app, http.MethodPost, "/sites/", tok, map[string]string{
		"name": "Otro", "subdomain": "otro",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Site limit reached for free plan", decodeBody(t, resp)["error"])
}

func TestE2E_CrearSitio_SubdominioInvalido(t *testing.T) {
	app, _ := buildFullApp()
	tok := signup(t, app, "ana@example.com")

	resp := doJSON(t, app, http.MethodPost, "/sites/", tok, map[string]string{
		"name": "Mi Sitio", "subdomain": "Mi_Sitio!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid subdomain format", decodeBody(t, resp)["error"])
}

func TestE2E_CrearSitio_SubdominioTomado(t *testing.T) {
	app, _ := buildFullApp()
	tokA := signup(t, app, "ana@example.com")
	tokB := signup(t, app, "beto@example.com")

	resp := doJSON(t, app, http.MethodPost, "/sites/", tokA, map[string]string{
		"name": "A", "subdomain": "tomado",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/sites/", tokB, map[string]string{
		"name": "B", "subdomain": "tomado",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Subdomain already taken", decodeBody(t, resp)["error"])
}

func TestE2E_SitioAjeno_Respond404(t *testing.T) {
	app, _ := buildFullApp()
	tokA := signup(t, app, "ana@example.com")
	tokB := signup(t, app, "beto@example.com")

	resp := doJSON(t, app, http.MethodPost, "/sites/", tokA, map[string]string{
		"name": "A", "subdomain": "de-ana",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	siteID := decodeBody(t, resp)["site"].(map[string]any)["id"].(string)

	resp = doJSON(t, app, http.MethodGet, "/sites/"+siteID, tokB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Site not found or access denied", decodeBody(t, resp)["error"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo admin
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_AdminLoginYDominiosSeparados(t *testing.T) {
	app, _ := buildFullApp()

	// Login admin incorrecto
	resp := doJSON(t, app, http.MethodPost, "/admin/login", "", map[string]string{
		"email": e2eAdminEmail, "password": "malo",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid admin credentials", decodeBody(t, resp)["error"])

	// Login admin correcto
	resp = doJSON(t, app, http.MethodPost, "/admin/login", "", map[string]string{
		"email": e2eAdminEmail, "password": e2eAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminTok, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, adminTok)

	// Dashboard con token admin → 200
	resp = doJSON(t, app, http.MethodGet, "/admin/dashboard", adminTok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Un token de usuario NO entra a rutas admin
	userTok := signup(t, app, "ana@example.com")
	resp = doJSON(t, app, http.MethodGet, "/admin/dashboard", userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Y el token admin tampoco entra a rutas de usuario
	resp = doJSON(t, app, http.MethodGet, "/sites/", adminTok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
