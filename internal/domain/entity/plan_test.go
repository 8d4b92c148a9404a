package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
)

func TestSiteLimit_PorPlan(t *testing.T) {
	assert.Equal(t, 1, entity.SiteLimit(entity.PlanFree))
	assert.Equal(t, 5, entity.SiteLimit(entity.PlanPro))
	assert.Equal(t, 999, entity.SiteLimit(entity.PlanEnterprise))
	assert.Equal(t, 0, entity.SiteLimit("desconocido"))
}

func TestDefaultQuota_PorPlan(t *testing.T) {
	assert.Equal(t, entity.PlanQuota{Pages: 10, AssetsMB: 100}, entity.DefaultQuota(entity.PlanFree))
	assert.Equal(t, entity.PlanQuota{Pages: 100, AssetsMB: 1000}, entity.DefaultQuota(entity.PlanPro))
	assert.Equal(t, entity.PlanQuota{Pages: 1000, AssetsMB: 10000}, entity.DefaultQuota(entity.PlanEnterprise))
}

func TestIsValidPlan(t *testing.T) {
	assert.True(t, entity.IsValidPlan(entity.PlanFree))
	assert.True(t, entity.IsValidPlan(entity.PlanPro))
	assert.True(t, entity.IsValidPlan(entity.PlanEnterprise))
	assert.False(t, entity.IsValidPlan(""))
	assert.False(t, entity.IsValidPlan("premium"))
}

func TestUser_IsActive(t *testing.T) {
	u := entity.User{Status: entity.UserStatusActive}
	assert.True(t, u.IsActive())
	u.Status = entity.UserStatusSuspended
	assert.False(t, u.IsActive())
}
