package entity

// Planes disponibles para un Site.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// PlanQuota cuotas de recursos por defecto de un plan.
type PlanQuota struct {
	Pages    int
	AssetsMB int
}

// siteLimits máximo de sitios que un usuario puede poseer por plan.
// enterprise=999 funciona como "sin límite" en la práctica.
var siteLimits = map[string]int{
	PlanFree:       1,
	PlanPro:        5,
	PlanEnterprise: 999,
}

// defaultQuotas cuotas por defecto asignadas al crear un sitio o al cambiar de plan
// (salvo override explícito del admin).
var defaultQuotas = map[string]PlanQuota{
	PlanFree:       {Pages: 10, AssetsMB: 100},
	PlanPro:        {Pages: 100, AssetsMB: 1000},
	PlanEnterprise: {Pages: 1000, AssetsMB: 10000},
}

// IsValidPlan indica si s es un plan conocido.
func IsValidPlan(s string) bool {
	_, ok := siteLimits[s]
	return ok
}

// SiteLimit devuelve el máximo de sitios que permite el plan.
func SiteLimit(plan string) int {
	if limit, ok := siteLimits[plan]; ok {
		return limit
	}
	return 0
}

// DefaultQuota devuelve las cuotas de recursos por defecto del plan.
func DefaultQuota(plan string) PlanQuota {
	return defaultQuotas[plan]
}
