package recipedex

import (
	"context"

	healthuc "github.com/kailas-cloud/recipedex/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "ok", "degraded", "error"
	Checks  map[string]string // component → "ok"/"error"
	Recipes int
}

// Health checks the loaded catalog, the artifact store and the image directory.
// Before Load the catalog check fails.
func (c *Client) Health(ctx context.Context) HealthStatus {
	st := c.state.Load()
	if st == nil {
		checks := map[string]string{"catalog": string(healthuc.CheckError)}
		if err := c.store.Ping(ctx); err != nil {
			checks["storage"] = string(healthuc.CheckError)
		} else {
			checks["storage"] = string(healthuc.CheckOK)
		}
		return HealthStatus{Status: string(healthuc.Unhealthy), Checks: checks}
	}

	report := st.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Checks:  checks,
		Recipes: report.Recipes,
	}
}
