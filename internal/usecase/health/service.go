package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog cannot answer searches.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Recipes int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogChecker
	storage DBPinger
	images  ImageDirChecker
}

// New creates a Service. storage and images can be nil.
func New(catalog CatalogChecker, storage DBPinger, images ImageDirChecker) *Service {
	return &Service{catalog: catalog, storage: storage, images: images}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	catalogOK := s.catalog.Ping(ctx) == nil
	checks["catalog"] = result(catalogOK)

	if s.storage != nil {
		checks["storage"] = result(s.storage.Ping(ctx) == nil)
	}

	if s.images != nil {
		checks["images"] = result(s.images.DirExists())
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if !catalogOK {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks, Recipes: s.catalog.Len()}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
