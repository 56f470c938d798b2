package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCatalog struct {
	err error
	n   int
}

func (m *mockCatalog) Ping(_ context.Context) error { return m.err }
func (m *mockCatalog) Len() int                     { return m.n }

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockImages struct {
	exists bool
}

func (m *mockImages) DirExists() bool { return m.exists }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockCatalog{n: 42}, &mockDBPinger{}, &mockImages{exists: true})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"catalog", "storage", "images"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
	if r.Recipes != 42 {
		t.Errorf("expected 42 recipes, got %d", r.Recipes)
	}
}

func TestCheck_StorageError(t *testing.T) {
	svc := New(&mockCatalog{n: 1}, &mockDBPinger{err: errors.New("conn refused")}, &mockImages{exists: true})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["storage"] != CheckError {
		t.Errorf("expected storage %q, got %q", CheckError, r.Checks["storage"])
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
}

func TestCheck_MissingImageDir(t *testing.T) {
	svc := New(&mockCatalog{n: 1}, nil, &mockImages{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["images"] != CheckError {
		t.Error("expected images error")
	}
	if _, ok := r.Checks["storage"]; ok {
		t.Error("storage check should be absent when storage is nil")
	}
}

func TestCheck_EmptyCatalog(t *testing.T) {
	svc := New(&mockCatalog{err: errors.New("catalog is empty")}, &mockDBPinger{}, &mockImages{exists: true})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Error("expected catalog error")
	}
}

func TestCheck_CatalogOnly(t *testing.T) {
	svc := New(&mockCatalog{n: 3}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 1 {
		t.Errorf("expected only the catalog check, got %v", r.Checks)
	}
}
