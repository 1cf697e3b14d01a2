package modkit

import (
	"net/http"
	"testing"

	"payscope/internal/platform/config"
	"payscope/internal/platform/store"
)

type fakePorts struct{ N int }

func TestBuild(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	b := Build(
		WithName("dashboard"),
		WithPrefix("/dashboard"),
		WithMiddlewares(mw),
		WithMiddlewares(mw),
		WithPorts(fakePorts{N: 3}),
		WithName("dash"),
	)
	if b.Name != "dash" || b.Prefix != "/dashboard" || len(b.Mw) != 2 {
		t.Fatalf("built %+v", b)
	}
	p, ok := PortsAs[fakePorts](b)
	if !ok || p.N != 3 {
		t.Fatalf("ports %+v %v", p, ok)
	}
	if _, ok := PortsAs[string](Build()); ok {
		t.Fatal("empty build should have no ports")
	}
}

func TestFromStore(t *testing.T) {
	d := FromStore(config.New(), nil)
	if d.PG != nil || d.CH != nil {
		t.Fatal("nil store should leave stores unset")
	}
	d = FromStore(config.New(), &store.Store{})
	if d.PG != nil {
		t.Fatal("empty store should have nil PG")
	}
}
