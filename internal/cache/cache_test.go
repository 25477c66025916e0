package cache

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/funsel/internal/builtins"
	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/dispatch"
	"github.com/funvibe/funsel/internal/predicate"
)

func TestGetPut(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, err := s.GetSelection("classify", "int"); err != nil || ok {
		t.Fatalf("empty store should miss, got %v, %v", ok, err)
	}

	if err := s.PutSelection("classify", "int", "classify.integral"); err != nil {
		t.Fatal(err)
	}
	label, ok, err := s.GetSelection("classify", "int")
	if err != nil || !ok {
		t.Fatalf("GetSelection: %v, %v", ok, err)
	}
	if label != "classify.integral" {
		t.Errorf("label = %q", label)
	}

	// Replacement is idempotent.
	if err := s.PutSelection("classify", "int", "classify.integral"); err != nil {
		t.Fatal(err)
	}

	if err := s.Purge(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.GetSelection("classify", "int"); ok {
		t.Errorf("purged store should miss")
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selections.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PutSelection("serialize", "app(Vector,int)", "serialize.fallback"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	label, ok, err := s2.GetSelection("serialize", "app(Vector,int)")
	if err != nil || !ok || label != "serialize.fallback" {
		t.Errorf("reopened store = %q, %v, %v", label, ok, err)
	}
}

// Resolving through a persistent store must reproduce the in-memory
// selections, and a second resolver over the same store must agree.
func TestResolverIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selections.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	r := dispatch.NewResolver(builtins.Table(), predicate.NewEnv(builtins.Universe())).WithStore(s)
	first := make(map[string]string)
	for _, typ := range builtins.Domain() {
		sel, err := r.Resolve(config.ClassifyOpName, typ)
		if err != nil {
			t.Fatalf("classify(%s): %v", typ, err)
		}
		first[typ.Key()] = sel.Label
	}

	r2 := dispatch.NewResolver(builtins.Table(), predicate.NewEnv(builtins.Universe())).WithStore(s)
	for _, typ := range builtins.Domain() {
		sel, err := r2.Resolve(config.ClassifyOpName, typ)
		if err != nil {
			t.Fatalf("second resolver classify(%s): %v", typ, err)
		}
		if sel.Label != first[typ.Key()] {
			t.Errorf("classify(%s) differs across stores: %s vs %s", typ, first[typ.Key()], sel.Label)
		}
	}
}
