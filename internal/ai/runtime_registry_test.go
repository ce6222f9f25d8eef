package ai

import (
	"strings"
	"testing"
)

func TestBuiltinRuntimesRegistered(t *testing.T) {
	want := []string{ProviderGemini, ProviderOllama, ProviderOpenRouter}
	got := Providers()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("providers = %v, want %v", got, want)
	}
	for _, name := range want {
		rt, ok := GetRuntime(name, RuntimeConfig{APIKey: "k"})
		if !ok || rt == nil {
			t.Fatalf("runtime %s not available", name)
		}
	}
	if _, ok := GetRuntime("nope", RuntimeConfig{}); ok {
		t.Fatalf("unexpected runtime for unknown provider")
	}
}

func TestCheckContext(t *testing.T) {
	if err := CheckContext("phi3:mini-4k-instruct", 4000, 200); err == nil {
		t.Fatalf("expected overflow error")
	}
	if err := CheckContext("gemini-2.5-flash", 4000, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckContext("unknown/model", 1<<30, 0); err != nil {
		t.Fatalf("unknown models should pass: %v", err)
	}
	for _, p := range []string{ProviderGemini, ProviderOpenRouter, ProviderOllama} {
		if _, ok := LookupModel(DefaultModel(p)); !ok {
			t.Fatalf("default model for %s is not in the catalog", p)
		}
	}
}

func TestCatalogOrder(t *testing.T) {
	cat := Catalog()
	if len(cat) == 0 {
		t.Fatalf("empty catalog")
	}
	for i := 1; i < len(cat); i++ {
		a, b := cat[i-1], cat[i]
		if a.Provider > b.Provider || (a.Provider == b.Provider && a.Name >= b.Name) {
			t.Fatalf("catalog not sorted at %d: %v then %v", i, a, b)
		}
	}
}
