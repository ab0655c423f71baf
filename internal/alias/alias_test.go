package alias

import (
	"reflect"
	"testing"
)

func TestDefaultTableKeysAreNormalized(t *testing.T) {
	t.Parallel()

	// Every lookup path normalizes the key, so a seed stored under a
	// non-normalized key would be unreachable.
	for key := range defaultTable {
		if key != normalizeKey(key) {
			t.Errorf("seed key %q is not normalized (want %q)", key, normalizeKey(key))
		}
	}
}

func TestAliasesFor_CamelCaseCatalogKey(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	aliases := m.AliasesFor("premiumOil")
	found := false
	for _, a := range aliases {
		if a == "pmix premium" {
			found = true
		}
	}
	if !found {
		t.Fatalf("seeded spellings should resolve through the catalog key, got %v", aliases)
	}
}

func TestManager_LoadMergesPersistedOverDefaults(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.SaveAliases(Table{"sales": {"weird sales header"}}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := NewManager(store)
	table := m.Load()

	if got := table["sales"]; !reflect.DeepEqual(got, []string{"weird sales header"}) {
		t.Fatalf("persisted key should win over defaults, got %v", got)
	}
	if len(table["cars"]) == 0 {
		t.Fatalf("default keys should survive the merge")
	}
}

func TestManager_AddPersistsAndDeduplicates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	m := NewManager(store)

	m.Add("nps", "  Guest Delight Index ")
	m.Add("nps", "guest delight index")

	aliases := m.AliasesFor("nps")
	count := 0
	for _, a := range aliases {
		if a == "guest delight index" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one taught alias, got %v", aliases)
	}

	persisted, err := store.LoadAliases()
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	found := false
	for _, a := range persisted["nps"] {
		if a == "guest delight index" {
			found = true
		}
	}
	if !found {
		t.Fatalf("taught alias should be persisted synchronously")
	}
}

func TestManager_Remove(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStore())
	m.Add("cars", "lane count")
	m.Remove("cars", "lane count")

	for _, a := range m.AliasesFor("cars") {
		if a == "lane count" {
			t.Fatalf("removed alias still present")
		}
	}
}

func TestManager_StoreFailuresDegradeToSessionState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.FailLoads = true
	store.FailSaves = true

	m := NewManager(store)

	// Neither call may panic or surface an error.
	m.Add("sales", "register total")

	aliases := m.AliasesFor("sales")
	found := false
	for _, a := range aliases {
		if a == "register total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("taught alias should survive in session state, got %v", aliases)
	}
}

func TestManager_NilStoreIsInMemoryOnly(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	m.Add("big4", "core four")
	found := false
	for _, a := range m.AliasesFor("big4") {
		if a == "core four" {
			found = true
		}
	}
	if !found {
		t.Fatalf("nil-store manager should still teach in memory")
	}
}
