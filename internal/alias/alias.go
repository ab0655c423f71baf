// Package alias maintains the table of known alternate header spellings for
// canonical metric keys. The table is advisory: it is seeded with defaults,
// grows when a user confirms a mapping ("teach"), and is persisted on a
// best-effort basis. Persistence failures never surface to callers.
package alias

import (
	"sort"
	"strings"
	"sync"
)

// Table maps a lowercased canonical key to its known header spellings,
// lowercased and trimmed, in insertion order.
type Table map[string][]string

// Clone deep-copies the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for key, values := range t {
		out[key] = append([]string(nil), values...)
	}
	return out
}

// Keys returns the table keys sorted for stable iteration.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// defaultTable seeds the spellings seen across KPI, recognition, and
// inventory exports.
var defaultTable = Table{
	"cars":       {"car count", "total cars", "transactions", "units", "cars sold", "units_sold", "volume", "oil changes"},
	"sales":      {"total sales", "net sales", "sales $", "sales_amt", "salesamount", "revenue", "gross sales"},
	"aro":        {"aro $", "avg repair order", "average repair order", "ticket", "avg ticket", "average ticket"},
	"big4":       {"big 4 %", "big4 percent", "big4pct", "big 4"},
	"premiumoil": {"premium oil %", "pmix premium", "premium mix"},
	"coolants":   {"coolant %", "coolants percent", "coolant exchanges"},
	"diff":       {"diff %", "differential %", "diffs"},
	"wipers":     {"wiper %", "wipers percent", "wiper pairs"},
	"air":        {"air %", "air filters", "engine air %"},
	"cabin":      {"cabin %", "cabin filters", "cabin air %"},
	"nps":        {"csi", "guest score", "guest experience", "csat", "survey score"},
	"discounts":  {"discount %", "markdowns", "discounts percent"},
}

// Defaults returns a copy of the built-in alias seed.
func Defaults() Table {
	return defaultTable.Clone()
}

// Store is the persistence capability injected into the Manager. Both
// methods may fail; the Manager degrades to in-memory state when they do.
type Store interface {
	LoadAliases() (Table, error)
	SaveAliases(Table) error
}

// Manager fronts the alias table with best-effort persistence. Reads merge
// persisted state over the defaults so a freshly taught alias is visible on
// the next match. Mutations are last-writer-wins.
type Manager struct {
	store Store

	mu      sync.RWMutex
	session Table // in-memory fallback when the store is failing
}

// NewManager wraps a store. A nil store means purely in-memory operation.
func NewManager(store Store) *Manager {
	return &Manager{store: store, session: Defaults()}
}

// Load returns the persisted table merged over defaults; persisted entries
// win on conflicting keys. Store failures fall back to the session table.
func (m *Manager) Load() Table {
	merged := Defaults()
	if m.store != nil {
		persisted, err := m.store.LoadAliases()
		if err == nil {
			for key, values := range persisted {
				merged[key] = append([]string(nil), values...)
			}
			m.mu.Lock()
			m.session = merged.Clone()
			m.mu.Unlock()
			return merged
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Clone()
}

// AliasesFor returns the known spellings for a canonical key.
func (m *Manager) AliasesFor(key string) []string {
	table := m.Load()
	return table[normalizeKey(key)]
}

// Add teaches a new spelling for key, de-duplicating, and persists the
// result synchronously. Persist failures are swallowed.
func (m *Manager) Add(key, aliasSpelling string) {
	key = normalizeKey(key)
	aliasSpelling = strings.ToLower(strings.TrimSpace(aliasSpelling))
	if key == "" || aliasSpelling == "" {
		return
	}

	table := m.Load()
	for _, existing := range table[key] {
		if existing == aliasSpelling {
			return
		}
	}
	table[key] = append(table[key], aliasSpelling)
	m.persist(table)
}

// Remove deletes a spelling for key and persists the result.
func (m *Manager) Remove(key, aliasSpelling string) {
	key = normalizeKey(key)
	aliasSpelling = strings.ToLower(strings.TrimSpace(aliasSpelling))

	table := m.Load()
	values := table[key]
	kept := values[:0]
	for _, existing := range values {
		if existing != aliasSpelling {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(values) {
		return
	}
	table[key] = kept
	m.persist(table)
}

func (m *Manager) persist(table Table) {
	m.mu.Lock()
	m.session = table.Clone()
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	// Best effort. A failed write degrades to session-local state.
	_ = m.store.SaveAliases(table)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// MemoryStore is an in-process Store used by tests and by the server before
// the database is ready.
type MemoryStore struct {
	mu    sync.Mutex
	table Table
	// FailLoads / FailSaves force errors for degradation tests.
	FailLoads bool
	FailSaves bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadAliases implements Store.
func (s *MemoryStore) LoadAliases() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoads {
		return nil, errStoreUnavailable
	}
	if s.table == nil {
		return Table{}, nil
	}
	return s.table.Clone(), nil
}

// SaveAliases implements Store.
func (s *MemoryStore) SaveAliases(table Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves {
		return errStoreUnavailable
	}
	s.table = table.Clone()
	return nil
}
