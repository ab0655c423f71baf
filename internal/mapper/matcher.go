// Package mapper resolves requested canonical metric names to concrete
// spreadsheet headers. Matching is deterministic and tiered: exact alias
// match first, then substring containment, then prefix overlap.
package mapper

import (
	"strings"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/alias"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// scopeColumns lists the header candidates tried, in order, when locating
// the column that identifies a scope.
var scopeColumns = map[model.Scope][]string{
	model.ScopeShop:     {"shop", "store", "store_id", "shop_id", "location", "site"},
	model.ScopeDistrict: {"district", "dm", "district_name", "district_id"},
	model.ScopeRegion:   {"region", "region_name", "zone", "market"},
}

// Matcher resolves canonical names against an upload's column list using the
// alias table. The alias manager is injected so tests can run without I/O.
type Matcher struct {
	aliases *alias.Manager
}

// New creates a Matcher backed by the given alias manager.
func New(aliases *alias.Manager) *Matcher {
	return &Matcher{aliases: aliases}
}

// NormalizeKey lowercases and strips every non-alphanumeric character, so
// "Big 4 %" and "big4" compare equal.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchColumn resolves target (a canonical key or label) to one of the
// available columns, or "" when nothing matches. First hit wins within each
// tier, tiers run in order: exact, containment, prefix.
func (m *Matcher) MatchColumn(target string, columns []string) string {
	candidates := m.candidateSet(target)
	if len(candidates) == 0 {
		return ""
	}

	// Exact pass.
	for _, col := range columns {
		nc := NormalizeKey(col)
		if nc == "" {
			continue
		}
		for _, candidate := range candidates {
			if nc == candidate {
				return col
			}
		}
	}

	// Containment pass, either direction.
	for _, col := range columns {
		nc := NormalizeKey(col)
		if nc == "" {
			continue
		}
		for _, candidate := range candidates {
			if strings.Contains(nc, candidate) || strings.Contains(candidate, nc) {
				return col
			}
		}
	}

	// Prefix pass, either direction.
	for _, col := range columns {
		nc := NormalizeKey(col)
		if nc == "" {
			continue
		}
		for _, candidate := range candidates {
			if strings.HasPrefix(nc, candidate) || strings.HasPrefix(candidate, nc) {
				return col
			}
		}
	}

	return ""
}

// candidateSet builds the normalized set of the target plus its aliases,
// preserving order and dropping duplicates and empties.
func (m *Matcher) candidateSet(target string) []string {
	raw := []string{target}
	if m.aliases != nil {
		raw = append(raw, m.aliases.AliasesFor(target)...)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, candidate := range raw {
		n := NormalizeKey(candidate)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// FindScopeColumn locates the column identifying the given scope. The fixed
// candidate list runs through MatchColumn first; if none hit, any column
// whose normalized form contains the scope name wins.
func (m *Matcher) FindScopeColumn(columns []string, scope model.Scope) string {
	for _, candidate := range scopeColumns[scope] {
		if match := m.MatchColumn(candidate, columns); match != "" {
			return match
		}
	}
	for _, col := range columns {
		if strings.Contains(NormalizeKey(col), string(scope)) {
			return col
		}
	}
	return ""
}

// AutoGuess builds a ColumnMapping for the selected metric keys plus the
// special shop/district/date keys. Unresolvable keys are simply absent.
func (m *Matcher) AutoGuess(columns []string, selectedKeys []string) model.ColumnMapping {
	mapping := make(model.ColumnMapping)

	if col := m.FindScopeColumn(columns, model.ScopeShop); col != "" {
		mapping[model.KeyShopNumber] = col
	}
	if col := m.FindScopeColumn(columns, model.ScopeDistrict); col != "" {
		mapping[model.KeyDistrictName] = col
	}
	if col := m.MatchColumn("date", columns); col != "" {
		mapping[model.KeyDate] = col
	}

	for _, key := range selectedKeys {
		if col := m.MatchColumn(key, columns); col != "" {
			mapping[key] = col
			continue
		}
		// Retry with the display label; headers often spell it out.
		if metric, ok := model.MetricByKey(key); ok {
			if col := m.MatchColumn(metric.Label, columns); col != "" {
				mapping[key] = col
			}
		}
	}

	return mapping
}
