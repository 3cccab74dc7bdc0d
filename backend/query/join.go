// Package query implements the join, filter, sort and paginate steps every
// presenter is built from. Nothing here caches; each call recomputes from the
// slices it is given.
package query

// MissingPolicy decides what a Lookup does when a foreign key does not
// resolve.
type MissingPolicy int

const (
	// DropMissing makes Get report ok=false so the caller drops the base record.
	DropMissing MissingPolicy = iota
	// UseDefault makes Get return the lookup's fallback record with ok=true.
	UseDefault
)

func (p MissingPolicy) String() string {
	switch p {
	case DropMissing:
		return "drop"
	case UseDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Lookup resolves foreign keys against one target collection.
type Lookup[V any] struct {
	index    map[string]V
	policy   MissingPolicy
	fallback V
}

// NewLookup indexes items by key. When two items share a key the first one
// wins, matching a linear scan. fallback is only used with UseDefault.
func NewLookup[V any](items []V, key func(V) string, policy MissingPolicy, fallback V) *Lookup[V] {
	index := make(map[string]V, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := index[k]; dup {
			continue
		}
		index[k] = item
	}
	return &Lookup[V]{index: index, policy: policy, fallback: fallback}
}

// Get resolves id according to the lookup's policy.
func (l *Lookup[V]) Get(id string) (V, bool) {
	if v, ok := l.index[id]; ok {
		return v, true
	}
	if l.policy == UseDefault {
		return l.fallback, true
	}
	var zero V
	return zero, false
}

// Has reports whether id resolves to a real record, ignoring the policy.
func (l *Lookup[V]) Has(id string) bool {
	_, ok := l.index[id]
	return ok
}

// GetAll resolves every id. Under DropMissing unresolved ids are skipped;
// under UseDefault they become the fallback.
func (l *Lookup[V]) GetAll(ids []string) []V {
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		if v, ok := l.Get(id); ok {
			out = append(out, v)
		}
	}
	return out
}

func (l *Lookup[V]) Policy() MissingPolicy { return l.policy }

// JoinAll maps every base record to a composite. Records for which build
// reports false are dropped; the rest keep their input order.
func JoinAll[B, C any](bases []B, build func(B) (C, bool)) []C {
	out := make([]C, 0, len(bases))
	for _, b := range bases {
		if c, ok := build(b); ok {
			out = append(out, c)
		}
	}
	return out
}
