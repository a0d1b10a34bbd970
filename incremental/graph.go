// Package incremental is the incremental computation core (component G):
// a DAG of memoised pure functions keyed by explicit argument strings, so
// a re-render after a small document edit recomputes only the nodes that
// edit actually touches (spec.md §4.9). incremental depends on cluster,
// disamb, eval, ir, locale, reference, and style.
package incremental

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Durability classifies how a node's cached value relates to its inputs
// (spec.md §4.9): HIGH for values that change only when the style or
// locale changes, MEDIUM for values tied to a single reference's fields,
// LOW for values tied to per-render context like cite position.
type Durability int

const (
	DurabilityLow Durability = iota
	DurabilityMedium
	DurabilityHigh
)

type entry struct {
	value      any
	durability Durability
}

// Graph is the memoised query DAG. Zero value is not usable; construct
// with NewGraph.
type Graph struct {
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]entry
	// deps maps a node key to the set of node keys that named it as a
	// dependency when they were computed, so Invalidate can walk forward
	// through the DAG rather than needing callers to invalidate every
	// downstream node by hand.
	deps map[string]map[string]struct{}
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		cache: make(map[string]entry),
		deps:  make(map[string]map[string]struct{}),
	}
}

// Compute returns key's cached value, computing it via fn the first time
// key is requested (or the first time after an Invalidate drops it).
// Concurrent callers racing on the same uncached key share one
// computation through singleflight rather than duplicating work —
// spec.md §4.9's "parallel derivations over a concurrent-safe memoised
// cache". dependsOn lists the node keys this computation read; when any
// of them is later invalidated, key is transitively invalidated too.
func Compute[T any](g *Graph, key string, durability Durability, dependsOn []string, fn func() (T, error)) (T, error) {
	if v, ok := g.lookup(key); ok {
		return v.(T), nil
	}

	v, err, _ := g.group.Do(key, func() (any, error) {
		if v, ok := g.lookup(key); ok {
			return v, nil
		}
		val, err := fn()
		if err != nil {
			return nil, err
		}
		g.store(key, val, durability, dependsOn)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (g *Graph) lookup(key string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.cache[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (g *Graph) store(key string, val any, durability Durability, dependsOn []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache[key] = entry{value: val, durability: durability}
	for _, dep := range dependsOn {
		if g.deps[dep] == nil {
			g.deps[dep] = make(map[string]struct{})
		}
		g.deps[dep][key] = struct{}{}
	}
}

// Invalidate drops key's cached value, if any, and transitively
// invalidates every node that depended on it.
func (g *Graph) Invalidate(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invalidateLocked(key)
}

func (g *Graph) invalidateLocked(key string) {
	_, hadValue := g.cache[key]
	dependents, hadDeps := g.deps[key]
	if !hadValue && !hadDeps {
		return
	}
	delete(g.cache, key)
	delete(g.deps, key)
	for dep := range dependents {
		g.invalidateLocked(dep)
	}
}

// Len reports how many nodes currently hold a cached value, for tests
// and diagnostics.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}
