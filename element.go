package alias

import (
	"github.com/irtools/alias/internal/queue"
	"github.com/irtools/alias/internal/sets"
)

// eid addresses an element in the tracker's arena. Ids are stable for the
// lifetime of the tracker.
type eid int

// element is a vertex in the points-to graph. It has a 1:1 relationship
// with at most one value at a time.
type element[V comparable] struct {
	value V

	// All elements this one may point to. Several targets are possible due
	// to control flow and compound operations.
	pointsTo sets.Set[eid]
	// Backreference to elements that point to this one. Maintained in
	// lockstep with pointsTo by the single edge-insertion path.
	pointedFrom sets.Set[eid]

	// Memoized result of memoryLocations, valid iff cachedAt matches the
	// tracker's current edge generation.
	cachedLocs sets.Set[eid]
	cachedAt   uint64
}

type direction int

const (
	dirPointsTo direction = iota
	dirPointedFrom
	// Follow both edge directions. The closure obtained from this is the
	// whole alias set of a value.
	dirBoth
)

// bfs does a breadth-first search over the graph, starting at start and
// traversing in direction dir. fn runs on every visited element, start
// included, each at most once.
//
// If shortCircuit is set the search stops and returns true as soon as fn
// holds; otherwise it runs to completion and returns whether fn ever held.
func (t *Tracker[V, I]) bfs(start eid, dir direction, shortCircuit bool, fn func(eid) bool) bool {
	var worklist queue.Queue[eid]
	worklist.Push(start)
	visited := sets.Of(start)

	held := false
	for !worklist.Empty() {
		id := worklist.Pop()
		if fn(id) {
			if shortCircuit {
				return true
			}
			held = true
		}

		el := t.elements[id]
		if dir == dirPointsTo || dir == dirBoth {
			t.expand(el.pointsTo, visited, &worklist)
		}
		if dir == dirPointedFrom || dir == dirBoth {
			t.expand(el.pointedFrom, visited, &worklist)
		}
	}
	return held
}

func (t *Tracker[V, I]) expand(next sets.Set[eid], visited sets.Set[eid], worklist *queue.Queue[eid]) {
	for id := range next {
		if !visited.Has(id) {
			visited.Add(id)
			worklist.Push(id)
		}
	}
}

// memoryLocations returns the concrete storage locations id may denote: the
// elements with no outgoing edges reachable over pointsTo edges. An element
// with outgoing edges is an alias of its targets, not a location in its own
// right, so only the sinks of the closure count.
//
// The result is memoized per element and rebuilt from scratch on the first
// query after any edge insertion. Callers must not modify the returned set.
func (t *Tracker[V, I]) memoryLocations(id eid) sets.Set[eid] {
	el := t.elements[id]
	if el.cachedLocs != nil && el.cachedAt == t.generation {
		return el.cachedLocs
	}

	locs := sets.Make[eid](1)
	t.bfs(id, dirPointsTo, false, func(x eid) bool {
		if t.elements[x].pointsTo.Len() == 0 {
			locs.Add(x)
			return true
		}
		return false
	})

	el.cachedLocs = locs
	el.cachedAt = t.generation
	return locs
}
