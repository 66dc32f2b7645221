// Package alias implements the points-to structure that backs may-alias
// queries in an IR optimizer. It tracks the "A points to B" graph for all
// values, as well as wildcards and writes, and answers whether two operands
// may denote the same memory location and whether anything writes to a
// location an operand may denote.
//
// Answers are conservative: true means "possibly the same location", never a
// guarantee. False positives are safe for the consuming optimizer; false
// negatives are not.
package alias

import (
	"log"

	"github.com/irtools/alias/internal/sets"
)

func init() {
	log.SetFlags(log.Ltime | log.Lshortfile)
}

// Tracker records the points-to graph for the values of one IR unit.
// V identifies values and I instructions; both are opaque identities owned
// by the IR and compared by identity. The tracker lives for one analysis
// pass over one unit and is torn down as a whole.
//
// A Tracker is built by a single writer and then queried. It is not safe for
// concurrent use: even read-only queries may rebuild internal caches.
type Tracker[V, I comparable] struct {
	// Arena owning every element, addressed by eid. Elements are never
	// freed individually.
	elements []*element[V]
	// Current element for each registered value.
	index map[V]eid

	// Values with unknown provenance. Wildcards are tracked outside the
	// pointer graph and alias everything unconditionally.
	wildcards sets.Set[V]
	// Instructions observed writing to a wildcard value.
	wildcardWriters sets.Set[I]

	// Direct writes per instruction, without aliasing expansion.
	writeIndex map[I]sets.Set[V]
	numWrites  int

	// Bumped on every edge insertion. Per-element memory-location caches
	// are valid only for the generation they were built in.
	generation uint64

	// Union of memory locations touched by any registered write, rebuilt
	// on demand when stale.
	writtenLocs     sets.Set[eid]
	writeCacheStale bool
}

// New returns an empty tracker.
func New[V, I comparable]() *Tracker[V, I] {
	return &Tracker[V, I]{
		index:           make(map[V]eid),
		wildcards:       sets.Make[V](0),
		wildcardWriters: sets.Make[I](0),
		writeIndex:      make(map[I]sets.Set[V]),
		generation:      1,
		writeCacheStale: true,
	}
}

// Contains reports whether v currently has an element in the tracker.
func (t *Tracker[V, I]) Contains(v V) bool {
	_, found := t.index[v]
	return found
}

// MakeFreshValue gives v a new element with no edges, replacing any prior
// association. A superseded element stays in the arena so that elements
// still linked to it keep their alias history.
func (t *Tracker[V, I]) MakeFreshValue(v V) {
	t.makeElement(v)
}

// MakePointerTo records that v may point to the storage denoted by to,
// creating elements for either value as needed. Repeated calls accumulate
// targets: a value joined from several control-flow paths may point to the
// target of every path.
func (t *Tracker[V, I]) MakePointerTo(v, to V) {
	vid := t.elementOrFresh(v)
	tid := t.elementOrFresh(to)
	t.elements[vid].pointsTo.Add(tid)
	t.elements[tid].pointedFrom.Add(vid)

	// Reachability is non-local: one new edge can extend the closure of
	// any element, so every memoized closure goes stale at once.
	t.generation++
	t.writeCacheStale = true
}

// SetWildcard registers v as a wildcard: a value that may denote any
// location whatsoever. No graph element is created for it.
func (t *Tracker[V, I]) SetWildcard(v V) {
	t.wildcards.Add(v)
}

// IsWildcard reports whether v is registered as a wildcard.
func (t *Tracker[V, I]) IsWildcard(v V) bool {
	return t.wildcards.Has(v)
}

// RegisterWrite records that instruction n writes v directly. A write to a
// wildcard lands in the wildcard-writer set instead of the write index.
func (t *Tracker[V, I]) RegisterWrite(v V, n I) {
	t.numWrites++
	if t.IsWildcard(v) {
		t.wildcardWriters.Add(n)
		return
	}

	t.mustElement(v, "RegisterWrite")
	written, found := t.writeIndex[n]
	if !found {
		written = sets.Make[V](1)
		t.writeIndex[n] = written
	}
	written.Add(v)
	t.writeCacheStale = true
}

// WritesTo reports whether n writes v directly. It does not expand through
// aliases.
func (t *Tracker[V, I]) WritesTo(n I, v V) bool {
	if t.IsWildcard(v) {
		return t.wildcardWriters.Has(n)
	}
	written, found := t.writeIndex[n]
	return found && written.Has(v)
}

// WildcardWriters returns the set of instructions known to write through a
// wildcard value.
func (t *Tracker[V, I]) WildcardWriters() map[I]bool {
	writers := make(map[I]bool, t.wildcardWriters.Len())
	for n := range t.wildcardWriters {
		writers[n] = true
	}
	return writers
}

// NumWrites returns the number of writes registered so far.
func (t *Tracker[V, I]) NumWrites() int {
	return t.numWrites
}

func (t *Tracker[V, I]) makeElement(v V) eid {
	id := eid(len(t.elements))
	t.elements = append(t.elements, &element[V]{
		value:       v,
		pointsTo:    sets.Make[eid](1),
		pointedFrom: sets.Make[eid](1),
	})
	t.index[v] = id
	return id
}

func (t *Tracker[V, I]) elementOrFresh(v V) eid {
	if id, found := t.index[v]; found {
		return id
	}
	return t.makeElement(v)
}

// mustElement resolves v's element. Querying a value that was never
// registered is a logic error in the caller: failing fast beats silently
// answering "no alias" and miscompiling.
func (t *Tracker[V, I]) mustElement(v V, op string) eid {
	id, found := t.index[v]
	if !found {
		log.Panicf("%s: value %v is not tracked", op, v)
	}
	return id
}
