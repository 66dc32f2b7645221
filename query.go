package alias

import "github.com/irtools/alias/internal/sets"

// MayAlias reports whether a and b may denote the same memory location.
// A wildcard may alias anything, including another wildcard. Both values
// must be tracked or flagged wildcard; passing anything else panics.
func (t *Tracker[V, I]) MayAlias(a, b V) bool {
	if t.IsWildcard(a) || t.IsWildcard(b) {
		return true
	}

	aLocs := t.memoryLocations(t.mustElement(a, "MayAlias"))
	bLocs := t.memoryLocations(t.mustElement(b, "MayAlias"))
	return aLocs.Intersects(bLocs)
}

// MayAliasSets reports whether any value in group a may alias any value in
// group b. Either group may contain duplicates; multiplicity adds no memory
// locations. Empty groups alias nothing. Values absent from the tracker
// contribute no memory locations rather than failing, so an unregistered
// value is silently treated as aliasing nothing.
func (t *Tracker[V, I]) MayAliasSets(a, b []V) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	// Union of memory locations over group a.
	aLocs := sets.Make[eid](len(a))
	seen := sets.Make[V](len(a))
	for _, v := range a {
		if t.IsWildcard(v) {
			return true
		}
		if seen.Has(v) {
			continue
		}
		seen.Add(v)

		if id, found := t.index[v]; found {
			aLocs.AddAll(t.memoryLocations(id))
		}
	}

	// If any of group b's memory locations overlap, the groups may alias.
	for _, v := range b {
		if t.IsWildcard(v) {
			return true
		}
		if id, found := t.index[v]; found {
			if t.memoryLocations(id).Intersects(aLocs) {
				return true
			}
		}
	}
	return false
}

// Aliases returns every other value whose element lies in the same weakly
// connected component as v's: the full set of values that may represent the
// same memory location. Two values that share a pointee are aliases of each
// other even without a direct edge between them, which is why connectivity
// is taken over both edge directions. Wildcard semantics are not consulted.
func (t *Tracker[V, I]) Aliases(v V) map[V]bool {
	start := t.mustElement(v, "Aliases")

	aliases := make(map[V]bool)
	t.bfs(start, dirBoth, false, func(id eid) bool {
		if w := t.elements[id].value; w != v {
			aliases[w] = true
		}
		return false
	})
	return aliases
}

// HasWriters reports whether any registered write could touch a location v
// may denote.
func (t *Tracker[V, I]) HasWriters(v V) bool {
	if t.IsWildcard(v) {
		// A wildcard may denote any location, so any write at all may
		// write to it.
		return t.numWrites > 0
	}
	if t.wildcardWriters.Len() > 0 {
		// A write through a wildcard could touch any location, v's
		// included.
		return true
	}

	id, found := t.index[v]
	if !found {
		return false
	}

	if t.writeCacheStale {
		t.rebuildWriteCache()
	}
	return t.writtenLocs.Intersects(t.memoryLocations(id))
}

func (t *Tracker[V, I]) rebuildWriteCache() {
	locs := sets.Make[eid](len(t.writeIndex))
	for _, written := range t.writeIndex {
		for v := range written {
			locs.AddAll(t.memoryLocations(t.mustElement(v, "rebuildWriteCache")))
		}
	}
	t.writtenLocs = locs
	t.writeCacheStale = false
}
