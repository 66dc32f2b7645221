package alias

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes a human-readable rendering of the graph to w: every element
// with its points-to targets, the wildcard set and the write index. Meant
// for debugging; the format is not stable.
func (t *Tracker[V, I]) Dump(w io.Writer) {
	fmt.Fprintln(w, "=== points-to graph ===")
	for id, el := range t.elements {
		tag := ""
		if t.index[el.value] != eid(id) {
			tag = " (superseded)"
		}

		if el.pointsTo.Len() == 0 {
			fmt.Fprintf(w, "%%%d %v%s\n", id, el.value, tag)
			continue
		}

		targets := el.pointsTo.Elems()
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
		names := make([]string, len(targets))
		for i, target := range targets {
			names[i] = fmt.Sprintf("%%%d", target)
		}
		fmt.Fprintf(w, "%%%d %v%s -> %s\n", id, el.value, tag, strings.Join(names, " "))
	}

	fmt.Fprintln(w, "=== wildcards ===")
	for _, v := range t.wildcards.Elems() {
		fmt.Fprintf(w, "%v\n", v)
	}

	fmt.Fprintf(w, "=== writes (%d registered) ===\n", t.numWrites)
	for n, written := range t.writeIndex {
		for v := range written {
			fmt.Fprintf(w, "%v writes %v\n", n, v)
		}
	}
	if t.wildcardWriters.Len() > 0 {
		fmt.Fprintf(w, "%d instruction(s) write through a wildcard\n", t.wildcardWriters.Len())
	}
}

func (t *Tracker[V, I]) String() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}
