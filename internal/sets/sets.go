package sets

// Set is a map-backed set of comparable elements. The zero value is not
// usable; construct sets with Make or Of.
type Set[E comparable] map[E]struct{}

func Make[E comparable](sizeHint int) Set[E] {
	return make(Set[E], sizeHint)
}

func Of[E comparable](elems ...E) Set[E] {
	s := Make[E](len(elems))
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (s Set[E]) Add(e E) {
	s[e] = struct{}{}
}

func (s Set[E]) Has(e E) bool {
	_, found := s[e]
	return found
}

func (s Set[E]) Len() int {
	return len(s)
}

// AddAll inserts every element of o into s.
func (s Set[E]) AddAll(o Set[E]) {
	for e := range o {
		s.Add(e)
	}
}

// Intersects reports whether s and o share an element. Iterates over the
// smaller of the two sets.
func (s Set[E]) Intersects(o Set[E]) bool {
	if len(o) < len(s) {
		s, o = o, s
	}
	for e := range s {
		if o.Has(e) {
			return true
		}
	}
	return false
}

// Elems returns the elements of s in unspecified order.
func (s Set[E]) Elems() []E {
	elems := make([]E, 0, len(s))
	for e := range s {
		elems = append(elems, e)
	}
	return elems
}
