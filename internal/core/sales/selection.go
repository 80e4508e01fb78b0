package sales

import "sort"

// Selection is a filter over one dimension: either every value (All) or an
// explicit set (Subset). An empty Subset matches nothing.
type Selection[V comparable] struct {
	all    bool
	values map[V]struct{}
}

// All selects every value of the dimension.
func All[V comparable]() Selection[V] {
	return Selection[V]{all: true}
}

// Subset selects exactly the given values. Called with no values it returns
// the empty selection, which matches nothing.
func Subset[V comparable](values ...V) Selection[V] {
	set := make(map[V]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return Selection[V]{values: set}
}

// IsAll reports whether the selection is the All wildcard.
func (s Selection[V]) IsAll() bool { return s.all }

// IsEmpty reports whether the selection is an explicit empty subset.
func (s Selection[V]) IsEmpty() bool { return !s.all && len(s.values) == 0 }

// Len returns the subset size; it is -1 for All.
func (s Selection[V]) Len() int {
	if s.all {
		return -1
	}
	return len(s.values)
}

// Contains reports whether v passes the selection.
func (s Selection[V]) Contains(v V) bool {
	if s.all {
		return true
	}
	_, ok := s.values[v]
	return ok
}

// Values returns the subset members; nil for All.
func (s Selection[V]) Values() []V {
	if s.all {
		return nil
	}
	out := make([]V, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	return out
}

// SortedStrings returns the members of a string selection in ascending order.
func SortedStrings(s Selection[string]) []string {
	out := s.Values()
	sort.Strings(out)
	return out
}
