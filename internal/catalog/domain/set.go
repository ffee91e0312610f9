package domain

import (
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

// Set is a sorted slice without duplicates. The empty set is nil so that
// two sets built from the same members compare equal with reflect.DeepEqual.
type Set[T constraints.Ordered] []T

func NewSet[T constraints.Ordered](items ...T) Set[T] {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[T]bool, len(items))
	elements := make([]T, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		elements = append(elements, it)
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i] < elements[j]
	})
	return elements
}

func (s Set[T]) Contains(v T) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}

func (s Set[T]) Len() int { return len(s) }

func (s Set[T]) Equal(other Set[T]) bool { return slices.Equal(s, other) }

// Toggle returns a new set with v added, or removed if it was present.
func (s Set[T]) Toggle(v T) Set[T] {
	if s.Contains(v) {
		out := make([]T, 0, len(s)-1)
		for _, it := range s {
			if it != v {
				out = append(out, it)
			}
		}
		return NewSet(out...)
	}
	return NewSet(append(slices.Clone(s), v)...)
}

func (s Set[T]) Union(other Set[T]) Set[T] {
	return NewSet(append(slices.Clone(s), other...)...)
}

// Intersect keeps the members of s that are also in other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	out := make([]T, 0, len(s))
	for _, it := range s {
		if other.Contains(it) {
			out = append(out, it)
		}
	}
	return NewSet(out...)
}

func (pts *Set[T]) UnmarshalJSON(data []byte) (err error) {
	var elements []T
	err = json.Unmarshal(data, &elements)
	if err != nil {
		return
	}
	*pts = NewSet(elements...)
	return
}

// MarshalJSON writes the empty set as [] rather than null.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(s))
}

// Join renders a string-like set as a comma-separated list.
func Join[T ~string](s Set[T]) string {
	parts := make([]string, len(s))
	for i, it := range s {
		parts[i] = string(it)
	}
	return strings.Join(parts, ",")
}
