package query

import (
	"slices"
	"strings"
)

// ContainsFold matches when needle is a case-insensitive substring of any of
// the given fields. An empty needle places no constraint.
func ContainsFold[T any](needle string, fields ...func(T) string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), needle) {
				return true
			}
		}
		return false
	}
}

// ContainsFoldEach matches when needle is a case-insensitive substring of
// one element of the list on its own.
func ContainsFoldEach[T any](needle string, list func(T) []string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		for _, v := range list(item) {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
}

// Equal matches a categorical field. An empty want places no constraint.
func Equal[T any, V ~string](want V, get func(T) V) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool { return get(item) == want }
}

// HasAny matches when the item's set contains want. An empty want places no
// constraint.
func HasAny[T any](want string, get func(T) []string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool { return slices.Contains(get(item), want) }
}

// Between matches an inclusive range. Either bound may be nil.
func Between[T any, N int | float64](lo, hi *N, get func(T) N) Predicate[T] {
	if lo == nil && hi == nil {
		return nil
	}
	return func(item T) bool {
		v := get(item)
		if lo != nil && v < *lo {
			return false
		}
		if hi != nil && v > *hi {
			return false
		}
		return true
	}
}

// Is matches a boolean flag. A nil want places no constraint; a pointer to
// false only matches items with the flag unset.
func Is[T any](want *bool, get func(T) bool) Predicate[T] {
	if want == nil {
		return nil
	}
	w := *want
	return func(item T) bool { return get(item) == w }
}
