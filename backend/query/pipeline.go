package query

import (
	"cmp"
	"slices"
)

// Predicate reports whether an item passes a filter. A nil Predicate places
// no constraint.
type Predicate[T any] func(T) bool

// Comparator orders two items like cmp.Compare.
type Comparator[T any] func(a, b T) int

// Filter keeps the items that pass every non-nil predicate. The result is a
// new slice in input order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, active) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

// And combines predicates; nil members are ignored. It returns nil when no
// member constrains anything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(item T) bool { return matchesAll(item, active) }
}

// Or matches when any non-nil predicate matches. Nil predicates are skipped;
// Or of nothing but nils is nil.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(item T) bool {
		for _, p := range active {
			if p(item) {
				return true
			}
		}
		return false
	}
}

// SortStable returns a sorted copy; items that compare equal keep their
// input order. A nil comparator returns the copy unsorted.
func SortStable[T any](items []T, compare Comparator[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	if compare != nil {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// By builds an ascending comparator from a key.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// Desc reverses a comparator.
func Desc[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int { return c(b, a) }
}

// Then uses the next comparator to break ties of the previous ones.
func Then[T any](cs ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, c := range cs {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// PageRequest is 1-indexed.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps the request into a usable range.
func (r PageRequest) Normalize(defaultSize, maxSize int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultSize
	}
	if maxSize > 0 && r.PageSize > maxSize {
		r.PageSize = maxSize
	}
	return r
}

// Page is a bounded slice of a result set plus the size of the whole set.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Paginate cuts one page out of items. A page past the end is empty, not an
// error. A request with PageSize < 1 returns everything.
func Paginate[T any](items []T, req PageRequest) Page[T] {
	total := len(items)
	if req.PageSize < 1 {
		return Page[T]{Items: append([]T{}, items...), TotalCount: total}
	}
	if req.Page < 1 {
		req.Page = 1
	}
	// compare page numbers before multiplying so a huge page cannot overflow
	if req.Page > TotalPages(total, req.PageSize) {
		return Page[T]{Items: []T{}, TotalCount: total}
	}
	start := (req.Page - 1) * req.PageSize
	end := min(start+req.PageSize, total)
	return Page[T]{Items: slices.Clone(items[start:end]), TotalCount: total}
}

// TotalPages is 0 for an empty result set.
func TotalPages(total, pageSize int) int {
	if total == 0 || pageSize < 1 {
		return 0
	}
	return (total-1)/pageSize + 1
}

// Query bundles the three pipeline stages.
type Query[T any] struct {
	Where []Predicate[T]
	Order Comparator[T]
	Page  PageRequest
}

// Run filters, then sorts, then paginates. TotalCount is the filtered count.
func (q Query[T]) Run(items []T) Page[T] {
	return Paginate(SortStable(Filter(items, q.Where...), q.Order), q.Page)
}
