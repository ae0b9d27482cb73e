package tasks

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// Filter restricts a view to one priority, or to none with FilterAll.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterLow    Filter = Filter(model.PriorityLow)
	FilterMedium Filter = Filter(model.PriorityMedium)
	FilterHigh   Filter = Filter(model.PriorityHigh)
)

var filters = []Filter{FilterAll, FilterHigh, FilterMedium, FilterLow}

// ParseFilter accepts all, low, medium or high. Empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FilterAll, nil
	}
	if !slices.Contains(filters, f) {
		return "", fmt.Errorf("unknown filter %q (want all, low, medium or high)", s)
	}
	return f, nil
}

// Match reports whether a task with priority p passes the filter.
func (f Filter) Match(p model.Priority) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return model.Priority(f) == p
}

// Next cycles all -> high -> medium -> low -> all.
func (f Filter) Next() Filter {
	i := slices.Index(filters, f)
	return filters[(i+1)%len(filters)]
}

// SortKey selects the ordering of a view. All orderings are descending.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
	SortPriority SortKey = "priority"
)

var sortKeys = []SortKey{SortCreated, SortUpdated, SortPriority}

// ParseSortKey accepts created, updated or priority. Empty means created.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortCreated, nil
	}
	if !slices.Contains(sortKeys, k) {
		return "", fmt.Errorf("unknown sort key %q (want created, updated or priority)", s)
	}
	return k, nil
}

// Next cycles created -> updated -> priority -> created.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortKeys, k)
	return sortKeys[(i+1)%len(sortKeys)]
}

// View filters tasks by priority and sorts the result, newest or highest
// first. Ties keep their input order. The input slice is not modified.
func View(tasks []model.Task, f Filter, key SortKey) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t.Priority) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, compareBy(key))
	return out
}

func compareBy(key SortKey) func(a, b model.Task) int {
	switch key {
	case SortPriority:
		return func(a, b model.Task) int { return cmp.Compare(b.Priority.Rank(), a.Priority.Rank()) }
	case SortUpdated:
		return func(a, b model.Task) int { return b.UpdatedAt.Compare(a.UpdatedAt) }
	default:
		return func(a, b model.Task) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
