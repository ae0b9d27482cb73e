package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tasks"
)

// minPrefix is the shortest ID prefix or suffix accepted as a task reference.
const minPrefix = 4

var (
	errRefNotFound  = errors.New("no task matches")
	errRefAmbiguous = errors.New("ambiguous task reference")
)

// numbered returns every task in reference order: newest first. The
// numbers shown by `tada ls` are positions in this slice, 1-based.
func numbered(m *tasks.Manager) []model.Task {
	return tasks.View(m.Tasks(), tasks.FilterAll, tasks.SortCreated)
}

// resolveRef finds the task a reference names.
//
// Reference rules:
//  1. All digits -> 1-based number as printed by `tada ls`
//  2. Exact task ID
//  3. Unique ID prefix or suffix of at least minPrefix characters. Task
//     IDs are UUIDv7: the head is a timestamp shared by tasks created
//     around the same time, the tail is random, so a suffix such as the
//     last four characters is usually enough.
func resolveRef(m *tasks.Manager, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	all := numbered(m)

	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 1 || n > len(all) {
			return model.Task{}, fmt.Errorf("task number out of range: have %d, got %s", len(all), ref)
		}
		return all[n-1], nil
	}

	if t, ok := m.Get(ref); ok {
		return t, nil
	}
	if len(ref) < minPrefix {
		return model.Task{}, fmt.Errorf("%w: %q (ID prefixes and suffixes need %d+ characters)", errRefNotFound, ref, minPrefix)
	}

	var match []model.Task
	for _, t := range all {
		if strings.HasPrefix(t.ID, ref) || strings.HasSuffix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %q", errRefNotFound, ref)
	case 1:
		return match[0], nil
	}
	return model.Task{}, fmt.Errorf("%w: %q matches %d tasks", errRefAmbiguous, ref, len(match))
}

// numberOf returns the reference number of id, or 0.
func numberOf(all []model.Task, id string) int {
	for i, t := range all {
		if t.ID == id {
			return i + 1
		}
	}
	return 0
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
