package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits, counted in runes after trimming.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

// Priority orders tasks; the zero value is not a valid priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ErrInvalidPriority is returned for anything other than low, medium or high.
var ErrInvalidPriority = errors.New("invalid priority")

// Priorities lists every priority from lowest to highest rank.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts the lowercase names, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Rank returns 3 for high, 2 for medium, 1 for low and 0 otherwise.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

func (p Priority) String() string { return string(p) }

// UnmarshalText rejects unknown priorities so a hand-edited data file
// cannot smuggle one into memory.
func (p *Priority) UnmarshalText(b []byte) error {
	v := Priority(b)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(b))
	}
	*p = v
	return nil
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, string(p))
	}
	return []byte(p), nil
}

// Task is the domain model for a tracked unit of work.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch carries the fields an update replaces. Nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	IsCompleted *bool
}

// Apply returns t with the patch's non-nil fields replaced.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	return t
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.IsCompleted == nil
}

// Validate checks the invariants every stored task holds.
func (t Task) Validate() error {
	title := strings.TrimSpace(t.Title)
	switch {
	case t.ID == "":
		return errors.New("missing id")
	case title == "":
		return errors.New("empty title")
	case utf8.RuneCountInString(title) > MaxTitleLen:
		return fmt.Errorf("title longer than %d characters", MaxTitleLen)
	case utf8.RuneCountInString(strings.TrimSpace(t.Description)) > MaxDescriptionLen:
		return fmt.Errorf("description longer than %d characters", MaxDescriptionLen)
	case !t.Priority.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(t.Priority))
	case t.UpdatedAt.Before(t.CreatedAt):
		return errors.New("updatedAt before createdAt")
	}
	return nil
}
