// Package tasks owns the in-memory task list and keeps it in step with the
// persistent store. Every mutation is persist-then-commit: the new list is
// written first and only replaces the in-memory list once the write has
// succeeded.
package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

const (
	MaxTitleLen       = model.MaxTitleLen
	MaxDescriptionLen = model.MaxDescriptionLen
)

// Validation and lookup errors. Persistence failures are returned wrapped
// as they come from the store.
var (
	ErrEmptyTitle         = errors.New("task title is required")
	ErrTitleTooLong       = fmt.Errorf("task title must be at most %d characters", MaxTitleLen)
	ErrDescriptionTooLong = fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
	ErrTaskNotFound       = errors.New("task not found")
)

// Manager holds the task list for one store.
type Manager struct {
	store  store.Store
	tasks  []model.Task
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides the task ID source.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New loads the current task list from s.
func New(s store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		now:    time.Now,
		newID:  NewID,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	m.tasks = s.Load().Tasks
	return m
}

// NewID returns a UUIDv7: a millisecond timestamp followed by random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add creates an open task and puts it at the front of the list.
func (m *Manager) Add(title, description string, priority model.Priority) (model.Task, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	description, err = cleanDescription(description)
	if err != nil {
		return model.Task{}, err
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, string(priority))
	}

	now := m.now().UTC()
	t := model.Task{
		ID:          m.newID(),
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := make([]model.Task, 0, len(m.tasks)+1)
	next = append(next, t)
	next = append(next, m.tasks...)
	if err := m.commit(next); err != nil {
		return model.Task{}, err
	}
	m.logger.Debug("Task added", slog.String("id", t.ID), slog.String("priority", t.Priority.String()))
	return t, nil
}

// Update applies patch to the task with the given id and refreshes its
// UpdatedAt. An unknown id matches nothing; the unchanged list is still
// persisted and the call succeeds.
func (m *Manager) Update(id string, patch model.TaskPatch) error {
	patch, err := cleanPatch(patch)
	if err != nil {
		return err
	}

	next := make([]model.Task, len(m.tasks))
	for i, t := range m.tasks {
		if t.ID == id {
			t = patch.Apply(t)
			t.UpdatedAt = m.touch(t.UpdatedAt)
		}
		next[i] = t
	}
	if err := m.commit(next); err != nil {
		return err
	}
	m.logger.Debug("Task updated", slog.String("id", id))
	return nil
}

// Delete removes the task with the given id. Deleting an unknown id succeeds.
func (m *Manager) Delete(id string) error {
	next := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if err := m.commit(next); err != nil {
		return err
	}
	m.logger.Debug("Task deleted", slog.String("id", id))
	return nil
}

// ToggleCompletion flips the completion flag. Unlike Update it fails with
// ErrTaskNotFound, without persisting, when id is unknown.
func (m *Manager) ToggleCompletion(id string) error {
	t, ok := m.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	done := !t.IsCompleted
	return m.Update(id, model.TaskPatch{IsCompleted: &done})
}

// Get looks a task up by id.
func (m *Manager) Get(id string) (model.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Tasks returns a copy of every task in stored order.
func (m *Manager) Tasks() []model.Task {
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Active returns the open tasks.
func (m *Manager) Active() []model.Task {
	return m.where(func(t model.Task) bool { return !t.IsCompleted })
}

// Completed returns the finished tasks.
func (m *Manager) Completed() []model.Task {
	return m.where(func(t model.Task) bool { return t.IsCompleted })
}

func (m *Manager) where(keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// commit persists next and, only if that worked, makes it the current list.
func (m *Manager) commit(next []model.Task) error {
	if err := store.PutTasks(m.store, next); err != nil {
		return err
	}
	m.tasks = next
	return nil
}

// touch returns the new UpdatedAt, always later than prev.
func (m *Manager) touch(prev time.Time) time.Time {
	now := m.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func cleanTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", ErrEmptyTitle
	case utf8.RuneCountInString(s) > MaxTitleLen:
		return "", ErrTitleTooLong
	}
	return s, nil
}

func cleanDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}

func cleanPatch(p model.TaskPatch) (model.TaskPatch, error) {
	if p.Title != nil {
		title, err := cleanTitle(*p.Title)
		if err != nil {
			return p, err
		}
		p.Title = &title
	}
	if p.Description != nil {
		desc, err := cleanDescription(*p.Description)
		if err != nil {
			return p, err
		}
		p.Description = &desc
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return p, fmt.Errorf("%w: %q", model.ErrInvalidPriority, string(*p.Priority))
	}
	return p, nil
}
