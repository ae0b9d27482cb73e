// Package testutil provides testing utilities.
package testutil

import (
	"errors"
	"time"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// ErrDiskFull is a canned persistence failure for error injection.
var ErrDiskFull = errors.New("disk full")

// FakeStore is an in-memory store.Store for testing.
type FakeStore struct {
	Data model.AppData

	// SaveErr, when set, makes every Save fail without touching Data.
	SaveErr error

	// Loads and Saves count calls; Saves includes failed attempts.
	Loads int
	Saves int
}

var _ store.Store = (*FakeStore)(nil)

// NewFakeStore creates a FakeStore holding data.
func NewFakeStore(data model.AppData) *FakeStore {
	return &FakeStore{Data: data.Clone()}
}

// NewSeededStore creates a FakeStore holding the default sample data.
func NewSeededStore(now time.Time) *FakeStore {
	return NewFakeStore(store.Defaults(now))
}

// Load implements store.Store.
func (f *FakeStore) Load() model.AppData {
	f.Loads++
	return f.Data.Clone()
}

// Save implements store.Store.
func (f *FakeStore) Save(data model.AppData) error {
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Data = data.Clone()
	return nil
}

// Clock is a manual clock. Each call to Now advances it by Step.
type Clock struct {
	T    time.Time
	Step time.Duration
}

// NewClock starts a clock at a fixed instant that ticks one second per read.
func NewClock() *Clock {
	return &Clock{T: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), Step: time.Second}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}
