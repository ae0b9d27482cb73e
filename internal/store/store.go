// Package store defines the persistence boundary for tada. All durable
// state lives in one AppData blob that is always written whole.
package store

import (
	"fmt"
	"time"

	"github.com/idilsaglam/tada/internal/model"
)

// Store reads and writes the AppData blob.
//
// Load never fails: a missing blob is seeded with Defaults and a blob that
// cannot be decoded is replaced in memory (but not on disk) by Defaults.
// Save reports any write failure through its error; a nil error is the
// only success signal.
type Store interface {
	Load() model.AppData
	Save(model.AppData) error
}

// PutTasks replaces the task list in the stored blob, keeping the session.
func PutTasks(s Store, tasks []model.Task) error {
	data := s.Load()
	data.Tasks = tasks
	if err := s.Save(data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// PutSession replaces the session record in the stored blob, keeping tasks.
func PutSession(s Store, sess model.Session) error {
	data := s.Load()
	data.User = sess
	if err := s.Save(data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Sample task IDs used by Defaults.
const (
	SampleTutorialID = "sample-1"
	SampleSetupID    = "sample-2"
	SampleDocsID     = "sample-3"
)

// Defaults returns the seed data written on first run: two active tasks,
// one completed task created a day earlier, and no session.
func Defaults(now time.Time) model.AppData {
	now = now.UTC()
	return model.AppData{
		Tasks: []model.Task{
			{
				ID:          SampleTutorialID,
				Title:       "Complete the tada tutorial",
				Description: "Go through the getting started guide and get familiar with the commands",
				Priority:    model.PriorityHigh,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			{
				ID:          SampleSetupID,
				Title:       "Set up development environment",
				Description: "Install the necessary tools and configure your workspace",
				Priority:    model.PriorityMedium,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			{
				ID:          SampleDocsID,
				Title:       "Review documentation",
				Description: "Read through the documentation to understand best practices",
				Priority:    model.PriorityLow,
				IsCompleted: true,
				CreatedAt:   now.Add(-24 * time.Hour),
				UpdatedAt:   now,
			},
		},
	}
}

// IsSampleSet reports whether tasks are exactly the untouched seed tasks,
// in any order.
func IsSampleSet(tasks []model.Task) bool {
	if len(tasks) != 3 {
		return false
	}
	// id -> expected completion flag
	want := map[string]bool{SampleTutorialID: false, SampleSetupID: false, SampleDocsID: true}
	for _, t := range tasks {
		completed, ok := want[t.ID]
		if !ok || t.IsCompleted != completed {
			return false
		}
		delete(want, t.ID)
	}
	return len(want) == 0
}
