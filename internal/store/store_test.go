package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/testutil"
)

func TestDefaults(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	d := store.Defaults(now)

	require.Len(t, d.Tasks, 3)
	var active, completed int
	for _, task := range d.Tasks {
		if task.IsCompleted {
			completed++
		} else {
			active++
		}
		assert.NotEmpty(t, task.ID)
		assert.True(t, task.Priority.Valid())
		assert.False(t, task.UpdatedAt.Before(task.CreatedAt))
	}
	assert.Equal(t, 2, active)
	assert.Equal(t, 1, completed)
	assert.Equal(t, now.Add(-24*time.Hour), d.Tasks[2].CreatedAt)
	assert.Equal(t, model.Session{}, d.User)
	assert.True(t, store.IsSampleSet(d.Tasks))
}

func TestIsSampleSet(t *testing.T) {
	d := store.Defaults(time.Now())
	assert.False(t, store.IsSampleSet(d.Tasks[:2]))

	d.Tasks[0].IsCompleted = true
	assert.False(t, store.IsSampleSet(d.Tasks))

	d = store.Defaults(time.Now())
	d.Tasks[1].ID = "other"
	assert.False(t, store.IsSampleSet(d.Tasks))
}

func TestPutTasksKeepsSession(t *testing.T) {
	fs := testutil.NewFakeStore(model.AppData{User: model.Session{Username: "alice", IsAuthenticated: true}})

	require.NoError(t, store.PutTasks(fs, []model.Task{{ID: "a", Title: "A", Priority: model.PriorityLow}}))
	assert.Equal(t, "alice", fs.Data.User.Username)
	assert.Len(t, fs.Data.Tasks, 1)
}

func TestPutSessionKeepsTasks(t *testing.T) {
	fs := testutil.NewSeededStore(time.Now())

	require.NoError(t, store.PutSession(fs, model.Session{Username: "bob", IsAuthenticated: true}))
	assert.Len(t, fs.Data.Tasks, 3)
	assert.Equal(t, "bob", fs.Data.User.Username)
}

func TestPutFailureIsWrapped(t *testing.T) {
	fs := testutil.NewSeededStore(time.Now())
	fs.SaveErr = testutil.ErrDiskFull

	err := store.PutTasks(fs, nil)
	assert.ErrorIs(t, err, testutil.ErrDiskFull)
	assert.Len(t, fs.Data.Tasks, 3)

	err = store.PutSession(fs, model.Session{Username: "x", IsAuthenticated: true})
	assert.ErrorIs(t, err, testutil.ErrDiskFull)
	assert.Empty(t, fs.Data.User.Username)
}
