package tasks_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/testutil"
)

func newSeeded(t *testing.T) (*tasks.Manager, *testutil.FakeStore, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock()
	fs := testutil.NewSeededStore(clock.Now())
	seq := 0
	m := tasks.New(fs,
		tasks.WithClock(clock.Now),
		tasks.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return m, fs, clock
}

func TestAdd(t *testing.T) {
	m, fs, _ := newSeeded(t)
	before := len(m.Active()) + len(m.Completed())

	task, err := m.Add("  Write tests ", " cover the manager ", model.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Write tests", task.Title)
	assert.Equal(t, "cover the manager", task.Description)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Equal(t, before+1, len(m.Active())+len(m.Completed()))

	all := m.Tasks()
	assert.Equal(t, task, all[0], "new tasks are prepended")
	assert.Equal(t, all, fs.Data.Tasks, "memory and store agree")
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		priority    model.Priority
		wantErr     error
	}{
		{"empty title", "", "", model.PriorityLow, tasks.ErrEmptyTitle},
		{"blank title", "   ", "", model.PriorityLow, tasks.ErrEmptyTitle},
		{"long title", strings.Repeat("a", tasks.MaxTitleLen+1), "", model.PriorityLow, tasks.ErrTitleTooLong},
		{"long description", "ok", strings.Repeat("d", tasks.MaxDescriptionLen+1), model.PriorityLow, tasks.ErrDescriptionTooLong},
		{"bad priority", "ok", "", model.Priority("urgent"), model.ErrInvalidPriority},
		{"zero priority", "ok", "", "", model.ErrInvalidPriority},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, fs, _ := newSeeded(t)
			before := m.Tasks()

			_, err := m.Add(tc.title, tc.description, tc.priority)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, before, m.Tasks())
			assert.Zero(t, fs.Saves, "validation failures never reach the store")
		})
	}
}

func TestAddBoundaryLengths(t *testing.T) {
	m, _, _ := newSeeded(t)
	title := strings.Repeat("é", tasks.MaxTitleLen)
	desc := strings.Repeat("ü", tasks.MaxDescriptionLen)

	task, err := m.Add(title, desc, model.PriorityMedium)
	require.NoError(t, err)
	assert.Equal(t, title, task.Title)
	assert.Equal(t, desc, task.Description)
}

func TestAddPersistFailure(t *testing.T) {
	m, fs, _ := newSeeded(t)
	before := m.Tasks()
	fs.SaveErr = testutil.ErrDiskFull

	_, err := m.Add("Write tests", "", model.PriorityHigh)
	assert.ErrorIs(t, err, testutil.ErrDiskFull)
	assert.Equal(t, before, m.Tasks())
}

func TestAddToSeededData(t *testing.T) {
	m, _, _ := newSeeded(t)
	require.Len(t, m.Active(), 2)
	require.Len(t, m.Completed(), 1)

	task, err := m.Add("Write tests", "", model.PriorityHigh)
	require.NoError(t, err)

	assert.Len(t, m.Active(), 3)
	byCreated := tasks.View(m.Tasks(), tasks.FilterAll, tasks.SortCreated)
	assert.Equal(t, task.ID, byCreated[0].ID)
}

func TestUpdate(t *testing.T) {
	m, fs, _ := newSeeded(t)
	orig, ok := m.Get(store.SampleSetupID)
	require.True(t, ok)

	title := "  Set up laptop "
	prio := model.PriorityHigh
	require.NoError(t, m.Update(store.SampleSetupID, model.TaskPatch{Title: &title, Priority: &prio}))

	got, ok := m.Get(store.SampleSetupID)
	require.True(t, ok)
	assert.Equal(t, "Set up laptop", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, orig.Description, got.Description)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))
	assert.Equal(t, m.Tasks(), fs.Data.Tasks)

	for _, other := range m.Tasks() {
		if other.ID != store.SampleSetupID {
			assert.NotEqual(t, "Set up laptop", other.Title)
		}
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	m, fs, _ := newSeeded(t)
	before := m.Tasks()

	title := "nothing"
	require.NoError(t, m.Update("missing", model.TaskPatch{Title: &title}))
	assert.Equal(t, before, m.Tasks())
	assert.Equal(t, 1, fs.Saves, "the unchanged list is still persisted")
}

func TestUpdateValidation(t *testing.T) {
	m, fs, _ := newSeeded(t)
	before := m.Tasks()

	blank := " "
	assert.ErrorIs(t, m.Update(store.SampleSetupID, model.TaskPatch{Title: &blank}), tasks.ErrEmptyTitle)

	long := strings.Repeat("x", tasks.MaxDescriptionLen+1)
	assert.ErrorIs(t, m.Update(store.SampleSetupID, model.TaskPatch{Description: &long}), tasks.ErrDescriptionTooLong)

	bad := model.Priority("none")
	assert.ErrorIs(t, m.Update(store.SampleSetupID, model.TaskPatch{Priority: &bad}), model.ErrInvalidPriority)

	assert.Equal(t, before, m.Tasks())
	assert.Zero(t, fs.Saves)
}

func TestUpdatePersistFailure(t *testing.T) {
	m, fs, _ := newSeeded(t)
	before := m.Tasks()
	fs.SaveErr = testutil.ErrDiskFull

	title := "Renamed"
	err := m.Update(store.SampleTutorialID, model.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, testutil.ErrDiskFull)
	assert.Equal(t, before, m.Tasks())
}

func TestDelete(t *testing.T) {
	m, fs, _ := newSeeded(t)

	require.NoError(t, m.Delete(store.SampleDocsID))
	_, ok := m.Get(store.SampleDocsID)
	assert.False(t, ok)
	assert.Empty(t, m.Completed())
	assert.Len(t, fs.Data.Tasks, 2)

	require.NoError(t, m.Delete("missing"))
	assert.Len(t, m.Tasks(), 2)
}

func TestDeletePersistFailure(t *testing.T) {
	m, fs, _ := newSeeded(t)
	fs.SaveErr = testutil.ErrDiskFull

	assert.ErrorIs(t, m.Delete(store.SampleDocsID), testutil.ErrDiskFull)
	_, ok := m.Get(store.SampleDocsID)
	assert.True(t, ok)
}

func TestToggleCompletionIsInvolution(t *testing.T) {
	m, _, _ := newSeeded(t)
	orig, _ := m.Get(store.SampleTutorialID)

	require.NoError(t, m.ToggleCompletion(store.SampleTutorialID))
	once, _ := m.Get(store.SampleTutorialID)
	assert.Equal(t, !orig.IsCompleted, once.IsCompleted)
	assert.True(t, once.UpdatedAt.After(orig.UpdatedAt))

	require.NoError(t, m.ToggleCompletion(store.SampleTutorialID))
	twice, _ := m.Get(store.SampleTutorialID)
	assert.Equal(t, orig.IsCompleted, twice.IsCompleted)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
}

func TestToggleCompletionFrozenClock(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fs := testutil.NewSeededStore(frozen)
	m := tasks.New(fs, tasks.WithClock(func() time.Time { return frozen }))

	require.NoError(t, m.ToggleCompletion(store.SampleSetupID))
	once, _ := m.Get(store.SampleSetupID)
	require.NoError(t, m.ToggleCompletion(store.SampleSetupID))
	twice, _ := m.Get(store.SampleSetupID)

	assert.True(t, once.UpdatedAt.After(frozen))
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
}

func TestToggleCompletionUnknownID(t *testing.T) {
	m, fs, _ := newSeeded(t)

	err := m.ToggleCompletion("missing")
	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
	assert.Zero(t, fs.Saves)
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := tasks.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	fs := testutil.NewFakeStore(model.AppData{})
	m := tasks.New(fs)

	a, err := m.Add("a", "", model.PriorityLow)
	require.NoError(t, err)
	b, err := m.Add("b", "", model.PriorityLow)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
