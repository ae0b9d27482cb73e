package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{" Medium ", PriorityMedium, false},
		{"HIGH", PriorityHigh, false},
		{"urgent", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePriority(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
}

func TestPriorityJSON(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"a","priority":"urgent"}`), &task)
	assert.ErrorIs(t, err, ErrInvalidPriority)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","priority":"high"}`), &task))
	assert.Equal(t, PriorityHigh, task.Priority)

	_, err = json.Marshal(Task{ID: "b"})
	assert.Error(t, err, "zero priority must not be written")
}

func TestTaskPatchApply(t *testing.T) {
	orig := Task{ID: "x", Title: "old", Description: "d", Priority: PriorityLow}

	assert.True(t, TaskPatch{}.Empty())
	assert.Equal(t, orig, TaskPatch{}.Apply(orig))

	title := "new"
	prio := PriorityHigh
	done := true
	got := TaskPatch{Title: &title, Priority: &prio, IsCompleted: &done}.Apply(orig)

	assert.Equal(t, "x", got.ID)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.True(t, got.IsCompleted)
}

func TestAppDataClone(t *testing.T) {
	d := AppData{Tasks: []Task{{ID: "a", Title: "one"}}}
	c := d.Clone()
	c.Tasks[0].Title = "changed"
	assert.Equal(t, "one", d.Tasks[0].Title)
}

func TestTaskValidate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := Task{ID: "a", Title: "Write tests", Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"missing id", func(t *Task) { t.ID = "" }},
		{"blank title", func(t *Task) { t.Title = "   " }},
		{"long title", func(t *Task) { t.Title = strings.Repeat("é", MaxTitleLen+1) }},
		{"long description", func(t *Task) { t.Description = strings.Repeat("d", MaxDescriptionLen+1) }},
		{"zero priority", func(t *Task) { t.Priority = "" }},
		{"updated before created", func(t *Task) { t.UpdatedAt = now.Add(-time.Second) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := valid
			tc.mutate(&task)
			assert.Error(t, task.Validate())
		})
	}

	task := valid
	task.Priority = ""
	assert.ErrorIs(t, task.Validate(), ErrInvalidPriority)
}
