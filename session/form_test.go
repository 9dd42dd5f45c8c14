package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio/models"
)

func TestFormState_Transitions(t *testing.T) {
	state := NewFormState()
	assert.Equal(t, EditingNew, state.Mode())

	_, ok := state.ProjectID()
	assert.False(t, ok)

	state.Select(7)
	assert.Equal(t, EditingExisting, state.Mode())
	id, ok := state.ProjectID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	state.New()
	assert.Equal(t, EditingNew, state.Mode())
	_, ok = state.ProjectID()
	assert.False(t, ok)
}

func TestFormState_SavedResetsSelection(t *testing.T) {
	state := NewFormState()
	state.Select(3)

	state.Saved()

	assert.Equal(t, EditingNew, state.Mode())
}

func TestFormState_Deleted(t *testing.T) {
	state := NewFormState()
	state.Select(3)

	// Deleting some other record leaves the form bound.
	state.Deleted(9)
	assert.Equal(t, EditingExisting, state.Mode())

	state.Deleted(3)
	assert.Equal(t, EditingNew, state.Mode())
}

func TestFormValues_Defaults(t *testing.T) {
	values := FormValues(nil)

	assert.Equal(t, models.DefaultPriority, values.Priority)
	assert.Equal(t, models.PlainswareNo, values.PlainswareProject)
	assert.Empty(t, values.Name)
	assert.Empty(t, values.StartDate)
}

func TestFormValues_LoadedRecord(t *testing.T) {
	loaded := &models.Project{
		ID:                12,
		Name:              "Site Revamp",
		Pillar:            "Operations",
		Priority:          1,
		Owner:             "J.Doe",
		Status:            "In Progress",
		StartDate:         "2026-01-15",
		DueDate:           "2026-03-31",
		Progress:          40,
		PlainswareProject: models.PlainswareYes,
		PlainswareNumber:  "JJMD-0079575",
	}

	values := FormValues(loaded)

	assert.Equal(t, "Site Revamp", values.Name)
	assert.Equal(t, "Operations", values.Pillar)
	assert.Equal(t, 1, values.Priority)
	assert.Equal(t, "2026-01-15", values.StartDate)
	assert.Equal(t, models.PlainswareYes, values.PlainswareProject)
	assert.Equal(t, "JJMD-0079575", values.PlainswareNumber)
}
