// Package session models the editor form lifecycle explicitly: the form is
// always a pure projection of (mode, loaded record or defaults), with no
// global selection state.
//
// The HTTP API is stateless and does not use this package; it is a library
// for UI clients that keep an editor form open across requests.
package session

import "portfolio/models"

// Mode says what the editor form is bound to.
type Mode int

const (
	// EditingNew: the form holds defaults for a record to be created.
	EditingNew Mode = iota
	// EditingExisting: the form reflects a loaded record.
	EditingExisting
)

// FormState is the editor's state machine. Zero value is EditingNew.
type FormState struct {
	mode      Mode
	projectID int64
}

func NewFormState() FormState {
	return FormState{mode: EditingNew}
}

// Select binds the form to an existing record.
func (s *FormState) Select(id int64) {
	s.mode = EditingExisting
	s.projectID = id
}

// New resets the form to defaults.
func (s *FormState) New() {
	s.mode = EditingNew
	s.projectID = 0
}

// Saved transitions after a successful insert: the selector resets so the
// next entry starts from a blank form.
func (s *FormState) Saved() {
	s.New()
}

// Deleted clears the selection when the bound record was removed. A delete
// of some other record leaves the form alone.
func (s *FormState) Deleted(id int64) {
	if s.mode == EditingExisting && s.projectID == id {
		s.New()
	}
}

func (s FormState) Mode() Mode {
	return s.mode
}

// ProjectID returns the bound record id, valid only in EditingExisting.
func (s FormState) ProjectID() (int64, bool) {
	if s.mode != EditingExisting {
		return 0, false
	}
	return s.projectID, true
}

// FormValues projects the form contents: the loaded record's editable
// fields, or the defaults when nothing is loaded.
func FormValues(loaded *models.Project) models.ProjectInput {
	if loaded == nil {
		return models.ProjectInput{
			Priority:          models.DefaultPriority,
			PlainswareProject: models.PlainswareNo,
		}
	}
	return models.ProjectInput{
		Name:              loaded.Name,
		Pillar:            loaded.Pillar,
		Priority:          loaded.Priority,
		Description:       loaded.Description,
		Owner:             loaded.Owner,
		Status:            loaded.Status,
		StartDate:         loaded.StartDate,
		DueDate:           loaded.DueDate,
		Progress:          loaded.Progress,
		ProgressStatus:    loaded.ProgressStatus,
		PlainswareProject: loaded.PlainswareProject,
		PlainswareNumber:  loaded.PlainswareNumber,
	}
}
