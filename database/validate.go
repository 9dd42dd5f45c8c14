package database

import (
	"strings"

	"portfolio/models"
)

// validateProjectInput trims, validates and normalizes a payload in place.
// All checks run before any write; a returned error means nothing was
// stored.
func (db *DB) validateProjectInput(input *models.ProjectInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Pillar = strings.TrimSpace(input.Pillar)
	input.Description = strings.TrimSpace(input.Description)
	input.Owner = strings.TrimSpace(input.Owner)
	input.Status = strings.TrimSpace(input.Status)
	input.ProgressStatus = strings.TrimSpace(input.ProgressStatus)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.DueDate = strings.TrimSpace(input.DueDate)

	if input.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if input.Pillar == "" {
		return &ValidationError{Field: "pillar", Reason: "required"}
	}

	if input.Priority <= 0 {
		input.Priority = models.DefaultPriority
	}

	if input.Progress < 0 || input.Progress > 100 {
		return &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}

	if err := validateISODate("start_date", input.StartDate); err != nil {
		return err
	}
	if err := validateISODate("due_date", input.DueDate); err != nil {
		return err
	}

	return db.validatePlainsware(input)
}

// validatePlainsware enforces the conditional plainsware_number rule: a
// number matching the configured pattern is required when
// plainsware_project is Yes, and cleared when it is No. Accepted numbers
// are normalized to upper case.
func (db *DB) validatePlainsware(input *models.ProjectInput) error {
	flag := strings.TrimSpace(input.PlainswareProject)
	if !strings.EqualFold(flag, models.PlainswareYes) {
		input.PlainswareProject = models.PlainswareNo
		input.PlainswareNumber = ""
		return nil
	}

	input.PlainswareProject = models.PlainswareYes
	number := strings.ToUpper(strings.TrimSpace(input.PlainswareNumber))
	if number == "" {
		return &ValidationError{Field: "plainsware_number", Reason: "required when plainsware_project is Yes"}
	}
	if !db.plainsware.MatchString(number) {
		return &ValidationError{Field: "plainsware_number", Reason: "must match pattern " + db.plainsware.String()}
	}
	input.PlainswareNumber = number
	return nil
}

// validateUpdateInput checks a project_updates payload.
func validateUpdateInput(input *models.ProjectUpdateInput) error {
	input.Note = strings.TrimSpace(input.Note)
	input.ByUser = strings.TrimSpace(input.ByUser)
	input.Status = strings.TrimSpace(input.Status)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.DueDate = strings.TrimSpace(input.DueDate)

	if input.Note == "" {
		return &ValidationError{Field: "note", Reason: "required"}
	}
	if input.Progress < 0 || input.Progress > 100 {
		return &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}
	if err := validateISODate("start_date", input.StartDate); err != nil {
		return err
	}
	return validateISODate("due_date", input.DueDate)
}
