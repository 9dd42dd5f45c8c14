package database

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/models"
)

// validation runs before anything touches the connection, so a bare DB
// with only the pattern set is enough here.
func newValidatorDB() *DB {
	return &DB{plainsware: defaultPlainswarePattern}
}

func TestValidateProjectInput(t *testing.T) {
	tests := []struct {
		name      string
		input     models.ProjectInput
		wantErr   bool
		wantField string
	}{
		{
			name:    "minimal valid",
			input:   models.ProjectInput{Name: "Site Revamp", Pillar: "Operations"},
			wantErr: false,
		},
		{
			name:      "empty name",
			input:     models.ProjectInput{Name: "", Pillar: "Operations"},
			wantErr:   true,
			wantField: "name",
		},
		{
			name:      "whitespace-only pillar",
			input:     models.ProjectInput{Name: "Site Revamp", Pillar: "   "},
			wantErr:   true,
			wantField: "pillar",
		},
		{
			name:      "progress above range",
			input:     models.ProjectInput{Name: "Site Revamp", Pillar: "Operations", Progress: 150},
			wantErr:   true,
			wantField: "progress",
		},
		{
			name:      "progress below range",
			input:     models.ProjectInput{Name: "Site Revamp", Pillar: "Operations", Progress: -1},
			wantErr:   true,
			wantField: "progress",
		},
		{
			name:      "malformed start date",
			input:     models.ProjectInput{Name: "Site Revamp", Pillar: "Operations", StartDate: "2026-13-99"},
			wantErr:   true,
			wantField: "start_date",
		},
		{
			name:      "malformed due date",
			input:     models.ProjectInput{Name: "Site Revamp", Pillar: "Operations", DueDate: "soon"},
			wantErr:   true,
			wantField: "due_date",
		},
		{
			name: "plainsware yes without number",
			input: models.ProjectInput{
				Name: "Site Revamp", Pillar: "Operations",
				PlainswareProject: "Yes",
			},
			wantErr:   true,
			wantField: "plainsware_number",
		},
		{
			name: "plainsware yes with malformed number",
			input: models.ProjectInput{
				Name: "Site Revamp", Pillar: "Operations",
				PlainswareProject: "Yes", PlainswareNumber: "JJMD-123",
			},
			wantErr:   true,
			wantField: "plainsware_number",
		},
		{
			name: "plainsware yes with valid number",
			input: models.ProjectInput{
				Name: "Site Revamp", Pillar: "Operations",
				PlainswareProject: "Yes", PlainswareNumber: "JJMD-0079575",
			},
			wantErr: false,
		},
	}

	db := newValidatorDB()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.validateProjectInput(&tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Contains(t, err.Error(), tt.wantField)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProjectInput_Normalization(t *testing.T) {
	db := newValidatorDB()

	input := models.ProjectInput{
		Name:              "  Site Revamp  ",
		Pillar:            " Operations ",
		Priority:          0,
		PlainswareProject: "yes",
		PlainswareNumber:  " jjmd-0079575 ",
	}
	require.NoError(t, db.validateProjectInput(&input))

	assert.Equal(t, "Site Revamp", input.Name)
	assert.Equal(t, "Operations", input.Pillar)
	assert.Equal(t, models.DefaultPriority, input.Priority)
	assert.Equal(t, models.PlainswareYes, input.PlainswareProject)
	assert.Equal(t, "JJMD-0079575", input.PlainswareNumber)
}

func TestValidateProjectInput_PlainswareNoClearsNumber(t *testing.T) {
	db := newValidatorDB()

	input := models.ProjectInput{
		Name:              "Site Revamp",
		Pillar:            "Operations",
		PlainswareProject: "",
		PlainswareNumber:  "JJMD-0079575",
	}
	require.NoError(t, db.validateProjectInput(&input))

	assert.Equal(t, models.PlainswareNo, input.PlainswareProject)
	assert.Empty(t, input.PlainswareNumber)
}

func TestValidateProjectInput_ConfigurablePattern(t *testing.T) {
	db := newValidatorDB()
	db.SetPlainswarePattern(regexp.MustCompile(`^\d+$`))

	input := models.ProjectInput{
		Name: "Site Revamp", Pillar: "Operations",
		PlainswareProject: "Yes", PlainswareNumber: "1234567",
	}
	assert.NoError(t, db.validateProjectInput(&input))

	input = models.ProjectInput{
		Name: "Site Revamp", Pillar: "Operations",
		PlainswareProject: "Yes", PlainswareNumber: "JJMD-0079575",
	}
	assert.Error(t, db.validateProjectInput(&input))
}

func TestValidateUpdateInput(t *testing.T) {
	input := models.ProjectUpdateInput{Note: "   "}
	err := validateUpdateInput(&input)
	assert.True(t, IsValidation(err))

	input = models.ProjectUpdateInput{Note: "Kickoff complete", Progress: 101}
	err = validateUpdateInput(&input)
	assert.True(t, IsValidation(err))

	input = models.ProjectUpdateInput{Note: "Kickoff complete", Progress: 10, StartDate: "2026-01-15"}
	assert.NoError(t, validateUpdateInput(&input))
}
