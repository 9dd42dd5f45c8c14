// Package export renders project views as downloadable artifacts: CSV,
// a printable PDF table and a standalone roadmap HTML page.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"portfolio/models"
)

var csvHeader = []string{
	"id", "name", "pillar", "priority", "description", "owner", "status",
	"start_date", "due_date", "progress", "progress_status",
	"plainsware_project", "plainsware_number", "created_at", "updated_at",
}

// WriteCSV writes all columns of the given projects as UTF-8
// comma-delimited rows with a header line.
func WriteCSV(w io.Writer, projects []models.Project) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range projects {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Pillar,
			strconv.Itoa(p.Priority),
			p.Description,
			p.Owner,
			p.Status,
			p.StartDate,
			p.DueDate,
			strconv.Itoa(p.Progress),
			p.ProgressStatus,
			p.PlainswareProject,
			p.PlainswareNumber,
			p.CreatedAt,
			p.UpdatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
