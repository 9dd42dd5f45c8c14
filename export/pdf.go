package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"portfolio/models"
)

// pdfColumns is the fixed subset shown on the printable report.
var pdfColumns = []string{
	"id", "name", "pillar", "priority", "owner", "status",
	"start_date", "due_date", "plainsware_project", "plainsware_number",
}

const pdfCellLimit = 40

// BuildPDF renders the projects as a plain tabular report: a bold title,
// one header line and one row per project, cells truncated to keep lines
// on the page.
func BuildPDF(projects []models.Project, title string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(40, 40, title)

	pdf.SetFont("Helvetica", "", 9)
	y := 70.0
	pdf.Text(40, y, strings.Join(pdfColumns, " | "))
	y += 14

	for _, p := range projects {
		pdf.Text(40, y, strings.Join(pdfRow(p), " | "))
		y += 12
		if y > pageHeight-50 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 9)
			y = 50
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfRow(p models.Project) []string {
	cells := []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Pillar,
		strconv.Itoa(p.Priority),
		p.Owner,
		p.Status,
		p.StartDate,
		p.DueDate,
		p.PlainswareProject,
		p.PlainswareNumber,
	}
	for i, cell := range cells {
		// Truncate on runes so a multi-byte character at the boundary is
		// dropped whole rather than split into invalid UTF-8.
		if runes := []rune(cell); len(runes) > pdfCellLimit {
			cells[i] = string(runes[:pdfCellLimit])
		}
	}
	return cells
}
