package models

// AllLabel is the sentinel filter value that disables a predicate.
const AllLabel = "All"

const (
	PlainswareYes = "Yes"
	PlainswareNo  = "No"
)

// DefaultPriority is assigned when a payload omits priority or carries a
// non-positive value. Lower numbers are more urgent.
const DefaultPriority = 5

// Preset option lists seeded into the pillar and status dropdowns. The
// database may contain values outside these lists; the options endpoint
// merges both sets.
var (
	PresetPillars = []string{
		"Digital Mindset",
		"Advanced Analytics",
		"Integration & Visualization",
		"Data Availability & Connectivity",
		"Smart Operations",
		"Process Excellence",
	}

	PresetStatuses = []string{
		"Planned",
		"In Progress",
		"Completed",
		"On Hold",
	}
)

// Project represents one row of the projects table. Dates are ISO
// YYYY-MM-DD strings, empty when unset; timestamps are server-set
// YYYY-MM-DD HH:MM:SS strings.
type Project struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Pillar            string `json:"pillar"`
	Priority          int    `json:"priority"`
	Description       string `json:"description"`
	Owner             string `json:"owner"`
	Status            string `json:"status"`
	StartDate         string `json:"start_date"`
	DueDate           string `json:"due_date"`
	Progress          int    `json:"progress"`
	ProgressStatus    string `json:"progress_status"`
	PlainswareProject string `json:"plainsware_project"`
	PlainswareNumber  string `json:"plainsware_number"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// ProjectInput is the editable part of a project, shared by insert and
// update. The store trims, validates and normalizes it before any write.
type ProjectInput struct {
	Name              string `json:"name" binding:"required"`
	Pillar            string `json:"pillar" binding:"required"`
	Priority          int    `json:"priority"`
	Description       string `json:"description"`
	Owner             string `json:"owner"`
	Status            string `json:"status"`
	StartDate         string `json:"start_date"`
	DueDate           string `json:"due_date"`
	Progress          int    `json:"progress"`
	ProgressStatus    string `json:"progress_status"`
	PlainswareProject string `json:"plainsware_project"`
	PlainswareNumber  string `json:"plainsware_number"`
}

// QueryParams is the filter set for project listings. Categorical values
// equal to "" or "All" are skipped; all active predicates are ANDed.
type QueryParams struct {
	Pillar     string `form:"pillar"`
	Status     string `form:"status"`
	Owner      string `form:"owner"`
	Priority   string `form:"priority"`
	Plainsware string `form:"plainsware"`
	Search     string `form:"search"`
	Year       string `form:"year"`
	YearBasis  string `form:"year_basis"` // "start" (default) or "due"
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}
