package models

// ProjectUpdate is one row of the append-only project_updates log. Rows
// reference projects.id informationally; deleting a project does not
// cascade into its history.
type ProjectUpdate struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	At        string `json:"at"`
	ByUser    string `json:"by_user"`
	Note      string `json:"note"`
	Progress  int    `json:"progress"`
	StartDate string `json:"start_date"`
	DueDate   string `json:"due_date"`
	Status    string `json:"status"`
}

// ProjectUpdateInput is the payload for appending a project update.
type ProjectUpdateInput struct {
	ByUser    string `json:"by_user"`
	Note      string `json:"note" binding:"required"`
	Progress  int    `json:"progress"`
	StartDate string `json:"start_date"`
	DueDate   string `json:"due_date"`
	Status    string `json:"status"`
}

// ProjectUpdatesResponse is the response format for update-log listings.
type ProjectUpdatesResponse struct {
	Updates []ProjectUpdate `json:"updates"`
	Total   int             `json:"total"`
}
