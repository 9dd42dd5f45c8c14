package database

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"portfolio/models"
)

const updateColumns = `id, project_id, at, COALESCE(by_user, ''), COALESCE(note, ''),
	COALESCE(progress, 0), COALESCE(start_date, ''), COALESCE(due_date, ''), COALESCE(status, '')`

// InsertProjectUpdate appends a row to the project's audit log. The
// project must exist at append time; the log itself survives a later
// delete.
func (db *DB) InsertProjectUpdate(ctx context.Context, projectID int64, input models.ProjectUpdateInput) (*models.ProjectUpdate, error) {
	if err := validateUpdateInput(&input); err != nil {
		return nil, err
	}

	var exists int
	err := db.conn.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id = ?", projectID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: projectID}
	}
	if err != nil {
		return nil, &StorageError{Op: "check project exists", Err: err}
	}

	at := nowTimestamp()
	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO project_updates (project_id, at, by_user, note, progress, start_date, due_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, projectID, at, input.ByUser, input.Note, input.Progress,
		nullable(input.StartDate), nullable(input.DueDate), nullable(input.Status))
	if err != nil {
		return nil, &StorageError{Op: "insert project update", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, &StorageError{Op: "read inserted update id", Err: err}
	}

	logrus.WithFields(logrus.Fields{"project_id": projectID, "update_id": id}).Info("project update appended")

	return &models.ProjectUpdate{
		ID:        id,
		ProjectID: projectID,
		At:        at,
		ByUser:    input.ByUser,
		Note:      input.Note,
		Progress:  input.Progress,
		StartDate: input.StartDate,
		DueDate:   input.DueDate,
		Status:    input.Status,
	}, nil
}

// ListProjectUpdates returns the project's log rows, newest first. A
// deleted project still lists its surviving history.
func (db *DB) ListProjectUpdates(ctx context.Context, projectID int64) ([]models.ProjectUpdate, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+updateColumns+" FROM project_updates WHERE project_id = ? ORDER BY at DESC, id DESC",
		projectID)
	if err != nil {
		return nil, &StorageError{Op: "list project updates", Err: err}
	}
	defer rows.Close()

	updates := []models.ProjectUpdate{}
	for rows.Next() {
		var u models.ProjectUpdate
		err := rows.Scan(&u.ID, &u.ProjectID, &u.At, &u.ByUser, &u.Note,
			&u.Progress, &u.StartDate, &u.DueDate, &u.Status)
		if err != nil {
			return nil, &StorageError{Op: "scan project update row", Err: err}
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate project update rows", Err: err}
	}

	return updates, nil
}
