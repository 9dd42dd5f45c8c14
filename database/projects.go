package database

import (
	"context"
	"database/sql"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"portfolio/models"
)

// projectColumns is the SELECT list for scanning a full project row.
// Nullable text columns are coalesced so rows written by older revisions
// scan cleanly.
const projectColumns = `id, name, pillar, COALESCE(priority, 5), COALESCE(description, ''),
	COALESCE(owner, ''), COALESCE(status, ''), COALESCE(start_date, ''), COALESCE(due_date, ''),
	COALESCE(progress, 0), COALESCE(progress_status, ''),
	COALESCE(plainsware_project, 'No'), COALESCE(plainsware_number, ''),
	created_at, updated_at`

// InsertProject validates the payload, stamps created_at/updated_at,
// inserts and returns the stored record.
func (db *DB) InsertProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	if err := db.validateProjectInput(&input); err != nil {
		return nil, err
	}

	ts := nowTimestamp()
	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO projects
			(name, pillar, priority, description, owner, status, start_date, due_date,
			 progress, progress_status, plainsware_project, plainsware_number,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		input.Name, input.Pillar, input.Priority, input.Description, input.Owner,
		input.Status, input.StartDate, input.DueDate, input.Progress, input.ProgressStatus,
		input.PlainswareProject, nullable(input.PlainswareNumber), ts, ts,
	)
	if err != nil {
		return nil, &StorageError{Op: "insert project", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, &StorageError{Op: "read inserted id", Err: err}
	}

	db.dropOptionCache()
	logrus.WithFields(logrus.Fields{"id": id, "name": input.Name}).Info("project created")
	return db.GetProject(ctx, id)
}

// UpdateProject overwrites every editable field of an existing record and
// refreshes updated_at. Concurrent updates are last-writer-wins.
func (db *DB) UpdateProject(ctx context.Context, id int64, input models.ProjectInput) (*models.Project, error) {
	if err := db.validateProjectInput(&input); err != nil {
		return nil, err
	}

	result, err := db.conn.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, pillar = ?, priority = ?, description = ?, owner = ?, status = ?,
		    start_date = ?, due_date = ?, progress = ?, progress_status = ?,
		    plainsware_project = ?, plainsware_number = ?, updated_at = ?
		WHERE id = ?
	`,
		input.Name, input.Pillar, input.Priority, input.Description, input.Owner,
		input.Status, input.StartDate, input.DueDate, input.Progress, input.ProgressStatus,
		input.PlainswareProject, nullable(input.PlainswareNumber), nowTimestamp(), id,
	)
	if err != nil {
		return nil, &StorageError{Op: "update project", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, &StorageError{Op: "read affected rows", Err: err}
	}
	if affected == 0 {
		return nil, &NotFoundError{ID: id}
	}

	db.dropOptionCache()
	logrus.WithField("id", id).Info("project updated")
	return db.GetProject(ctx, id)
}

// DeleteProject removes the row. The project_updates history is kept; the
// log is informational and independent of the record lifecycle.
func (db *DB) DeleteProject(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return &StorageError{Op: "delete project", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &StorageError{Op: "read affected rows", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}

	db.dropOptionCache()
	logrus.WithField("id", id).Info("project deleted")
	return nil
}

func (db *DB) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = ?", projectColumns)

	project, err := scanProject(db.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &StorageError{Op: "get project", Err: err}
	}
	return project, nil
}

// ListAllProjects returns the full table ordered by id, for the
// whole-database export scope.
func (db *DB) ListAllProjects(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects ORDER BY id", projectColumns)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "list projects", Err: err}
	}
	defer rows.Close()

	return scanProjects(rows)
}

// distinctColumns is the allow-list for DistinctValues; the column name is
// interpolated into SQL and must never come from user input unchecked.
var distinctColumns = map[string]bool{
	columnPillar:     true,
	columnStatus:     true,
	columnOwner:      true,
	columnPriority:   true,
	columnPlainsware: true,
}

// DistinctValues returns the sorted non-blank values of a column, for
// populating filter option sets. Results are cached until the next
// mutation.
func (db *DB) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, &ValidationError{Field: "column", Reason: fmt.Sprintf("%q is not filterable", column)}
	}

	if cached, ok := db.options.Get(column); ok {
		return cached.([]string), nil
	}

	// Distinct and ordered on the trimmed value: legacy rows may carry
	// stray whitespace, and ' b' and 'b' must collapse to one entry.
	query := fmt.Sprintf(`
		SELECT DISTINCT TRIM(%s) FROM projects
		WHERE %s IS NOT NULL AND TRIM(%s) <> ''
		ORDER BY TRIM(%s)
	`, column, column, column, column)

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "list distinct " + column, Err: err}
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &StorageError{Op: "scan distinct value", Err: err}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate distinct values", Err: err}
	}

	db.options.Set(column, values, gocache.NoExpiration)
	return values, nil
}

// Helper functions

// nullable maps "" to NULL so conditionally-absent text columns stay null
// in storage rather than empty strings.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Pillar, &p.Priority, &p.Description,
		&p.Owner, &p.Status, &p.StartDate, &p.DueDate,
		&p.Progress, &p.ProgressStatus,
		&p.PlainswareProject, &p.PlainswareNumber,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, &StorageError{Op: "scan project row", Err: err}
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate project rows", Err: err}
	}

	return projects, nil
}
