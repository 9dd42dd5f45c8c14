package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"portfolio/models"
)

// viewOrder sorts ascending by start date then due date then creation time,
// with blank dates last so undated projects sink to the bottom.
const viewOrder = `ORDER BY
	CASE WHEN start_date IS NULL OR start_date = '' THEN 1 ELSE 0 END, start_date,
	CASE WHEN due_date IS NULL OR due_date = '' THEN 1 ELSE 0 END, due_date,
	created_at`

// QueryProjects returns the filtered, sorted view over the projects table.
// Categorical filters equal to "" or "All" are skipped; active predicates
// are ANDed. Every call re-queries the store.
func (db *DB) QueryProjects(ctx context.Context, params models.QueryParams) ([]models.Project, error) {
	start := time.Now()
	defer func() {
		logrus.WithFields(logrus.Fields{
			"duration": time.Since(start).String(),
			"pillar":   params.Pillar,
			"status":   params.Status,
			"owner":    params.Owner,
			"search":   params.Search,
		}).Debug("queried projects")
	}()

	qb := NewQueryBuilder()

	categorical := []struct {
		column string
		value  string
	}{
		{columnPillar, params.Pillar},
		{columnStatus, params.Status},
		{columnOwner, params.Owner},
		{columnPlainsware, params.Plainsware},
	}
	for _, f := range categorical {
		if f.value != "" && f.value != models.AllLabel {
			qb.AddCondition(f.column, f.value)
		}
	}

	if params.Priority != "" && params.Priority != models.AllLabel {
		// A non-numeric priority filter is silently dropped rather than
		// failing the whole listing.
		if priority, err := strconv.Atoi(strings.TrimSpace(params.Priority)); err == nil {
			qb.AddCondition(columnPriority, priority)
		}
	}

	if params.Search != "" {
		qb.AddSearch(params.Search)
	}

	if params.Year != "" && params.Year != models.AllLabel {
		year, err := strconv.Atoi(strings.TrimSpace(params.Year))
		if err != nil {
			return nil, &ValidationError{Field: "year", Reason: fmt.Sprintf("%q is not a year", params.Year)}
		}
		qb.AddYear(yearBasisColumn(params.YearBasis), year)
	}

	query := fmt.Sprintf("SELECT %s FROM projects %s %s", projectColumns, qb.WhereClause(), viewOrder)

	rows, err := db.conn.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, &StorageError{Op: "query projects", Err: err}
	}
	defer rows.Close()

	return scanProjects(rows)
}

// yearBasisColumn picks the date column the year filter applies to.
func yearBasisColumn(basis string) string {
	if strings.EqualFold(strings.TrimSpace(basis), "due") {
		return columnDueDate
	}
	return columnStartDate
}
