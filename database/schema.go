package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const projectsTable = "projects"

// expectedColumns is the shape the code requires. EnsureSchema upgrades any
// older on-disk table toward it without data loss.
var expectedColumns = []struct {
	Name string
	DDL  string
}{
	{"id", "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{"name", "TEXT NOT NULL"},
	{"pillar", "TEXT NOT NULL"},
	{"priority", "INTEGER DEFAULT 5"},
	{"description", "TEXT"},
	{"owner", "TEXT"},
	{"status", "TEXT"},
	{"start_date", "TEXT"},
	{"due_date", "TEXT"},
	{"progress", "INTEGER DEFAULT 0"},
	{"progress_status", "TEXT"},
	{"plainsware_project", "TEXT DEFAULT 'No'"},
	{"plainsware_number", "TEXT"},
	{"created_at", "TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP"},
	{"updated_at", "TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP"},
}

// legacyRenames maps column names used by early installations to their
// current names.
var legacyRenames = []struct {
	From string
	To   string
}{
	{"plainsware_proj", "plainsware_project"},
	{"plainsware_num", "plainsware_number"},
}

const createUpdatesTableSQL = `
	CREATE TABLE IF NOT EXISTS project_updates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		by_user TEXT,
		note TEXT,
		progress INTEGER,
		start_date TEXT,
		due_date TEXT,
		status TEXT
	)
`

type columnInfo struct {
	Name    string
	Type    string
	NotNull bool
	Default sql.NullString
}

func projectsCreateSQL(table string, ifNotExists bool) string {
	defs := make([]string, 0, len(expectedColumns))
	for _, col := range expectedColumns {
		defs = append(defs, col.Name+" "+col.DDL)
	}
	clause := ""
	if ifNotExists {
		clause = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE TABLE %s%s (\n\t%s\n)", clause, table, strings.Join(defs, ",\n\t"))
}

func (db *DB) tableInfo(ctx context.Context, table string) ([]columnInfo, error) {
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, &StorageError{Op: "introspect " + table, Err: err}
	}
	defer rows.Close()

	var cols []columnInfo
	for rows.Next() {
		var (
			cid     int
			col     columnInfo
			notNull int
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &col.Default, &pk); err != nil {
			return nil, &StorageError{Op: "scan table_info row", Err: err}
		}
		col.NotNull = notNull == 1
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate table_info rows", Err: err}
	}
	return cols, nil
}

// Columns returns the current column names of the projects table.
func (db *DB) Columns(ctx context.Context) ([]string, error) {
	info, err := db.tableInfo(ctx, projectsTable)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(info))
	for _, col := range info {
		names = append(names, col.Name)
	}
	return names, nil
}

func columnSet(info []columnInfo) map[string]columnInfo {
	set := make(map[string]columnInfo, len(info))
	for _, col := range info {
		set[col.Name] = col
	}
	return set
}

// A created_at column that is NOT NULL without a default predates the
// server-set timestamps and breaks inserts; the table must be rebuilt.
func needsRebuildForCreatedAt(info []columnInfo) bool {
	col, ok := columnSet(info)["created_at"]
	if !ok {
		return false
	}
	noDefault := !col.Default.Valid || strings.TrimSpace(col.Default.String) == ""
	return col.NotNull && noDefault
}

// Early installations declared plainsware_number as INTEGER, which mangles
// values like "JJMD-0079575".
func needsRebuildForPlainswareType(info []columnInfo) bool {
	col, ok := columnSet(info)["plainsware_number"]
	if !ok {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(col.Type), "TEXT")
}

// EnsureSchema idempotently creates the projects and project_updates tables
// and upgrades an older on-disk schema: legacy columns are renamed, missing
// columns added with their defaults, and irreconcilable shapes rebuilt
// through a shadow table. Running it twice in a row is a no-op.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, projectsCreateSQL(projectsTable, true)); err != nil {
		return &StorageError{Op: "create projects table", Err: err}
	}

	info, err := db.tableInfo(ctx, projectsTable)
	if err != nil {
		return err
	}
	existing := columnSet(info)

	for _, rename := range legacyRenames {
		if _, old := existing[rename.From]; !old {
			continue
		}
		if _, cur := existing[rename.To]; cur {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %q TO %q", projectsTable, rename.From, rename.To)
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			logrus.WithError(err).WithField("column", rename.From).Warn("rename failed, rebuilding table")
			if err := db.rebuildProjectsTable(ctx); err != nil {
				return err
			}
		}
		if info, err = db.tableInfo(ctx, projectsTable); err != nil {
			return err
		}
		existing = columnSet(info)
	}

	if needsRebuildForCreatedAt(info) || needsRebuildForPlainswareType(info) {
		if err := db.rebuildProjectsTable(ctx); err != nil {
			return err
		}
		if info, err = db.tableInfo(ctx, projectsTable); err != nil {
			return err
		}
		existing = columnSet(info)
	}

	for _, col := range expectedColumns {
		if _, ok := existing[col.Name]; ok {
			continue
		}
		// id, name and pillar can never be retrofitted with ADD COLUMN.
		if col.Name == "id" || col.Name == "name" || col.Name == "pillar" {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", projectsTable, col.Name, col.DDL)
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			logrus.WithError(err).WithField("column", col.Name).Warn("add column failed, rebuilding table")
			if err := db.rebuildProjectsTable(ctx); err != nil {
				return err
			}
			break
		}
		logrus.WithField("column", col.Name).Info("schema: added missing column")
	}

	if _, err := db.conn.ExecContext(ctx, createUpdatesTableSQL); err != nil {
		return &StorageError{Op: "create project_updates table", Err: err}
	}

	return nil
}

// rebuildProjectsTable migrates the projects table through a shadow table:
// create projects__new with the expected shape, copy the intersection of
// matching columns (legacy names mapped), backfill blank timestamps, drop
// the old table and rename the shadow into place. The whole rebuild runs in
// one transaction so a crash leaves either the old or the migrated table.
func (db *DB) rebuildProjectsTable(ctx context.Context) error {
	info, err := db.tableInfo(ctx, projectsTable)
	if err != nil {
		return err
	}

	expected := make(map[string]bool, len(expectedColumns))
	for _, col := range expectedColumns {
		expected[col.Name] = true
	}
	legacy := make(map[string]string, len(legacyRenames))
	for _, rename := range legacyRenames {
		legacy[rename.From] = rename.To
	}

	var keepOld, keepNew []string
	for _, col := range info {
		switch {
		case expected[col.Name]:
			keepOld = append(keepOld, col.Name)
			keepNew = append(keepNew, col.Name)
		case legacy[col.Name] != "":
			keepOld = append(keepOld, col.Name)
			keepNew = append(keepNew, legacy[col.Name])
		}
	}

	shadow := projectsTable + "__new"

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin rebuild", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, projectsCreateSQL(shadow, false)); err != nil {
		return &StorageError{Op: "create shadow table", Err: err}
	}

	if len(keepOld) > 0 {
		stmt := fmt.Sprintf(
			"INSERT INTO %s (%s) SELECT %s FROM %s",
			shadow, strings.Join(keepNew, ", "), strings.Join(keepOld, ", "), projectsTable,
		)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &StorageError{Op: "copy rows into shadow table", Err: err}
		}
	}

	backfill := fmt.Sprintf(`
		UPDATE %s
		SET created_at = COALESCE(NULLIF(created_at, ''), CURRENT_TIMESTAMP),
		    updated_at = COALESCE(NULLIF(updated_at, ''), CURRENT_TIMESTAMP)
	`, shadow)
	if _, err := tx.ExecContext(ctx, backfill); err != nil {
		return &StorageError{Op: "backfill timestamps", Err: err}
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE "+projectsTable); err != nil {
		return &StorageError{Op: "drop old table", Err: err}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", shadow, projectsTable)); err != nil {
		return &StorageError{Op: "rename shadow table", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit rebuild", Err: err}
	}

	logrus.WithField("kept_columns", len(keepOld)).Info("schema: rebuilt projects table")
	return nil
}
