package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/models"
)

func mustInsert(t *testing.T, db *DB, input models.ProjectInput) *models.Project {
	t.Helper()
	project, err := db.InsertProject(context.Background(), input)
	require.NoError(t, err)
	return project
}

func projectCount(t *testing.T, db *DB) int {
	t.Helper()
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestInsertProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	created, err := db.InsertProject(ctx, models.ProjectInput{
		Name:      "Site Revamp",
		Pillar:    "Operations",
		Owner:     "J.Doe",
		Priority:  1,
		StartDate: "2026-01-15",
		DueDate:   "2026-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Site Revamp", created.Name)
	assert.Equal(t, "Operations", created.Pillar)
	assert.Equal(t, 1, created.Priority)
	assert.Empty(t, created.Status)
	assert.Equal(t, models.PlainswareNo, created.PlainswareProject)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	retrieved, err := db.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, retrieved)
}

func TestInsertProject_DefaultPriority(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	created := mustInsert(t, db, models.ProjectInput{Name: "No Priority", Pillar: "Operations"})
	assert.Equal(t, models.DefaultPriority, created.Priority)
}

func TestInsertProject_EmptyName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	_, err := db.InsertProject(ctx, models.ProjectInput{Name: "   ", Pillar: "Operations"})

	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "name")
	assert.Equal(t, 0, projectCount(t, db))
}

func TestInsertProject_PlainswareNumberRequired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	_, err := db.InsertProject(ctx, models.ProjectInput{
		Name:              "Planisware Linked",
		Pillar:            "Operations",
		PlainswareProject: models.PlainswareYes,
	})

	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "plainsware_number")
	assert.Equal(t, 0, projectCount(t, db))
}

func TestInsertProject_PlainswareNumberNormalized(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	created := mustInsert(t, db, models.ProjectInput{
		Name:              "Planisware Linked",
		Pillar:            "Operations",
		PlainswareProject: "yes",
		PlainswareNumber:  "jjmd-0079575",
	})

	assert.Equal(t, models.PlainswareYes, created.PlainswareProject)
	assert.Equal(t, "JJMD-0079575", created.PlainswareNumber)
}

func TestInsertProject_MalformedDate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	_, err := db.InsertProject(ctx, models.ProjectInput{
		Name:      "Bad Date",
		Pillar:    "Operations",
		StartDate: "15/01/2026",
	})

	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "start_date")
}

func TestUpdateProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	created := mustInsert(t, db, models.ProjectInput{
		Name:   "Site Revamp",
		Pillar: "Operations",
		Owner:  "J.Doe",
	})

	updated, err := db.UpdateProject(ctx, created.ID, models.ProjectInput{
		Name:     "Site Revamp v2",
		Pillar:   "Operations",
		Owner:    "A.Smith",
		Status:   "In Progress",
		Priority: 2,
		Progress: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Site Revamp v2", updated.Name)
	assert.Equal(t, "A.Smith", updated.Owner)
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	// Timestamps are second-resolution text; equal is acceptable, earlier is not.
	assert.GreaterOrEqual(t, updated.UpdatedAt, created.UpdatedAt)
}

func TestUpdateProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	_, err := db.UpdateProject(ctx, 999, models.ProjectInput{Name: "Ghost", Pillar: "Operations"})

	assert.True(t, IsNotFound(err))
}

func TestDeleteProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	created := mustInsert(t, db, models.ProjectInput{Name: "Site Revamp", Pillar: "Operations", Owner: "J.Doe"})

	require.NoError(t, db.DeleteProject(ctx, created.ID))

	_, err := db.GetProject(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	owners, err := db.DistinctValues(ctx, "owner")
	require.NoError(t, err)
	assert.NotContains(t, owners, "J.Doe")
}

func TestDeleteProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	err := db.DeleteProject(context.Background(), 999)
	assert.True(t, IsNotFound(err))
}

func TestGetProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	_, err := db.GetProject(context.Background(), 42)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestDistinctValues(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	mustInsert(t, db, models.ProjectInput{Name: "A", Pillar: "Operations", Owner: "Zoe"})
	mustInsert(t, db, models.ProjectInput{Name: "B", Pillar: "Operations", Owner: "Amir"})
	mustInsert(t, db, models.ProjectInput{Name: "C", Pillar: "Analytics"})

	ctx := context.Background()
	owners, err := db.DistinctValues(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amir", "Zoe"}, owners)

	pillars, err := db.DistinctValues(ctx, "pillar")
	require.NoError(t, err)
	assert.Equal(t, []string{"Analytics", "Operations"}, pillars)
}

func TestDistinctValues_TrimsBeforeSorting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	// Legacy rows written before input trimming can carry stray
	// whitespace; they must still collapse into one sorted entry each.
	for _, owner := range []string{" b", "a", "b"} {
		_, err := db.conn.ExecContext(ctx, `
			INSERT INTO projects (name, pillar, owner) VALUES (?, ?, ?)
		`, "P "+owner, "Operations", owner)
		require.NoError(t, err)
	}

	owners, err := db.DistinctValues(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, owners)
}

func TestDistinctValues_CacheInvalidatedByMutation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	mustInsert(t, db, models.ProjectInput{Name: "A", Pillar: "Operations", Owner: "Zoe"})

	owners, err := db.DistinctValues(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zoe"}, owners)

	mustInsert(t, db, models.ProjectInput{Name: "B", Pillar: "Operations", Owner: "Amir"})

	owners, err = db.DistinctValues(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amir", "Zoe"}, owners)
}

func TestDistinctValues_UnknownColumn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	_, err := db.DistinctValues(context.Background(), "created_at; DROP TABLE projects")
	assert.True(t, IsValidation(err))
}
