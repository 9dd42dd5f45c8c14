package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/database"
	"portfolio/models"
)

// OptionsResponse carries the filter/selection option sets. Pillar and
// status merge the preset lists with values observed in the database;
// owners and priorities are purely DB-observed.
type OptionsResponse struct {
	Pillars    []string `json:"pillars"`
	Statuses   []string `json:"statuses"`
	Owners     []string `json:"owners"`
	Priorities []int    `json:"priorities"`
	Plainsware []string `json:"plainsware"`
}

func FilterOptions(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbPillars, err := db.DistinctValues(ctx, "pillar")
		if err != nil {
			writeError(c, err)
			return
		}
		dbStatuses, err := db.DistinctValues(ctx, "status")
		if err != nil {
			writeError(c, err)
			return
		}
		owners, err := db.DistinctValues(ctx, "owner")
		if err != nil {
			writeError(c, err)
			return
		}
		dbPriorities, err := db.DistinctValues(ctx, "priority")
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, OptionsResponse{
			Pillars:    sortedUnion(models.PresetPillars, dbPillars),
			Statuses:   sortedUnion(models.PresetStatuses, dbStatuses),
			Owners:     owners,
			Priorities: numericValues(dbPriorities),
			Plainsware: []string{models.PlainswareYes, models.PlainswareNo},
		})
	}
}

func sortedUnion(preset, observed []string) []string {
	set := map[string]bool{}
	for _, v := range preset {
		set[v] = true
	}
	for _, v := range observed {
		set[v] = true
	}

	union := make([]string, 0, len(set))
	for v := range set {
		union = append(union, v)
	}
	sort.Strings(union)
	return union
}

// numericValues keeps the values that parse as integers, sorted
// numerically. DISTINCT on an integer column comes back as strings here;
// anything unparseable is skipped.
func numericValues(values []string) []int {
	numbers := []int{}
	for _, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}
