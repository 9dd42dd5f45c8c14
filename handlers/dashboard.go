package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/database"
	"portfolio/models"
	"portfolio/reports"
)

const (
	defaultTopN = 5
	maxTopN     = 10
)

// DashboardParams is the filter set plus the report controls.
type DashboardParams struct {
	models.QueryParams
	TopN int `form:"top_n"`
}

// DashboardResponse bundles every dashboard aggregate computed over one
// filtered view, so a single request renders the whole page.
type DashboardResponse struct {
	KPI          reports.KPI                 `json:"kpi"`
	PillarStatus []reports.PillarStatusCount `json:"pillar_status"`
	TopProjects  []models.Project            `json:"top_projects"`
	TopN         int                         `json:"top_n"`
	Roadmap      []reports.RoadmapRow        `json:"roadmap"`
	Years        []int                       `json:"years"`
}

func Dashboard(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params DashboardParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		topN := params.TopN
		if topN <= 0 {
			topN = defaultTopN
		}
		if topN > maxTopN {
			topN = maxTopN
		}

		ctx := c.Request.Context()
		view, err := db.QueryProjects(ctx, params.QueryParams)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, DashboardResponse{
			KPI:          reports.KPICounts(view),
			PillarStatus: reports.PillarStatusBreakdown(view),
			TopProjects:  reports.TopNPerPillar(view, topN),
			TopN:         topN,
			Roadmap:      reports.RoadmapRows(view),
			Years:        reports.YearOptions(view, params.YearBasis),
		})
	}
}
