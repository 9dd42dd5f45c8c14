package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio/database"
	"portfolio/export"
	"portfolio/models"
	"portfolio/reports"
)

// ExportCSV streams the projects as CSV. scope=filtered (default) applies
// the usual query filters; scope=all dumps the whole table.
func ExportCSV(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			projects []models.Project
			err      error
			filename string
		)

		if c.DefaultQuery("scope", "filtered") == "all" {
			projects, err = db.ListAllProjects(ctx)
			filename = "portfolio_full_database.csv"
		} else {
			var params models.QueryParams
			if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": bindErr.Error()})
				return
			}
			projects, err = db.QueryProjects(ctx, params)
			filename = "portfolio_filtered.csv"
		}
		if err != nil {
			writeError(c, err)
			return
		}

		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		// Headers are already out once writing starts; on a mid-stream
		// failure there is nothing to send the client but an aborted body.
		if err := export.WriteCSV(c.Writer, projects); err != nil {
			logrus.WithError(err).Error("csv export aborted mid-stream")
			c.Abort()
		}
	}
}

func ExportPDF(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.QueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		projects, err := db.QueryProjects(ctx, params)
		if err != nil {
			writeError(c, err)
			return
		}

		pdfBytes, err := export.BuildPDF(projects, "Digital Portfolio Report (Filtered)")
		if err != nil {
			writeError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="portfolio_report_filtered.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// ExportRoadmap renders the timeline of the filtered view as a standalone
// HTML page. A view with no valid date ranges still renders, with an
// empty-state message.
func ExportRoadmap(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.QueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		view, err := db.QueryProjects(ctx, params)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="roadmap.html"`)
		if err := export.RenderRoadmapHTML(c.Writer, "Project Timeline", reports.RoadmapRows(view)); err != nil {
			logrus.WithError(err).Error("roadmap export aborted mid-stream")
			c.Abort()
		}
	}
}
