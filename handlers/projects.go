package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/database"
	"portfolio/models"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func ListProjects(db *database.DB) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func CreateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ProjectInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		project, err := db.InsertProject(ctx, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func GetProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		project, err := db.GetProject(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func UpdateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}

		var input models.ProjectInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		project, err := db.UpdateProject(ctx, id, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		if err := db.DeleteProject(ctx, id); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

// projectID parses the :id route parameter, writing a 400 on failure.
func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return 0, false
	}
	return id, true
}
