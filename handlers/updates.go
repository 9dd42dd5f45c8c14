package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/database"
	"portfolio/models"
)

func CreateProjectUpdate(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}

		var input models.ProjectUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		update, err := db.InsertProjectUpdate(ctx, id, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, update)
	}
}

func ListProjectUpdates(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		updates, err := db.ListProjectUpdates(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectUpdatesResponse{
			Updates: updates,
			Total:   len(updates),
		})
	}
}
