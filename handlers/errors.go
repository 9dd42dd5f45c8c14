package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio/database"
)

// writeError maps the store's error taxonomy onto HTTP: validation 400,
// not-found 404, anything else is a storage failure reported with detail
// and no retry.
func writeError(c *gin.Context, err error) {
	switch {
	case database.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case database.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "storage failure",
			"details": err.Error(),
		})
	}
}
