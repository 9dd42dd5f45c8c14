package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"portfolio/config"
	"portfolio/database"
	"portfolio/handlers"
	"portfolio/middleware"
)

func main() {
	godotenv.Load()
	config.InitLogging()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	// Create context with timeout for startup work
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	db.SetPlainswarePattern(cfg.PlainswarePattern)

	if err := db.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("schema migration failed")
	}

	r := gin.Default()

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.GET("/projects", handlers.ListProjects(db))
	api.GET("/projects/:id", handlers.GetProject(db))
	api.GET("/projects/:id/updates", handlers.ListProjectUpdates(db))
	api.GET("/options", handlers.FilterOptions(db))
	api.GET("/dashboard", handlers.Dashboard(db))
	api.GET("/export/csv", handlers.ExportCSV(db))
	api.GET("/export/pdf", handlers.ExportPDF(db))
	api.GET("/export/roadmap", handlers.ExportRoadmap(db))

	mutate := api.Group("", middleware.AuthRequired(cfg.APIKey))
	mutate.POST("/projects", handlers.CreateProject(db))
	mutate.PUT("/projects/:id", handlers.UpdateProject(db))
	mutate.DELETE("/projects/:id", handlers.DeleteProject(db))
	mutate.POST("/projects/:id/updates", handlers.CreateProjectUpdate(db))

	logrus.WithField("addr", cfg.Addr).Info("server starting")
	if err := r.Run(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
