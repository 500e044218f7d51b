package main

import (
	"context"
	"log"
	"time"

	"GEUNTAE/analysis"
	"GEUNTAE/config"
	attendancecontroller "GEUNTAE/controllers/attendance"
	authcontroller "GEUNTAE/controllers/auth"
	orgchartcontroller "GEUNTAE/controllers/orgchart"
	uploadcontroller "GEUNTAE/controllers/upload"
	plancontroller "GEUNTAE/controllers/workforceplan"
	"GEUNTAE/middlewares"
	"GEUNTAE/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := models.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Admin seed failed: %v", err)
	}

	analyzer, err := analysis.NewAnalyzer(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}

	authHandler := authcontroller.NewHandler(db, cfg.JWTKey)
	uploadHandler := uploadcontroller.NewHandler(db, analyzer)
	attendanceHandler := attendancecontroller.NewHandler(db)
	planHandler := plancontroller.NewHandler(db)
	orgChartHandler := orgchartcontroller.NewHandler(db)

	router := gin.Default()
	router.MaxMultipartMemory = 10 << 20

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authHandler.Me)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
		})

		protected := api.Group("")
		protected.Use(middlewares.AuthMiddleware(cfg.JWTKey))
		{
			protected.POST("/upload", uploadHandler.Upload)
			protected.GET("/upload", uploadHandler.List)
			protected.DELETE("/upload/:id", uploadHandler.Delete)

			protected.GET("/attendance", attendanceHandler.List)
			protected.GET("/attendance/stats", attendanceHandler.Stats)
			protected.GET("/attendance/pivot", attendanceHandler.Pivot)
			protected.GET("/attendance/filters", attendanceHandler.Filters)
			protected.GET("/attendance/report/summary", attendanceHandler.ReportSummary)
			protected.GET("/attendance/report/daily", attendanceHandler.ReportDaily)

			protected.GET("/workforce-plan", planHandler.List)
			protected.POST("/workforce-plan/batch", planHandler.BatchUpsert)
			protected.GET("/workforce-plan/suggest", planHandler.Suggest)

			protected.GET("/org-chart", orgChartHandler.List)
			protected.POST("/org-chart", orgChartHandler.Create)
			protected.PUT("/org-chart/:id", orgChartHandler.Update)
			protected.DELETE("/org-chart/:id", orgChartHandler.Delete)
		}
	}

	log.Printf("Server is running on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
