package http

import (
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"mailtriage/internal/ai"
	appsvc "mailtriage/internal/app"
	"mailtriage/internal/bootstrap"
	"mailtriage/internal/reply"
	"mailtriage/internal/stats"
	"mailtriage/internal/transport/http/handler"
	"mailtriage/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	if app.Config.Triage.ServeStatic {
		dir := app.Config.Triage.StaticDir
		router.StaticFile("/", filepath.Join(dir, "index.html"))
		router.Static("/static", dir)
	}

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	generator := reply.NewGenerator(
		ai.NewOpenAICompatibleClient(),
		ai.ChatConfig{
			BaseURL:     app.Config.LLM.BaseURL,
			APIKey:      app.Config.LLM.APIKey,
			Model:       app.Config.LLM.Model,
			MaxTokens:   app.Config.LLM.MaxTokens,
			Temperature: app.Config.LLM.Temperature,
		},
		time.Duration(app.Config.LLM.TimeoutSeconds)*time.Second,
	)

	var publisher appsvc.EventPublisher
	if app.EventPublisher != nil {
		publisher = app.EventPublisher
	}
	triageService := appsvc.NewTriageService(
		app.Classifier,
		generator,
		publisher,
		app.Config.Triage.ExcerptMaxChars,
		app.Config.Triage.BatchMaxFiles,
	)
	triageHandler := handler.NewTriageHandler(triageService)
	router.POST("/process", triageHandler.Process)
	router.POST("/process_batch", triageHandler.ProcessBatch)

	var statsReader stats.Reader
	if app.Stats != nil {
		statsReader = app.Stats
	}
	statsHandler := handler.NewStatsHandler(statsReader)
	v1 := router.Group("/api/v1")
	v1.GET("/stats", statsHandler.Totals)

	return router
}
