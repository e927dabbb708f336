package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	complianceH *ComplianceHandler,
	timelineH *TimelineHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "compliance-llm"})
	})

	api := r.Group("/api")

	api.GET("/applications", complianceH.ListApplications)

	api.POST("/evaluate/trust", complianceH.EvaluateTrust)
	api.POST("/process", complianceH.Process)
	api.POST("/process/all", complianceH.ProcessAll)

	api.GET("/decisions", complianceH.ListDecisions)
	api.GET("/decisions/:decision_id", complianceH.GetDecision)
	api.GET("/decisions/:decision_id/verify", complianceH.VerifyDecision)
	api.GET("/decisions/:decision_id/report", complianceH.DecisionReport)

	api.POST("/explain", complianceH.Explain)
	api.POST("/recommendations", complianceH.Recommendations)

	api.GET("/frameworks", complianceH.ListFrameworks)
	api.GET("/frameworks/:name/requirements", complianceH.FrameworkRequirements)

	timeline := api.Group("/timeline")
	timeline.POST("/:application_id/events", timelineH.AddEvent)
	timeline.GET("/:application_id", timelineH.Timeline)
	timeline.GET("/:application_id/history", timelineH.History)
	timeline.GET("/:application_id/trend", timelineH.Trend)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita consumo desde el dashboard web.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
