package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Nutrition *handlers.NutritionHandler
	Hydration *handlers.HydrationHandler
	Summary   *handlers.SummaryHandler
	// Webhook is optional; the WhatsApp routes are mounted only when set.
	Webhook *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
	}

	users := r.Group("/users/:userID")
	{
		users.POST("/meal-logs", h.Nutrition.LogMeal)
		users.GET("/meal-logs", h.Nutrition.ListMealLogs)
		users.DELETE("/meal-logs/:entryID", h.Nutrition.DeleteMealLog)

		users.GET("/nutrition", h.Nutrition.History)
		users.GET("/nutrition/daily", h.Nutrition.Daily)
		users.GET("/nutrition/average", h.Nutrition.Average)
		users.GET("/nutrition/weekly-average", h.Nutrition.WeeklyAverage)
		users.GET("/nutrition/monthly-average", h.Nutrition.MonthlyAverage)
		users.GET("/meal-types/top", h.Nutrition.TopMealTypes)

		users.POST("/water", h.Hydration.AddWater)
		users.DELETE("/water/:entryID", h.Hydration.DeleteWater)
		users.GET("/water/daily", h.Hydration.Daily)
		users.GET("/water/progress", h.Hydration.Progress)
		users.GET("/water/history", h.Hydration.History)
		users.GET("/water/goal", h.Hydration.GetGoal)
		users.PUT("/water/goal", h.Hydration.SetGoal)

		users.POST("/summaries/:date/recompute", h.Summary.Recompute)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
