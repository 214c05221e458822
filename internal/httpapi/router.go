package httpapi

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Logger      *zap.Logger
	CORSOrigins []string
}

func NewRouter(svc Service, opts RouterOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/healthz", HealthHandler())

	api := r.Group("/api")
	{
		api.GET("/tasks", ListTasksHandler(svc, log))
		api.POST("/tasks", AddTaskHandler(svc, log))
		api.DELETE("/tasks/:id", DeleteTaskHandler(svc, log))
		api.POST("/tasks/:id/days/:day/toggle", ToggleDayHandler(svc, log))
		api.GET("/tasks/:id/streak", StreakHandler(svc, log))

		api.POST("/coins/claim", ClaimHandler(svc, log))
		api.GET("/profile", ProfileHandler(svc, log))
		api.GET("/analytics", AnalyticsHandler(svc, log))
		api.GET("/overview", OverviewHandler(svc, log))

		api.GET("/theme", GetThemeHandler(svc, log))
		api.PUT("/theme", SetThemeHandler(svc, log))
		api.DELETE("/session", ResetHandler(svc, log))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= 500 {
			log.Error("http request", fields...)
			return
		}
		log.Info("http request", fields...)
	}
}
