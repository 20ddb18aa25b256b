package handlers

import (
	"net/http"
	"time"

	"securecheck/config"
	"securecheck/middleware"
	"securecheck/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Config      *config.Config
	Store       *services.Store
	Bus         *services.RedisBus
	Broadcaster *services.Broadcaster
	Auth        *services.AuthService
	Log         *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(d.Log))
	router.Use(middleware.SetupCORS(d.Config.CORS))
	router.SetHTMLTemplate(dashboardTemplate)

	catalog := services.NewCatalog(d.Store)
	dashboard := NewDashboardHandler(d.Store, catalog, d.Broadcaster, d.Log, d.Now)
	api := NewAPIHandler(d.Store, catalog, d.Broadcaster, d.Log, d.Now)
	auth := NewAuthHandler(d.Auth)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "SecureCheck dashboard is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", dashboard.Page)
	router.POST("/predict", dashboard.Predict)

	router.POST("/api/auth/login", auth.Login)
	v := router.Group("/api", middleware.RequireToken(d.Auth, d.Config.Auth.Required))
	{
		v.GET("/records", api.Records)
		v.GET("/metrics", api.Metrics)
		v.GET("/charts/:name", api.Chart)
		v.GET("/queries", api.Queries)
		v.POST("/queries/run", api.RunQuery)
		v.POST("/predict", api.Predict)
	}

	router.GET("/ws/predictions", LiveWebSocket(d.Bus, d.Auth, d.Config.CORS.Origins(), d.Log))

	return router
}
