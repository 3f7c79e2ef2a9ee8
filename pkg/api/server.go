package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/service"
)

type Handler struct {
	cfg *config.Config
	svc service.IServiceManager
	log logger.ILogger
}

// New builds the HTTP handler for the whole site.
func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestLogger(log), recovery(log))
	r.SetHTMLTemplate(loadTemplates())

	h := &Handler{cfg: cfg, svc: svc, log: log}
	r.Use(h.loadSession)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", h.loginForm)
		accounts.POST("/login/", h.login)
		accounts.POST("/logout/", h.logout)
	}

	private := r.Group("/", h.loginRequired)
	{
		private.GET("/", h.index)
		private.GET("/manufacturers/", h.manufacturerList)
		private.GET("/cars/", h.carList)
		private.GET("/cars/:id/", h.carDetail)
		private.GET("/drivers/", h.driverList)
		private.GET("/drivers/:id/", h.driverDetail)
	}

	admin := r.Group("/admin", h.loginRequired, h.staffRequired)
	{
		admin.GET("/drivers/", h.adminDriverList)
		admin.GET("/drivers/add/", h.adminDriverAddForm)
		admin.POST("/drivers/add/", h.adminDriverAdd)
		admin.GET("/drivers/:id/change/", h.adminDriverChange)
	}

	r.NoRoute(h.notFound)

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	}).Handler(r)
}

func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AppPort),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
