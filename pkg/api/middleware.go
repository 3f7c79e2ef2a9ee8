package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
)

const loginPath = "/accounts/login/"

func requestLogger(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
			logger.String("remote", c.ClientIP()),
		)
	}
}

func recovery(log logger.ILogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error("panic while serving request", logger.String("path", c.Request.URL.Path), logger.Any("panic", err))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// loadSession attaches the driver behind the session cookie, if any, to the
// request context. It never rejects a request.
func (h *Handler) loadSession(c *gin.Context) {
	token, err := c.Cookie(h.cfg.SessionCookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}
	driver, err := h.svc.Auth().Authenticate(c.Request.Context(), token)
	if err != nil {
		h.log.Error("failed to authenticate session", logger.Error(err))
	}
	if driver != nil {
		c.Request = c.Request.WithContext(auth.ContextWithDriver(c.Request.Context(), driver))
	}
	c.Next()
}

func (h *Handler) loginRequired(c *gin.Context) {
	if _, ok := auth.DriverFromContext(c.Request.Context()); ok {
		c.Next()
		return
	}
	if c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) == binding.MIMEJSON {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

func (h *Handler) staffRequired(c *gin.Context) {
	if d := currentDriver(c); d != nil && d.IsStaff {
		c.Next()
		return
	}
	h.renderError(c, http.StatusForbidden, "You don't have permission to view this page.")
	c.Abort()
}

func currentDriver(c *gin.Context) *models.Driver {
	d, _ := auth.DriverFromContext(c.Request.Context())
	return d
}
