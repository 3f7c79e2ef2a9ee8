package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/logger"
	"taxiservice/service"
)

type loginView struct {
	pageView
	Next     string
	Username string
	Error    string
}

func (h *Handler) loginForm(c *gin.Context) {
	if currentDriver(c) != nil {
		c.Redirect(http.StatusFound, safeNext(c.Query("next")))
		return
	}
	c.HTML(http.StatusOK, "login.html", loginView{
		pageView: pageView{Title: "Login"},
		Next:     c.Query("next"),
	})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")

	session, err := h.svc.Auth().Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.serverError(c, "failed to log in", err)
			return
		}
		c.HTML(http.StatusUnauthorized, "login.html", loginView{
			pageView: pageView{Title: "Login"},
			Next:     next,
			Username: username,
			Error:    "Please enter a correct username and password.",
		})
		return
	}

	h.log.Info("driver logged in", logger.String("username", username))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, session.Token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.SecureCookies, true)
	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.SessionCookieName); err == nil {
		if err := h.svc.Auth().Logout(c.Request.Context(), token); err != nil {
			h.log.Error("failed to delete session", logger.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)
	c.Redirect(http.StatusFound, loginPath)
}
