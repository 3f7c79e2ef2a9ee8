package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// pageView carries what the shared layout needs on every page.
type pageView struct {
	Title string
	User  *models.Driver
}

type errorView struct {
	pageView
	Status  int
	Message string
}

// render answers with the named template, or with jsonData when the client
// asked for JSON.
func (h *Handler) render(c *gin.Context, status int, name string, htmlData, jsonData any) {
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{binding.MIMEHTML, binding.MIMEJSON},
		HTMLName: name,
		HTMLData: htmlData,
		JSONData: jsonData,
	})
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	view := errorView{
		pageView: pageView{Title: http.StatusText(status), User: currentDriver(c)},
		Status:   status,
		Message:  message,
	}
	h.render(c, status, "error.html", view, gin.H{"error": message})
}

func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	h.log.Error(msg, logger.Error(err))
	h.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func (h *Handler) notFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "The requested page was not found.")
}
