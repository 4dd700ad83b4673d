// Package web serves the single attendance screen and its script.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LaliPerez/registro-asistencia/internal/attendance"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type page struct {
	Session attendance.SessionResponse
	Form    attendance.FormResponse
	Roster  attendance.RosterResponse
	Message string
}

var funcs = template.FuncMap{
	// thumbnails are PNG data URLs built by the service
	"imgsrc": func(s string) template.URL {
		if !strings.HasPrefix(s, "data:image/png;base64,") {
			return ""
		}
		return template.URL(s)
	},
}

// Register mounts GET / and /static on r. r must not have another HTML
// renderer installed.
func Register(r *gin.Engine, svc *attendance.Service) error {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(sub))

	r.GET("/", func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.HTML(http.StatusOK, "index.html", page{
			Session: svc.Session(),
			Form:    svc.Form(),
			Roster:  svc.Records(),
			Message: attendance.MsgCourseRequired,
		})
	})
	return nil
}
