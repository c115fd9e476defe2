// Package view renders the embedded HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"curtainraiser/config"
	"curtainraiser/shared/constant"
	"curtainraiser/shared/logger"
	"curtainraiser/shared/session"
	"curtainraiser/shared/timezone"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile  = "templates/layout.html"
	layoutName  = "layout"
	displayDate = "02 Jan 2006"
)

const (
	PageIndex              = "index"
	PageAbout              = "about"
	PageServices           = "services"
	PageGallery            = "gallery"
	PageContact            = "contact"
	PageLogin              = "login"
	PageAdminDashboard     = "admin-dashboard"
	PageAdminAnnouncements = "admin-announcements"
	PageAdminGallery       = "admin-gallery"
)

var pages = []string{
	PageIndex,
	PageAbout,
	PageServices,
	PageGallery,
	PageContact,
	PageLogin,
	PageAdminDashboard,
	PageAdminAnnouncements,
	PageAdminGallery,
}

// Page is the data every template receives.
type Page struct {
	Title   string
	AppName string
	Flash   *session.Flash
	Error   string
	Data    any
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page Page)
}

type renderer struct {
	templates map[string]*template.Template
	appName   string
}

func New(cfg *config.Config) (Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return timezone.Format(t, displayDate)
		},
		"inputDate": func(t time.Time) string {
			return timezone.Format(t, constant.FormDateFormat)
		},
		"joinLines": func(lines []string) string {
			return strings.Join(lines, "\n")
		},
	}

	templates := make(map[string]*template.Template, len(pages))

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		templates[name] = tmpl
	}

	return &renderer{templates: templates, appName: cfg.App.Name}, nil
}

// Render writes the named page; a template failure becomes the generic 500 body.
func (r *renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("unknown template")
		writeInternalError(w)

		return
	}

	page.AppName = r.appName

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutName, page); err != nil {
		logger.ErrorWithStack(err)
		writeInternalError(w)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		logger.ErrorWithStack(err)
	}
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeText)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(constant.ResponseErrorInternal))
}
