package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"

	layoutTemplate = "layout.html"
)

// Page templates, each rendered inside layout.html
const (
	pageLogin           = "login.html"
	pageForgotPassword  = "forgot_password.html"
	pageHome            = "home.html"
	pageDashboard       = "dashboard.html"
	pageSettings        = "settings.html"
	pageBusinessAccount = "business_account.html"
)

var pageNames = []string{
	pageLogin,
	pageForgotPassword,
	pageHome,
	pageDashboard,
	pageSettings,
	pageBusinessAccount,
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}


type pageSet map[string]*template.Template

// parsePages builds one template set per page, each sharing the layout.
func parsePages() (pageSet, error) {
	fsys := TemplateFilesFS()
	pages := make(pageSet, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(layoutTemplate).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("[server parsePages] %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// PageData is passed to every page. Content carries the page specific data.
type PageData struct {
	AppName       string
	Title         string
	ActivePage    string
	Authenticated bool
	UserID        string
	Error         string
	Message       string
	Content       interface{}
}

// newPageData fills the fields every page shows from the request.
func (s *Server) newPageData(r *http.Request, active, title string, content interface{}) PageData {
	manager := sessionFor(r)
	userID, _ := manager.CurrentUserID()
	return PageData{
		AppName:       s.config.GetAppName(),
		Title:         title,
		ActivePage:    active,
		Authenticated: manager.HasValidSession(),
		UserID:        userID,
		Error:         r.URL.Query().Get("error"),
		Message:       r.URL.Query().Get("message"),
		Content:       content,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, pages pageSet, name string, data PageData) {
	tmpl, ok := pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	// Render into a buffer so a template error does not leave a half written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("page", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	if _, err := buf.WriteTo(w); err != nil {
		log.Err(err).Str("page", name).Msg("Failed to write page")
	}
}
