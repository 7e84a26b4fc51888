package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"kingrun/internal/adapters/http/flash"
	"kingrun/internal/adapters/http/middleware"
	"kingrun/internal/domain/countdown"
	domainUser "kingrun/internal/domain/user"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// navItems is the bottom navigation, in display order.
var navItems = []navItem{
	{Path: "/", Label: "Início", Icon: "home"},
	{Path: "/eventos", Label: "Eventos", Icon: "calendar"},
	{Path: "/ranking", Label: "Ranking", Icon: "trophy"},
	{Path: "/desafios", Label: "Desafios", Icon: "target"},
	{Path: "/perfil", Label: "Perfil", Icon: "user"},
}

type navItem struct {
	Path  string
	Label string
	Icon  string
}

// page is the data every view receives.
type page struct {
	Title     string
	Nav       string // active nav path; empty hides the bottom navigation
	NavItems  []navItem
	User      domainUser.User
	Toast     *flash.Toast
	CSRFField template.HTML
	Data      any
}

// views holds one parsed template set per page, each combined with the layout.
type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"formatDate": countdown.FormatDate,
	"formatTime": countdown.Format,
	"markdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"pageQuery": func(category string, page, perPage int) template.URL {
		return template.URL(fmt.Sprintf("categoria=%s&page=%d&per_page=%d", template.URLQueryEscaper(category), page, perPage))
	},
}

// parseViews parses every page template against the shared layout.
// PRE: fsys contains templates/layout.html
// POST: Returns a view per templates/*.html page other than the layout
func parseViews(fsys fs.FS) (*views, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		v.pages[base] = tpl
	}
	return v, nil
}

// render executes a page into a buffer and writes it with status.
// A queued toast from a previous redirect is consumed only by a page without its own.
func (s *server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	tpl, ok := s.views.pages[name]
	if !ok {
		internalError(w, fmt.Errorf("unknown view %q", name))
		return
	}

	if p.Toast == nil {
		if queued, ok := s.deps.Flash.Pop(w, r); ok {
			p.Toast = &queued
		}
	}
	if m, ok := middleware.ManagerFromContext(r.Context()); ok {
		if u, authed := m.User(); authed {
			p.User = u
		}
	}
	if p.Nav != "" {
		p.NavItems = navItems
	}
	p.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, &p); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("response_write_failed", "error", err)
	}
}

// redirectWithToast queues t and redirects to target.
func (s *server) redirectWithToast(w http.ResponseWriter, r *http.Request, target string, t flash.Toast) {
	if err := s.deps.Flash.Set(w, t); err != nil {
		slog.Warn("flash_set_failed", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
