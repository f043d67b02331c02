package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/conorfennell/flashquote/internal/app"
	"github.com/conorfennell/flashquote/internal/tabs"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	app       *app.App
	router    chi.Router
	templates *template.Template
	log       *slog.Logger
}

// NewServer creates and configures a new server.
func NewServer(a *app.App, logger *slog.Logger) (*Server, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	s := &Server{
		app:       a,
		router:    chi.NewRouter(),
		templates: tpl,
		log:       logger,
	}
	s.routes(staticFS)
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes(staticFS fs.FS) {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	s.router.Get("/", s.handleIndex())
	s.router.Post("/tabs/{tab}", s.handleSelectTab())

	// HTMX fragments
	s.router.Get("/flashcards", s.handleGetFlashcards())
	s.router.Post("/flashcards/{op}", s.handleFlashcardOp())
	s.router.Get("/quotes", s.handleGetQuote())
	s.router.Post("/quotes/new", s.handleNewQuote())
	s.router.Get("/activity", s.handleActivity())
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// tabButton is one entry in the tab row.
type tabButton struct {
	Tab    tabs.Tab
	Label  string
	Active bool
}

// screenData feeds the "screen" template: tab row plus the active panel.
type screenData struct {
	app.Snapshot
	Tabs       []tabButton
	ShowQuotes bool
}

func newScreenData(snap app.Snapshot) screenData {
	d := screenData{Snapshot: snap, ShowQuotes: snap.Tab == tabs.Quotes}
	for _, t := range tabs.All {
		d.Tabs = append(d.Tabs, tabButton{Tab: t, Label: t.Label(), Active: t == snap.Tab})
	}
	return d
}

// render executes a template into a buffer so that a failing template never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("Error rendering template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleIndex renders the full page with the active tab.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "index", newScreenData(s.app.Snapshot()))
	}
}

// handleSelectTab switches tabs and re-renders the tab row and panel.
func (s *Server) handleSelectTab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, err := tabs.ParseTab(chi.URLParam(r, "tab"))
		if err != nil {
			http.Error(w, "Unknown tab", http.StatusBadRequest)
			return
		}
		s.render(w, "screen", newScreenData(s.app.SelectTab(tab)))
	}
}

// handleGetFlashcards renders the flashcard panel.
func (s *Server) handleGetFlashcards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "flashcards", s.app.Snapshot().Deck)
	}
}

// handleFlashcardOp applies a deck operation with the submitted form fields
// and re-renders the flashcard panel.
func (s *Server) handleFlashcardOp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op, err := app.ParseOp(chi.URLParam(r, "op"))
		if err != nil {
			http.Error(w, "Unknown operation", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		view := s.app.Flashcards(op, r.PostForm.Get("question"), r.PostForm.Get("answer"))
		s.render(w, "flashcards", view)
	}
}

// handleGetQuote renders the quote panel.
func (s *Server) handleGetQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "quotes", s.app.Snapshot().Quote)
	}
}

// handleNewQuote draws a new quote and re-renders the quote panel.
func (s *Server) handleNewQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "quotes", s.app.NewQuote())
	}
}

// handleActivity renders the most recent journal entries.
func (s *Server) handleActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultActivityLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = min(n, maxActivityLimit)
		}

		entries, err := s.app.Activity(limit)
		if err != nil {
			s.log.Error("Error getting activity", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "activity", entries)
	}
}
