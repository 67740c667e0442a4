package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/quiz"
	"github.com/wortkarte/wortkarte/internal/settings"
	"github.com/wortkarte/wortkarte/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Translator is the external translation collaborator. Calls are
// best-effort and single-attempt.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// ExampleGenerator is the external usage-example collaborator.
type ExampleGenerator interface {
	Examples(ctx context.Context, word, sourceLang, targetLang string) ([]domain.Example, error)
}

// Server holds the dependencies for the HTTP server. It owns at most one
// quiz session at a time, matching the single-user model.
type Server struct {
	db        *storage.DB
	settings  *settings.Store
	router    *http.ServeMux
	templates *template.Template

	// nil when the corresponding API key is not configured.
	translator Translator
	examples   ExampleGenerator

	mu      sync.Mutex
	session *quiz.Session
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, prefs *settings.Store, translator Translator, examples ExampleGenerator) *Server {
	// Parse templates
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:         db,
		settings:   prefs,
		router:     http.NewServeMux(),
		templates:  tpl,
		translator: translator,
		examples:   examples,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleIndex())

	// Flashcard management
	s.router.HandleFunc("/flashcards", s.handleFlashcards())
	s.router.HandleFunc("/flashcards/", s.handleFlashcard())

	// Quiz flow
	s.router.HandleFunc("/quiz", s.handleQuizSetup())
	s.router.HandleFunc("/quiz/count", s.handleQuizCount())
	s.router.HandleFunc("/quiz/start", s.handleQuizStart())
	s.router.HandleFunc("/quiz/card", s.handleQuizCard())
	s.router.HandleFunc("/quiz/answer", s.handleQuizAnswer())
	s.router.HandleFunc("/quiz/record", s.handleQuizRecord())
	s.router.HandleFunc("/quiz/remove/", s.handleQuizRemove())

	// Translation
	s.router.HandleFunc("/translate", s.handleTranslate())
	s.router.HandleFunc("/settings/languages", s.handleLanguageSettings())
}

// handleIndex renders the landing page.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.templates.ExecuteTemplate(w, "index", nil)
	}
}

// parseCategories filters the posted category values down to valid ones.
func parseCategories(values []string) []domain.Category {
	var categories []domain.Category
	for _, v := range values {
		c := domain.Category(v)
		if c.Valid() {
			categories = append(categories, c)
		}
	}
	return categories
}
