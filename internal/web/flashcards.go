package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/storage"
)

var validate = validator.New()

// createCardInput is the create form, validated before it reaches the
// store. The store enforces the same rules; rejecting here gives the user a
// field-level message instead of a storage error.
type createCardInput struct {
	Question string `validate:"required"`
	Answer   string `validate:"required"`
	Category string `validate:"required,oneof=Word Grammar Context"`
}

// handleFlashcards handles listing (with category and prefix filters) and
// creation.
func (s *Server) handleFlashcards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleListFlashcards(w, r)
		case http.MethodPost:
			s.handleCreateFlashcard(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.CategoryAll
	}
	search := r.URL.Query().Get("search")

	cards, err := s.db.ListFlashcards(category, search)
	if err != nil {
		log.Printf("Error listing flashcards: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Cards":      cards,
		"Categories": domain.Categories(),
		"Category":   category,
		"Search":     search,
	}
	if isPartial(r) {
		s.templates.ExecuteTemplate(w, "flashcard_list", data)
		return
	}
	s.templates.ExecuteTemplate(w, "flashcards", data)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	input := createCardInput{
		Question: r.PostFormValue("question"),
		Answer:   r.PostFormValue("answer"),
		Category: r.PostFormValue("category"),
	}
	if err := validate.Struct(&input); err != nil {
		http.Error(w, "Question, answer and a valid category are required", http.StatusBadRequest)
		return
	}

	id, err := s.db.CreateFlashcard(input.Question, input.Answer, domain.Category(input.Category))
	if err != nil {
		if errors.Is(err, storage.ErrValidation) {
			// User-correctable input; tell them what was wrong.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating flashcard: %v", err)
		http.Error(w, "Failed to save flashcard", http.StatusInternalServerError)
		return
	}

	s.templates.ExecuteTemplate(w, "flashcard_saved", map[string]interface{}{
		"ID":       id,
		"Question": input.Question,
	})
}

// handleFlashcard handles a single card: edit form, update, delete.
func (s *Server) handleFlashcard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/flashcards/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid flashcard ID", http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodGet:
			s.handleEditForm(w, r, id)
		case http.MethodPost:
			s.handleUpdateFlashcard(w, r, id)
		case http.MethodDelete:
			s.handleDeleteFlashcard(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request, id int64) {
	card, err := s.db.GetFlashcard(id)
	if err != nil {
		log.Printf("Error loading flashcard %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	s.templates.ExecuteTemplate(w, "flashcard_edit", card)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request, id int64) {
	// Category is immutable after creation; only question and answer move.
	question := r.PostFormValue("question")
	answer := r.PostFormValue("answer")

	if err := s.db.UpdateFlashcard(id, question, answer); err != nil {
		log.Printf("Error updating flashcard %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/flashcards", http.StatusSeeOther)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.db.DeleteFlashcard(id); err != nil {
		log.Printf("Error deleting flashcard %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// isPartial reports whether the client wants a fragment swap rather than a
// full page.
func isPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
