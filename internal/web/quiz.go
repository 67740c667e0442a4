package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/quiz"
)

const defaultQuizSize = 10

// handleQuizSetup renders the quiz configuration page.
func (s *Server) handleQuizSetup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.templates.ExecuteTemplate(w, "quiz_setup", map[string]interface{}{
			"Categories":  domain.Categories(),
			"DefaultSize": defaultQuizSize,
		})
	}
}

// handleQuizCount answers the live "cards available" count for the selected
// categories. No selection counts as zero.
func (s *Server) handleQuizCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		categories := parseCategories(r.Form["categories"])

		count, err := s.db.CountFlashcards(categories)
		if err != nil {
			log.Printf("Error counting flashcards: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.templates.ExecuteTemplate(w, "quiz_count", map[string]interface{}{
			"Count": count,
		})
	}
}

// handleQuizStart samples a card set and replaces any previous session.
func (s *Server) handleQuizStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		categories := parseCategories(r.Form["categories"])
		count, err := strconv.Atoi(r.PostFormValue("count"))
		if err != nil || count < 1 {
			count = defaultQuizSize
		}

		cards, err := s.db.SampleQuizCards(categories, count)
		if err != nil {
			log.Printf("Error sampling quiz cards: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		s.mu.Lock()
		s.session = quiz.NewSession(cards)
		s.mu.Unlock()

		http.Redirect(w, r, "/quiz/card", http.StatusSeeOther)
	}
}

// handleQuizCard shows the question side of the current card, or the
// results once the session is complete.
func (s *Server) handleQuizCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The session itself is not safe for concurrent use, so the lock
		// spans every read of it, not just fetching the pointer.
		s.mu.Lock()
		defer s.mu.Unlock()

		session := s.session
		if session == nil {
			http.Redirect(w, r, "/quiz", http.StatusSeeOther)
			return
		}
		if session.State() == quiz.Completed {
			s.renderResults(w, session)
			return
		}

		s.templates.ExecuteTemplate(w, "quiz_card_front", s.cardView(session))
	}
}

// handleQuizAnswer reveals the answer side of the current card.
func (s *Server) handleQuizAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		session := s.session
		if session == nil || session.State() == quiz.Completed {
			http.Redirect(w, r, "/quiz/card", http.StatusSeeOther)
			return
		}
		s.templates.ExecuteTemplate(w, "quiz_card_back", s.cardView(session))
	}
}

// handleQuizRecord scores the current card and moves on: the engine keeps
// recording and advancing as separate steps, composed here.
func (s *Server) handleQuizRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.mu.Lock()
		session := s.session
		if session != nil && session.State() == quiz.InProgress {
			session.RecordAnswer(r.PostFormValue("correct") == "true")
			session.Advance()
		}
		s.mu.Unlock()

		http.Redirect(w, r, "/quiz/card", http.StatusSeeOther)
	}
}

// handleQuizRemove deletes a card the user discards while reviewing
// results: first from durable storage, then from the session's working set
// so the results view stays consistent.
func (s *Server) handleQuizRemove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		idStr := strings.TrimPrefix(r.URL.Path, "/quiz/remove/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid flashcard ID", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		session := s.session
		if session == nil || session.State() != quiz.Completed {
			http.Error(w, "No completed quiz", http.StatusConflict)
			return
		}

		// Store first, then session: if the delete fails the card stays in
		// the results, keeping both views consistent.
		if err := s.db.DeleteFlashcard(id); err != nil {
			log.Printf("Error deleting flashcard %d: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		session.RemoveCard(id)
		s.renderResults(w, session)
	}
}

func (s *Server) renderResults(w http.ResponseWriter, session *quiz.Session) {
	s.templates.ExecuteTemplate(w, "quiz_results", map[string]interface{}{
		"Results":      session.Results(),
		"CorrectCount": session.CorrectCount(),
		"WrongCount":   session.WrongCount(),
	})
}

func (s *Server) cardView(session *quiz.Session) map[string]interface{} {
	return map[string]interface{}{
		"Card":         session.CurrentCard(),
		"Position":     session.Position() + 1,
		"Total":        session.CardCount(),
		"Progress":     int(session.ProgressFraction() * 100),
		"CorrectCount": session.CorrectCount(),
		"WrongCount":   session.WrongCount(),
	}
}
