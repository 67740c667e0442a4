package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/translate"
)

const (
	settingSourceLanguage = "sourceLanguage"
	settingTargetLanguage = "targetLanguage"
)

// handleTranslate renders the translate page and performs translations.
// Service failures are logged and rendered as "no result"; they never reach
// the store layer.
func (s *Server) handleTranslate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderTranslatePage(w, nil, "")
		case http.MethodPost:
			s.handleDoTranslate(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) handleDoTranslate(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.PostFormValue("text"))
	source, target := s.languagePair()

	if s.translator == nil || text == "" {
		s.renderTranslatePage(w, nil, text)
		return
	}

	var results []domain.Example

	translated, err := s.translator.Translate(r.Context(), text, source, target)
	if err != nil {
		// Best effort, single attempt: show no result rather than failing
		// the page.
		log.Printf("Translation failed: %v", err)
	} else if translated != "" {
		results = append(results, domain.Example{Question: text, Answer: translated})
	}

	// Usage examples only make sense for a single word.
	if s.examples != nil && len(strings.Fields(text)) == 1 {
		examples, err := s.examples.Examples(r.Context(), text, source, target)
		if err != nil {
			log.Printf("Example generation failed: %v", err)
		} else {
			results = append(results, examples...)
		}
	}

	s.renderTranslatePage(w, results, text)
}

// handleLanguageSettings persists the selected language pair. Settings are
// fire-and-forget; this handler cannot fail.
func (s *Server) handleLanguageSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if v := r.PostFormValue("source"); v != "" {
			s.settings.Set(settingSourceLanguage, v)
		}
		if v := r.PostFormValue("target"); v != "" {
			s.settings.Set(settingTargetLanguage, v)
		}
		http.Redirect(w, r, "/translate", http.StatusSeeOther)
	}
}

// languagePair reads the persisted language selection, defaulting to
// German -> English.
func (s *Server) languagePair() (source, target string) {
	source, ok := s.settings.Get(settingSourceLanguage)
	if !ok {
		source = "de"
	}
	target, ok = s.settings.Get(settingTargetLanguage)
	if !ok {
		target = "en"
	}
	return source, target
}

func (s *Server) renderTranslatePage(w http.ResponseWriter, results []domain.Example, text string) {
	source, target := s.languagePair()
	s.templates.ExecuteTemplate(w, "translate", map[string]interface{}{
		"Text":       text,
		"Results":    results,
		"Languages":  translate.Languages(),
		"Source":     source,
		"Target":     target,
		"Categories": domain.Categories(),
		"Enabled":    s.translator != nil,
	})
}
