// Package quiz holds the in-memory state of one quiz run over a sampled
// card set: the traversal cursor, per-card correctness, and running tallies.
// Sessions perform no I/O of their own; the card set is sampled once,
// upfront, by the storage layer.
package quiz

import "github.com/wortkarte/wortkarte/internal/domain"

// State is the lifecycle phase of a session.
type State int

const (
	InProgress State = iota
	Completed
)

// Session traverses a fixed, ordered card set. It is owned by a single quiz
// flow at a time and is not safe for concurrent use.
//
// Invariant: CorrectCount + WrongCount == answered <= position <= len(cards).
type Session struct {
	cards       []domain.QuizCard
	position    int
	correctness []bool
	correct     int
	wrong       int
}

// Result pairs a quizzed card with whether the user knew it.
type Result struct {
	Card    domain.QuizCard
	Correct bool
}

// NewSession starts a session positioned at the first card. A session over
// zero cards is trivially Completed.
func NewSession(cards []domain.QuizCard) *Session {
	return &Session{cards: cards}
}

// State reports whether cards remain to be shown.
func (s *Session) State() State {
	if s.position < len(s.cards) {
		return InProgress
	}
	return Completed
}

// CurrentCard returns the card under the cursor, or nil once Completed.
func (s *Session) CurrentCard() *domain.QuizCard {
	if s.position >= len(s.cards) {
		return nil
	}
	return &s.cards[s.position]
}

// RecordAnswer records whether the user knew the current card. It does not
// advance the cursor; revealing the answer and proceeding are separate
// steps. Calling it once the session is Completed is a caller bug and is
// ignored.
func (s *Session) RecordAnswer(correct bool) {
	if s.State() == Completed {
		return
	}
	// At most one answer per card; a second record before advancing is a
	// caller bug and is ignored.
	if len(s.correctness) > s.position {
		return
	}
	s.correctness = append(s.correctness, correct)
	if correct {
		s.correct++
	} else {
		s.wrong++
	}
}

// Advance moves the cursor to the next card, transitioning to Completed
// after the last one. Advancing a Completed session is ignored.
func (s *Session) Advance() {
	if s.State() == Completed {
		return
	}
	s.position++
}

// RemoveCard drops the card with the given id from the session, together
// with its recorded correctness, keeping the remaining pairs aligned. Only
// valid once Completed (the results screen lets the user delete cards);
// unknown ids are a no-op. Deleting the card from durable storage is the
// caller's responsibility.
func (s *Session) RemoveCard(id int64) {
	if s.State() != Completed {
		return
	}
	for i, c := range s.cards {
		if c.ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			if i < len(s.correctness) {
				if s.correctness[i] {
					s.correct--
				} else {
					s.wrong--
				}
				s.correctness = append(s.correctness[:i], s.correctness[i+1:]...)
			}
			if s.position > len(s.cards) {
				s.position = len(s.cards)
			}
			return
		}
	}
}

// Results returns the quizzed cards paired with their correctness, in quiz
// order.
func (s *Session) Results() []Result {
	results := make([]Result, 0, len(s.correctness))
	for i, correct := range s.correctness {
		if i >= len(s.cards) {
			break
		}
		results = append(results, Result{Card: s.cards[i], Correct: correct})
	}
	return results
}

// ProgressFraction is how far through the card set the cursor is, from 0 to
// 1. An empty session reads as 0.
func (s *Session) ProgressFraction() float64 {
	if len(s.cards) == 0 {
		return 0
	}
	return float64(s.position) / float64(len(s.cards))
}

// CardCount returns the size of the sampled card set.
func (s *Session) CardCount() int {
	return len(s.cards)
}

// Position returns the zero-based cursor into the card set.
func (s *Session) Position() int {
	return s.position
}

// CorrectCount is the number of cards answered correctly so far.
func (s *Session) CorrectCount() int {
	return s.correct
}

// WrongCount is the number of cards answered incorrectly so far.
func (s *Session) WrongCount() int {
	return s.wrong
}
