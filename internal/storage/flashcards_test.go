package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wortkarte/wortkarte/internal/domain"
)

func mustCreate(t *testing.T, db *DB, question, answer string, category domain.Category) int64 {
	t.Helper()
	id, err := db.CreateFlashcard(question, answer, category)
	if err != nil {
		t.Fatalf("CreateFlashcard(%q, %q, %q) failed: %v", question, answer, category, err)
	}
	return id
}

func TestCreateFlashcardValidation(t *testing.T) {
	db := openTestDB(t)

	testCases := []struct {
		name     string
		question string
		answer   string
		category domain.Category
	}{
		{name: "empty question", question: "", answer: "dog", category: domain.CategoryWord},
		{name: "empty answer", question: "Hund", answer: "", category: domain.CategoryWord},
		{name: "unknown category", question: "Hund", answer: "dog", category: "Verb"},
		{name: "wildcard is not a category", question: "Hund", answer: "dog", category: "All"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.CreateFlashcard(tc.question, tc.answer, tc.category)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	cards, err := db.ListFlashcards("All", "")
	if err != nil {
		t.Fatalf("ListFlashcards failed: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("rejected input must not be written, found %d rows", len(cards))
	}
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	db := openTestDB(t)

	var prev int64
	for i := 0; i < 5; i++ {
		id := mustCreate(t, db, fmt.Sprintf("question %d", i), "answer", domain.CategoryWord)
		if id <= prev {
			t.Fatalf("expected id > %d, got %d", prev, id)
		}
		prev = id

		// Interleave deletes: ids must keep increasing, never be reused.
		if i == 2 {
			if err := db.DeleteFlashcard(id); err != nil {
				t.Fatalf("DeleteFlashcard failed: %v", err)
			}
		}
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	id := mustCreate(t, db, "Der Mann", "the man", domain.CategoryContext)

	got, err := db.GetFlashcard(id)
	if err != nil {
		t.Fatalf("GetFlashcard failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected flashcard, got nil")
	}
	want := domain.Flashcard{ID: id, Question: "Der Mann", Answer: "the man", Category: domain.CategoryContext}
	if *got != want {
		t.Errorf("round-trip mismatch: got %+v, want %+v", *got, want)
	}
}

func TestGetFlashcardNotFound(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetFlashcard(42)
	if err != nil {
		t.Fatalf("GetFlashcard failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing id, got %+v", *got)
	}
}

func TestUpdateFlashcard(t *testing.T) {
	db := openTestDB(t)

	id := mustCreate(t, db, "Hund", "dog", domain.CategoryWord)

	if err := db.UpdateFlashcard(id, "der Hund", "the dog"); err != nil {
		t.Fatalf("UpdateFlashcard failed: %v", err)
	}

	got, err := db.GetFlashcard(id)
	if err != nil {
		t.Fatalf("GetFlashcard failed: %v", err)
	}
	if got.Question != "der Hund" || got.Answer != "the dog" {
		t.Errorf("update not applied: got %+v", *got)
	}
	if got.Category != domain.CategoryWord {
		t.Errorf("update must not change category, got %q", got.Category)
	}
	if got.ID != id {
		t.Errorf("update must not change id, got %d", got.ID)
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	db := openTestDB(t)

	id := mustCreate(t, db, "Hund", "dog", domain.CategoryWord)

	if err := db.UpdateFlashcard(id+100, "x", "y"); err != nil {
		t.Fatalf("UpdateFlashcard on missing id failed: %v", err)
	}

	cards, err := db.ListFlashcards("All", "")
	if err != nil {
		t.Fatalf("ListFlashcards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Question != "Hund" || cards[0].Answer != "dog" {
		t.Errorf("table changed by no-op update: %+v", cards)
	}
}

func TestDeleteFlashcard(t *testing.T) {
	db := openTestDB(t)

	keep := mustCreate(t, db, "Haus", "house", domain.CategoryWord)
	drop := mustCreate(t, db, "Hund", "dog", domain.CategoryWord)

	if err := db.DeleteFlashcard(drop); err != nil {
		t.Fatalf("DeleteFlashcard failed: %v", err)
	}
	// Deleting again, and deleting a never-existing id, are silent no-ops.
	if err := db.DeleteFlashcard(drop); err != nil {
		t.Fatalf("repeat DeleteFlashcard failed: %v", err)
	}

	cards, err := db.ListFlashcards("All", "")
	if err != nil {
		t.Fatalf("ListFlashcards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != keep {
		t.Errorf("expected only card %d to remain, got %+v", keep, cards)
	}
}

func TestListFlashcards(t *testing.T) {
	db := openTestDB(t)

	hund := mustCreate(t, db, "Hund", "dog", domain.CategoryWord)
	haus := mustCreate(t, db, "Haus", "house", domain.CategoryWord)
	mann := mustCreate(t, db, "Der Mann", "the man", domain.CategoryContext)

	testCases := []struct {
		name     string
		category string
		prefix   string
		wantIDs  []int64
	}{
		{name: "all newest first", category: "All", prefix: "", wantIDs: []int64{mann, haus, hund}},
		{name: "category filter", category: "Word", prefix: "", wantIDs: []int64{haus, hund}},
		{name: "category and prefix", category: "Word", prefix: "Ha", wantIDs: []int64{haus}},
		{name: "prefix only", category: "All", prefix: "H", wantIDs: []int64{haus, hund}},
		{name: "prefix is case-sensitive", category: "All", prefix: "h", wantIDs: []int64{}},
		{name: "prefix not substring", category: "All", prefix: "und", wantIDs: []int64{}},
		{name: "no match is empty not error", category: "Grammar", prefix: "", wantIDs: []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := db.ListFlashcards(tc.category, tc.prefix)
			if err != nil {
				t.Fatalf("ListFlashcards(%q, %q) failed: %v", tc.category, tc.prefix, err)
			}
			if len(cards) != len(tc.wantIDs) {
				t.Fatalf("got %d cards, want %d: %+v", len(cards), len(tc.wantIDs), cards)
			}
			for i, want := range tc.wantIDs {
				if cards[i].ID != want {
					t.Errorf("position %d: got id %d, want %d", i, cards[i].ID, want)
				}
			}
		})
	}
}

func TestListPrefixMatchesLikeMetacharactersLiterally(t *testing.T) {
	db := openTestDB(t)

	mustCreate(t, db, "100% sicher", "100% sure", domain.CategoryContext)
	mustCreate(t, db, "100 Jahre", "100 years", domain.CategoryContext)

	cards, err := db.ListFlashcards("All", "100%")
	if err != nil {
		t.Fatalf("ListFlashcards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Question != "100% sicher" {
		t.Errorf("expected literal %% match only, got %+v", cards)
	}
}

func TestSampleQuizCards(t *testing.T) {
	db := openTestDB(t)

	wordIDs := make(map[int64]bool)
	for i := 0; i < 20; i++ {
		id := mustCreate(t, db, fmt.Sprintf("word %d", i), "answer", domain.CategoryWord)
		wordIDs[id] = true
	}
	for i := 0; i < 3; i++ {
		mustCreate(t, db, fmt.Sprintf("context %d", i), "answer", domain.CategoryContext)
	}

	t.Run("fewer matches than count returns all", func(t *testing.T) {
		cards, err := db.SampleQuizCards([]domain.Category{domain.CategoryContext}, 10)
		if err != nil {
			t.Fatalf("SampleQuizCards failed: %v", err)
		}
		if len(cards) != 3 {
			t.Errorf("got %d cards, want all 3 matches", len(cards))
		}
	})

	t.Run("sample is count distinct cards from the set", func(t *testing.T) {
		cards, err := db.SampleQuizCards([]domain.Category{domain.CategoryWord}, 10)
		if err != nil {
			t.Fatalf("SampleQuizCards failed: %v", err)
		}
		if len(cards) != 10 {
			t.Fatalf("got %d cards, want 10", len(cards))
		}
		seen := make(map[int64]bool)
		for _, c := range cards {
			if seen[c.ID] {
				t.Errorf("card %d sampled twice", c.ID)
			}
			seen[c.ID] = true
			if !wordIDs[c.ID] {
				t.Errorf("card %d is not in the Word category", c.ID)
			}
		}
	})

	t.Run("empty category set is unrestricted", func(t *testing.T) {
		cards, err := db.SampleQuizCards(nil, 100)
		if err != nil {
			t.Fatalf("SampleQuizCards failed: %v", err)
		}
		if len(cards) != 23 {
			t.Errorf("got %d cards, want all 23", len(cards))
		}
	})
}

func TestCountFlashcards(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 4; i++ {
		mustCreate(t, db, fmt.Sprintf("word %d", i), "answer", domain.CategoryWord)
	}
	mustCreate(t, db, "context", "answer", domain.CategoryContext)

	testCases := []struct {
		name       string
		categories []domain.Category
		want       int
	}{
		// An empty set counts nothing. SampleQuizCards treats the same
		// input as unrestricted; both behaviors are as observed.
		{name: "empty set is zero", categories: nil, want: 0},
		{name: "single category", categories: []domain.Category{domain.CategoryWord}, want: 4},
		{name: "two categories", categories: []domain.Category{domain.CategoryWord, domain.CategoryContext}, want: 5},
		{name: "unused category", categories: []domain.Category{domain.CategoryGrammar}, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.CountFlashcards(tc.categories)
			if err != nil {
				t.Fatalf("CountFlashcards failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
