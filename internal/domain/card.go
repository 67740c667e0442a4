package domain

// Category classifies a flashcard. The set is closed, seeded into the
// database at bootstrap, and not user-extensible.
type Category string

const (
	CategoryWord    Category = "Word"
	CategoryGrammar Category = "Grammar"
	CategoryContext Category = "Context"
)

// CategoryAll is the listing wildcard, not a real category.
const CategoryAll = "All"

// Categories returns the closed category set in seed order.
func Categories() []Category {
	return []Category{CategoryWord, CategoryGrammar, CategoryContext}
}

// Valid reports whether c is one of the seeded categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWord, CategoryGrammar, CategoryContext:
		return true
	}
	return false
}

// Flashcard is a single saved question-answer pair.
type Flashcard struct {
	ID       int64
	Question string
	Answer   string
	Category Category
}

// QuizCard is the slice of a flashcard a quiz traverses.
// Category is deliberately not carried into a quiz.
type QuizCard struct {
	ID       int64
	Question string
	Answer   string
}

// Example is a generated usage example for a word: Question holds the word
// in source-language context, Answer its target-language rendering.
type Example struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
