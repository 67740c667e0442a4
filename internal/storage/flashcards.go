package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/wortkarte/wortkarte/internal/domain"
)

// CreateFlashcard inserts a new flashcard and returns its assigned id.
// Ids are assigned by the database, strictly increasing and never reused.
// Empty question/answer or an unseeded category is rejected with
// ErrValidation before anything is written.
func (db *DB) CreateFlashcard(question, answer string, category domain.Category) (int64, error) {
	if question == "" {
		return 0, fmt.Errorf("%w: question must not be empty", ErrValidation)
	}
	if answer == "" {
		return 0, fmt.Errorf("%w: answer must not be empty", ErrValidation)
	}
	if !category.Valid() {
		return 0, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	res, err := db.conn.Exec(`
		INSERT INTO flashcards (question, answer, category)
		VALUES (?, ?, ?)
	`, question, answer, string(category))
	if err != nil {
		return 0, fmt.Errorf("failed to insert flashcard: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for flashcard: %w", err)
	}
	return id, nil
}

// UpdateFlashcard rewrites the question and answer of an existing flashcard.
// The id and category are never changed. Updating a non-existent id is a
// silent no-op.
func (db *DB) UpdateFlashcard(id int64, question, answer string) error {
	_, err := db.conn.Exec(`
		UPDATE flashcards
		SET question = ?, answer = ?
		WHERE id = ?
	`, question, answer, id)
	if err != nil {
		return fmt.Errorf("failed to update flashcard %d: %w", id, err)
	}
	return nil
}

// DeleteFlashcard removes the matching flashcard. Deleting a non-existent id
// is a silent no-op.
func (db *DB) DeleteFlashcard(id int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM flashcards
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %d: %w", id, err)
	}
	return nil
}

// GetFlashcard retrieves a flashcard by id, or nil if it does not exist.
func (db *DB) GetFlashcard(id int64) (*domain.Flashcard, error) {
	var f domain.Flashcard
	row := db.conn.QueryRow(`
		SELECT id, question, answer, category
		FROM flashcards WHERE id = ?
	`, id)

	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Category)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Flashcard not found
		}
		return nil, fmt.Errorf("failed to find flashcard %d: %w", id, err)
	}
	return &f, nil
}

// ListFlashcards returns flashcards ordered most-recently-created first.
// A category of "All" disables the category predicate; a non-empty
// searchPrefix narrows to questions starting with it (case-sensitive).
// Active predicates AND together. Filters are built as parameterized
// clauses, never interpolated into the SQL.
func (db *DB) ListFlashcards(category, searchPrefix string) ([]domain.Flashcard, error) {
	var clauses []string
	var args []any

	if category != domain.CategoryAll {
		clauses = append(clauses, "category = ?")
		args = append(args, category)
	}
	if searchPrefix != "" {
		clauses = append(clauses, `question LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(searchPrefix)+"%")
	}

	query := `SELECT id, question, answer, category FROM flashcards`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Flashcard{}
	for rows.Next() {
		var f domain.Flashcard
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flashcard rows: %w", err)
	}
	return cards, nil
}

// SampleQuizCards draws up to count flashcards uniformly at random, without
// replacement, from the given categories. An empty category set means all
// categories are eligible. Fewer matching rows than count returns all
// matches. Each call samples afresh; nothing about previous quizzes is kept.
func (db *DB) SampleQuizCards(categories []domain.Category, count int) ([]domain.QuizCard, error) {
	query := `SELECT id, question, answer FROM flashcards`
	var args []any

	if len(categories) > 0 {
		placeholders := make([]string, len(categories))
		for i, c := range categories {
			placeholders[i] = "?"
			args = append(args, string(c))
		}
		query += " WHERE category IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY random() LIMIT ?"
	args = append(args, count)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sample quiz cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.QuizCard{}
	for rows.Next() {
		var c domain.QuizCard
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan quiz card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quiz card rows: %w", err)
	}
	return cards, nil
}

// CountFlashcards counts the flashcards whose category is in the given set.
// An empty set counts nothing and returns 0 without querying. Note the
// asymmetry with SampleQuizCards, where an empty set is unrestricted; this
// matches the observed app behavior and awaits product clarification.
func (db *DB) CountFlashcards(categories []domain.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(categories))
	args := make([]any, len(categories))
	for i, c := range categories {
		placeholders[i] = "?"
		args[i] = string(c)
	}

	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM flashcards
		WHERE category IN (`+strings.Join(placeholders, ", ")+`)
	`, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count flashcards: %w", err)
	}
	return count, nil
}

// escapeLike escapes the LIKE metacharacters so a search prefix matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
