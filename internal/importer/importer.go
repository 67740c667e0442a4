// Package importer bulk-loads flashcards from deck files on disk.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/parser"
)

// Store is the slice of the flashcard store the importer needs.
type Store interface {
	CreateFlashcard(question, answer string, category domain.Category) (int64, error)
	ListFlashcards(category, searchPrefix string) ([]domain.Flashcard, error)
}

// Report summarizes one import run.
type Report struct {
	Parsed   int // entries found in deck files
	Created  int // new flashcards written
	Skipped  int // entries already present
	Invalid  int // entries rejected (bad category, empty fields)
	Failures []error
}

// Run walks dir for .md deck files, parses them, and creates a flashcard
// for every entry not already stored. An entry is "already stored" when a
// flashcard with the same question, answer, and category exists, so
// re-importing the same deck is safe. Entries without a category tag get
// defaultCategory. Problems with individual files or entries are collected
// in the report, not fatal.
func Run(db Store, dir string, defaultCategory domain.Category) (Report, error) {
	var report Report

	existing, err := existingKeys(db)
	if err != nil {
		return report, err
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			report.Failures = append(report.Failures, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}

		for _, entry := range entries {
			report.Parsed++

			category := domain.Category(entry.Category)
			if entry.Category == "" {
				category = defaultCategory
			}
			if !category.Valid() {
				slog.Warn("skipping deck entry with unknown category",
					"file", path, "category", entry.Category, "question", entry.Question)
				report.Invalid++
				continue
			}

			key := cardKey(entry.Question, entry.Answer, category)
			if existing[key] {
				report.Skipped++
				continue
			}

			if _, err := db.CreateFlashcard(entry.Question, entry.Answer, category); err != nil {
				report.Invalid++
				report.Failures = append(report.Failures, fmt.Errorf("creating card from %s: %w", path, err))
				continue
			}
			existing[key] = true
			report.Created++
		}
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("failed to walk deck directory %s: %w", dir, walkErr)
	}

	slog.Info("deck import complete",
		"dir", dir,
		"parsed", report.Parsed,
		"created", report.Created,
		"skipped", report.Skipped,
		"invalid", report.Invalid,
		"errors", len(report.Failures),
	)
	return report, nil
}

func existingKeys(db Store) (map[string]bool, error) {
	cards, err := db.ListFlashcards(domain.CategoryAll, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load existing flashcards: %w", err)
	}
	keys := make(map[string]bool, len(cards))
	for _, c := range cards {
		keys[cardKey(c.Question, c.Answer, c.Category)] = true
	}
	return keys, nil
}

func cardKey(question, answer string, category domain.Category) string {
	return question + "\x00" + answer + "\x00" + string(category)
}
