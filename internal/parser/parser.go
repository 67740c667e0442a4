// Package parser reads deck files: line-oriented markdown where each entry
// is a "Q:" question, an "A:" answer, and an optional "T:" category tag,
// separated from the next entry by "---".
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	categoryPrefix = "T:"
)

// Entry is one parsed deck entry. Category is empty when the entry carries
// no "T:" line; the importer fills in its default.
type Entry struct {
	Question string
	Answer   string
	Category string
}

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
	readingCategory
)

// ParseFile reads a deck file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries. Questions and
// answers may span multiple lines; the category tag is a single line.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current Entry
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingQuestion:
			current.Question = content
		case readingAnswer:
			current.Answer = content
		case readingCategory:
			current.Category = strings.TrimSpace(content)
		}
		block = nil
	}

	finishEntry := func() {
		flushBlock()
		if current.Question != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		isQ := strings.HasPrefix(line, questionPrefix)
		isA := strings.HasPrefix(line, answerPrefix)
		isT := strings.HasPrefix(line, categoryPrefix)

		if line == "---" {
			finishEntry()
			continue
		}

		if isQ || isA || isT {
			flushBlock()

			switch {
			case isQ:
				if currentState != seeking { // a new question always starts a new entry
					finishEntry()
				}
				currentState = readingQuestion
				block = append(block, trimPrefix(line, questionPrefix))
			case isA:
				currentState = readingAnswer
				block = append(block, trimPrefix(line, answerPrefix))
			case isT:
				currentState = readingCategory
				block = append(block, trimPrefix(line, categoryPrefix))
			}
		} else if currentState != seeking {
			block = append(block, line)
		}
	}

	finishEntry() // finish the very last entry in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// trimPrefix strips the field marker plus at most one following space, so
// leading indentation inside a value survives.
func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	if strings.HasPrefix(content, " ") {
		content = content[1:]
	}
	return content
}
