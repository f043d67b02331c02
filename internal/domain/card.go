package domain

import (
	"errors"
	"strings"
)

var (
	// ErrBlankQuestion is returned when a card's question is empty after trimming.
	ErrBlankQuestion = errors.New("flashcard question cannot be blank")

	// ErrBlankAnswer is returned when a card's answer is empty after trimming.
	ErrBlankAnswer = errors.New("flashcard answer cannot be blank")
)

// Flashcard represents a single question-answer entry in a deck.
type Flashcard struct {
	ID       int64
	Question string
	Answer   string
}

// NewFlashcard trims the question and answer and returns a card carrying id.
// Both fields must be non-empty after trimming.
func NewFlashcard(id int64, question, answer string) (Flashcard, error) {
	q := strings.TrimSpace(question)
	a := strings.TrimSpace(answer)
	if q == "" {
		return Flashcard{}, ErrBlankQuestion
	}
	if a == "" {
		return Flashcard{}, ErrBlankAnswer
	}
	return Flashcard{ID: id, Question: q, Answer: a}, nil
}

// Quote is a quotation with its author.
type Quote struct {
	Text   string
	Author string
}
