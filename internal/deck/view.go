package deck

import (
	"fmt"

	"github.com/conorfennell/flashquote/internal/domain"
)

// EmptyPlaceholder is shown in place of a card when the deck is empty.
const EmptyPlaceholder = "No flashcards yet. Add one below!"

// View is a read-only render model of the deck state.
type View struct {
	Empty       bool
	Placeholder string
	CardID      int64
	Index       int
	Total       int
	Position    string // "Card N of M"
	Text        string // question or answer, depending on ShowAnswer
	ShowAnswer  bool
	ToggleLabel string

	QuestionDraft string
	AnswerDraft   string
}

// View snapshots the manager for rendering.
func (m *Manager) View() View {
	v := View{
		Total:         len(m.cards),
		ShowAnswer:    m.showAnswer,
		ToggleLabel:   "Show Answer",
		QuestionDraft: m.questionDraft,
		AnswerDraft:   m.answerDraft,
	}
	if m.showAnswer {
		v.ToggleLabel = "Show Question"
	}

	card, ok := m.Current()
	if !ok {
		v.Empty = true
		v.Placeholder = EmptyPlaceholder
		return v
	}
	v.CardID = card.ID
	v.Index = m.cursor
	v.Position = fmt.Sprintf("Card %d of %d", m.cursor+1, len(m.cards))
	v.Text = card.Question
	if m.showAnswer {
		v.Text = card.Answer
	}
	return v
}

// DefaultCards returns the deck every session starts with when no seed
// source is configured.
func DefaultCards() []domain.Flashcard {
	return []domain.Flashcard{
		{
			ID:       1,
			Question: "What is React Native?",
			Answer:   "A framework for building native apps using JavaScript and React.",
		},
		{
			ID:       2,
			Question: "What is a component?",
			Answer:   "A reusable piece of UI in React / React Native.",
		},
		{
			ID:       3,
			Question: "What hook lets you add state to a component?",
			Answer:   "The useState hook.",
		},
	}
}
