// Package deck owns an ordered list of flashcards, the cursor pointing at the
// current card, the answer visibility flag and the add/edit draft buffers.
//
// Every operation reports whether it was applied. Operations that cannot
// apply (empty deck, blank input) leave all state untouched and return false;
// they never return an error. A Manager is not safe for concurrent use.
package deck

import (
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/flashquote/internal/domain"
)

// ErrDuplicateID is returned when a seed deck contains the same ID twice.
var ErrDuplicateID = errors.New("duplicate flashcard id")

// Manager holds the deck state for one session.
type Manager struct {
	cards      []domain.Flashcard
	cursor     int
	showAnswer bool

	questionDraft string
	answerDraft   string

	now    func() time.Time
	lastID int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used to mint card IDs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// New returns a Manager seeded with a copy of cards. The cursor starts on the
// first card with the question shown.
func New(cards []domain.Flashcard, opts ...Option) (*Manager, error) {
	m := &Manager{
		cards: make([]domain.Flashcard, 0, len(cards)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	seen := make(map[int64]bool, len(cards))
	for _, c := range cards {
		if seen[c.ID] {
			return nil, fmt.Errorf("seed card %d: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = true
		if c.ID > m.lastID {
			m.lastID = c.ID
		}
		m.cards = append(m.cards, c)
	}
	return m, nil
}

// nextID returns the current Unix millisecond time, bumped past every ID the
// deck has seen so that IDs stay unique even within one millisecond.
func (m *Manager) nextID() int64 {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

// Next moves the cursor forward, wrapping from the last card to the first.
func (m *Manager) Next() bool {
	if len(m.cards) == 0 {
		return false
	}
	m.cursor = (m.cursor + 1) % len(m.cards)
	m.showAnswer = false
	return true
}

// Previous moves the cursor back, wrapping from the first card to the last.
func (m *Manager) Previous() bool {
	if len(m.cards) == 0 {
		return false
	}
	if m.cursor == 0 {
		m.cursor = len(m.cards) - 1
	} else {
		m.cursor--
	}
	m.showAnswer = false
	return true
}

// ToggleAnswer flips between showing the question and the answer.
func (m *Manager) ToggleAnswer() bool {
	if len(m.cards) == 0 {
		return false
	}
	m.showAnswer = !m.showAnswer
	return true
}

// AddCard appends a new card and makes it current. Blank input is rejected
// without touching the deck or the drafts.
func (m *Manager) AddCard(question, answer string) bool {
	card, err := domain.NewFlashcard(0, question, answer)
	if err != nil {
		return false
	}
	card.ID = m.nextID()

	m.cards = append(m.cards, card)
	m.questionDraft = ""
	m.answerDraft = ""
	m.showAnswer = false
	m.cursor = len(m.cards) - 1
	return true
}

// UpdateCurrent replaces the current card's text, keeping its ID and position.
func (m *Manager) UpdateCurrent(question, answer string) bool {
	if len(m.cards) == 0 {
		return false
	}
	card, err := domain.NewFlashcard(m.cards[m.cursor].ID, question, answer)
	if err != nil {
		return false
	}
	m.cards[m.cursor] = card
	m.showAnswer = false
	return true
}

// DeleteCurrent removes the current card. The cursor keeps its index, so it
// lands on the card that followed, unless the removed card was last, in which
// case it moves to the new last card.
func (m *Manager) DeleteCurrent() bool {
	if len(m.cards) == 0 {
		return false
	}
	remaining := make([]domain.Flashcard, 0, len(m.cards)-1)
	remaining = append(remaining, m.cards[:m.cursor]...)
	remaining = append(remaining, m.cards[m.cursor+1:]...)
	m.cards = remaining
	m.showAnswer = false

	switch {
	case len(m.cards) == 0:
		m.cursor = 0
	case m.cursor >= len(m.cards):
		m.cursor = len(m.cards) - 1
	}
	return true
}

// LoadCurrentIntoDrafts copies the current card's text into the drafts.
func (m *Manager) LoadCurrentIntoDrafts() bool {
	if len(m.cards) == 0 {
		return false
	}
	m.questionDraft = m.cards[m.cursor].Question
	m.answerDraft = m.cards[m.cursor].Answer
	return true
}

// SetDrafts records the current contents of the add/edit text fields.
func (m *Manager) SetDrafts(question, answer string) {
	m.questionDraft = question
	m.answerDraft = answer
}

// Drafts returns the add/edit text field contents.
func (m *Manager) Drafts() (question, answer string) {
	return m.questionDraft, m.answerDraft
}

// Current returns the card under the cursor. ok is false for an empty deck.
func (m *Manager) Current() (card domain.Flashcard, ok bool) {
	if len(m.cards) == 0 {
		return domain.Flashcard{}, false
	}
	return m.cards[m.cursor], true
}

// Cards returns a copy of the deck in order.
func (m *Manager) Cards() []domain.Flashcard {
	out := make([]domain.Flashcard, len(m.cards))
	copy(out, m.cards)
	return out
}

func (m *Manager) Len() int            { return len(m.cards) }
func (m *Manager) Cursor() int         { return m.cursor }
func (m *Manager) ShowingAnswer() bool { return m.showAnswer }
