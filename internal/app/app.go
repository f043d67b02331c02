// Package app composes the deck manager, quote picker and tab switcher into
// one session. Every UI event runs to completion under a single lock, so the
// components below never see concurrent access.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/flashquote/internal/deck"
	"github.com/conorfennell/flashquote/internal/domain"
	"github.com/conorfennell/flashquote/internal/quote"
	"github.com/conorfennell/flashquote/internal/storage"
	"github.com/conorfennell/flashquote/internal/tabs"
)

// ErrUnknownOp is returned by ParseOp for names that are not a deck operation.
var ErrUnknownOp = errors.New("unknown flashcard operation")

// Op names a deck operation triggered from the flashcard screen.
type Op string

const (
	OpNext     Op = "next"
	OpPrevious Op = "previous"
	OpToggle   Op = "toggle"
	OpAdd      Op = "add"
	OpLoad     Op = "load"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
)

// ParseOp converts an operation name into an Op.
func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpNext, OpPrevious, OpToggle, OpAdd, OpLoad, OpUpdate, OpDelete:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Journal records applied events. *storage.DB satisfies it.
type Journal interface {
	InsertEntry(e storage.Entry) (int64, error)
	RecentEntries(limit int) ([]storage.Entry, error)
}

// Snapshot is everything the UI needs to draw the active screen.
type Snapshot struct {
	Session string
	Tab     tabs.Tab
	Deck    deck.View
	Quote   domain.Quote
}

// App is one user session.
type App struct {
	mu      sync.Mutex
	session string
	deck    *deck.Manager
	quotes  *quote.Picker
	tabs    *tabs.Switcher

	journal Journal
	log     *slog.Logger
	now     func() time.Time
	rngSrc  rand.Source
}

// Option configures an App.
type Option func(*App)

// WithJournal records applied events to j.
func WithJournal(j Journal) Option {
	return func(a *App) { a.journal = j }
}

// WithLogger sets the logger. The slog default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithClock sets the time source for card IDs and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithRandSource sets the randomness behind quote selection.
func WithRandSource(src rand.Source) Option {
	return func(a *App) { a.rngSrc = src }
}

// New starts a session on the flashcards tab with cards as the deck.
func New(cards []domain.Flashcard, opts ...Option) (*App, error) {
	a := &App{
		session: uuid.NewString(),
		tabs:    tabs.New(),
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	d, err := deck.New(cards, deck.WithClock(a.now))
	if err != nil {
		return nil, fmt.Errorf("failed to build deck: %w", err)
	}
	a.deck = d

	var quoteOpts []quote.Option
	if a.rngSrc != nil {
		quoteOpts = append(quoteOpts, quote.WithSource(a.rngSrc))
	}
	a.quotes = quote.NewPicker(quoteOpts...)

	a.log = a.log.With("session", a.session)
	a.log.Info("Session started", "cards", d.Len(), "journal", a.journal != nil)
	return a, nil
}

// Session returns the session ID stamped on journal entries.
func (a *App) Session() string {
	return a.session
}

// Flashcards applies op to the deck. The submitted text fields become the
// drafts first, so typing survives navigation; add and update commit them.
func (a *App) Flashcards(op Op, question, answer string) deck.View {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.deck.SetDrafts(question, answer)

	var applied bool
	switch op {
	case OpNext:
		applied = a.deck.Next()
	case OpPrevious:
		applied = a.deck.Previous()
	case OpToggle:
		applied = a.deck.ToggleAnswer()
	case OpAdd:
		applied = a.deck.AddCard(question, answer)
	case OpLoad:
		applied = a.deck.LoadCurrentIntoDrafts()
	case OpUpdate:
		applied = a.deck.UpdateCurrent(question, answer)
	case OpDelete:
		card, ok := a.deck.Current()
		applied = a.deck.DeleteCurrent()
		if applied && ok {
			a.record(string(op), sql.NullInt64{Int64: card.ID, Valid: true}, card.Question)
		}
		return a.deck.View()
	}

	if !applied {
		a.log.Debug("Flashcard operation ignored", "op", op, "cards", a.deck.Len())
		return a.deck.View()
	}
	if card, ok := a.deck.Current(); ok {
		a.record(string(op), sql.NullInt64{Int64: card.ID, Valid: true}, "")
	}
	return a.deck.View()
}

// NewQuote draws a fresh quote.
func (a *App) NewQuote() domain.Quote {
	a.mu.Lock()
	defer a.mu.Unlock()

	q := a.quotes.NewQuote()
	a.record("quote", sql.NullInt64{}, q.Author)
	return q
}

// SelectTab switches screens and returns the resulting snapshot.
func (a *App) SelectTab(tab tabs.Tab) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tabs.Active() != tab {
		a.tabs.Select(tab)
		a.record("tab", sql.NullInt64{}, string(tab))
	}
	return a.snapshot()
}

// Snapshot returns the current state of every screen.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

func (a *App) snapshot() Snapshot {
	return Snapshot{
		Session: a.session,
		Tab:     a.tabs.Active(),
		Deck:    a.deck.View(),
		Quote:   a.quotes.Current(),
	}
}

// Activity returns up to limit journal entries, newest first. Without a
// journal it returns nil.
func (a *App) Activity(limit int) ([]storage.Entry, error) {
	if a.journal == nil {
		return nil, nil
	}
	entries, err := a.journal.RecentEntries(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}
	return entries, nil
}

// record appends an entry to the journal. Failures are logged and otherwise
// ignored: the journal never changes what the user sees.
func (a *App) record(action string, cardID sql.NullInt64, detail string) {
	if a.journal == nil {
		return
	}
	_, err := a.journal.InsertEntry(storage.Entry{
		Session:    a.session,
		Action:     action,
		CardID:     cardID,
		Detail:     detail,
		RecordedAt: a.now(),
	})
	if err != nil {
		a.log.Warn("Failed to record activity", "action", action, "error", err)
	}
}
