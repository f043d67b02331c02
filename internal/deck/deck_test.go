package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashquote/internal/domain"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newManager(t *testing.T, cards ...domain.Flashcard) *Manager {
	t.Helper()
	m, err := New(cards, WithClock(fixedClock(1_700_000_000_000)))
	require.NoError(t, err)
	return m
}

func threeCards() []domain.Flashcard {
	return []domain.Flashcard{
		{ID: 1, Question: "Q1", Answer: "A1"},
		{ID: 2, Question: "Q2", Answer: "A2"},
		{ID: 3, Question: "Q3", Answer: "A3"},
	}
}

func TestNew(t *testing.T) {
	t.Run("copies seed", func(t *testing.T) {
		seed := threeCards()
		m := newManager(t, seed...)
		seed[0].Question = "changed"

		card, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "Q1", card.Question)
		assert.Equal(t, 0, m.Cursor())
		assert.False(t, m.ShowingAnswer())
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := New([]domain.Flashcard{{ID: 1, Question: "a", Answer: "b"}, {ID: 1, Question: "c", Answer: "d"}})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
}

func TestNavigation(t *testing.T) {
	t.Run("next wraps around", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		for _, want := range []int{1, 2, 0, 1} {
			require.True(t, m.Next())
			assert.Equal(t, want, m.Cursor())
		}
	})

	t.Run("previous wraps around", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		for _, want := range []int{2, 1, 0, 2} {
			require.True(t, m.Previous())
			assert.Equal(t, want, m.Cursor())
		}
	})

	t.Run("next cycles back after len steps", func(t *testing.T) {
		for start := 0; start < 3; start++ {
			m := newManager(t, threeCards()...)
			for i := 0; i < start; i++ {
				m.Next()
			}
			m.Next()
			for i := 0; i < m.Len(); i++ {
				m.Next()
			}
			assert.Equal(t, (start+1)%3, m.Cursor(), "start %d", start)
		}
	})

	t.Run("previous inverts next", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		for i := 0; i < 5; i++ {
			before := m.Cursor()
			m.Next()
			m.Previous()
			assert.Equal(t, before, m.Cursor())
			m.Next()
		}
	})

	t.Run("single card stays put", func(t *testing.T) {
		m := newManager(t, domain.Flashcard{ID: 9, Question: "Q", Answer: "A"})
		assert.True(t, m.Next())
		assert.Equal(t, 0, m.Cursor())
		assert.True(t, m.Previous())
		assert.Equal(t, 0, m.Cursor())
	})

	t.Run("empty deck is a no-op", func(t *testing.T) {
		m := newManager(t)
		assert.False(t, m.Next())
		assert.False(t, m.Previous())
		assert.Equal(t, 0, m.Cursor())
	})
}

func TestToggleAnswer(t *testing.T) {
	t.Run("empty deck", func(t *testing.T) {
		m := newManager(t)
		assert.False(t, m.ToggleAnswer())
		assert.False(t, m.ShowingAnswer())
	})

	t.Run("flips exactly", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		assert.True(t, m.ToggleAnswer())
		assert.True(t, m.ShowingAnswer())
		assert.True(t, m.ToggleAnswer())
		assert.False(t, m.ShowingAnswer())
	})

	resets := map[string]func(m *Manager) bool{
		"next":     func(m *Manager) bool { return m.Next() },
		"previous": func(m *Manager) bool { return m.Previous() },
		"add":      func(m *Manager) bool { return m.AddCard("Q4", "A4") },
		"update":   func(m *Manager) bool { return m.UpdateCurrent("new q", "new a") },
		"delete":   func(m *Manager) bool { return m.DeleteCurrent() },
	}
	for name, op := range resets {
		t.Run(name+" hides answer", func(t *testing.T) {
			m := newManager(t, threeCards()...)
			m.ToggleAnswer()
			require.True(t, op(m))
			assert.False(t, m.ShowingAnswer())
		})
	}

	t.Run("load keeps visibility", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.ToggleAnswer()
		require.True(t, m.LoadCurrentIntoDrafts())
		assert.True(t, m.ShowingAnswer())
	})
}

func TestAddCard(t *testing.T) {
	blanks := []struct {
		name     string
		question string
		answer   string
	}{
		{"empty question", "", "A"},
		{"whitespace question", "  \t", "A"},
		{"empty answer", "Q", ""},
		{"whitespace answer", "Q", "\n "},
	}
	for _, tc := range blanks {
		t.Run(tc.name, func(t *testing.T) {
			m := newManager(t, threeCards()...)
			m.Next()
			m.SetDrafts("draft q", "draft a")

			assert.False(t, m.AddCard(tc.question, tc.answer))
			assert.Equal(t, threeCards(), m.Cards())
			assert.Equal(t, 1, m.Cursor())
			q, a := m.Drafts()
			assert.Equal(t, "draft q", q)
			assert.Equal(t, "draft a", a)
		})
	}

	t.Run("appends and selects", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.SetDrafts("  Q4 ", " A4")

		require.True(t, m.AddCard("  Q4 ", " A4"))
		assert.Equal(t, 4, m.Len())
		assert.Equal(t, 3, m.Cursor())

		card, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "Q4", card.Question)
		assert.Equal(t, "A4", card.Answer)
		assert.Equal(t, int64(1_700_000_000_000), card.ID)

		q, a := m.Drafts()
		assert.Empty(t, q)
		assert.Empty(t, a)
	})

	t.Run("ids stay unique within one millisecond", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		for i := 0; i < 5; i++ {
			require.True(t, m.AddCard("Q", "A"))
		}
		seen := map[int64]bool{}
		for _, c := range m.Cards() {
			assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
			seen[c.ID] = true
		}
	})

	t.Run("ids never collide with seeded ids", func(t *testing.T) {
		m, err := New([]domain.Flashcard{{ID: 50, Question: "Q", Answer: "A"}}, WithClock(fixedClock(10)))
		require.NoError(t, err)
		require.True(t, m.AddCard("Q2", "A2"))
		card, _ := m.Current()
		assert.Equal(t, int64(51), card.ID)
	})

	t.Run("into empty deck", func(t *testing.T) {
		m := newManager(t)
		require.True(t, m.AddCard("Q", "A"))
		assert.Equal(t, 1, m.Len())
		assert.Equal(t, 0, m.Cursor())
	})
}

func TestUpdateCurrent(t *testing.T) {
	t.Run("replaces text and keeps id", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.Next()

		require.True(t, m.UpdateCurrent(" new q ", " new a "))
		card, _ := m.Current()
		assert.Equal(t, domain.Flashcard{ID: 2, Question: "new q", Answer: "new a"}, card)
		assert.Equal(t, 3, m.Len())
		assert.Equal(t, 1, m.Cursor())
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		assert.False(t, m.UpdateCurrent("", "a"))
		assert.False(t, m.UpdateCurrent("q", "  "))
		assert.Equal(t, threeCards(), m.Cards())
	})

	t.Run("empty deck", func(t *testing.T) {
		m := newManager(t)
		assert.False(t, m.UpdateCurrent("q", "a"))
		assert.Equal(t, 0, m.Len())
	})
}

func TestDeleteCurrent(t *testing.T) {
	t.Run("single card", func(t *testing.T) {
		m := newManager(t, domain.Flashcard{ID: 1, Question: "Q", Answer: "A"})
		require.True(t, m.DeleteCurrent())
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 0, m.Cursor())
		_, ok := m.Current()
		assert.False(t, ok)
	})

	t.Run("last card moves cursor back", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.Previous()
		require.True(t, m.DeleteCurrent())
		assert.Equal(t, 2, m.Len())
		assert.Equal(t, 1, m.Cursor())
		card, _ := m.Current()
		assert.Equal(t, int64(2), card.ID)
	})

	t.Run("middle card keeps index", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.Next()
		require.True(t, m.DeleteCurrent())
		assert.Equal(t, 1, m.Cursor())
		card, _ := m.Current()
		assert.Equal(t, int64(3), card.ID)
	})

	t.Run("empty deck", func(t *testing.T) {
		m := newManager(t)
		assert.False(t, m.DeleteCurrent())
	})
}

func TestLoadCurrentIntoDrafts(t *testing.T) {
	m := newManager(t)
	assert.False(t, m.LoadCurrentIntoDrafts())

	m = newManager(t, threeCards()...)
	m.Next()
	require.True(t, m.LoadCurrentIntoDrafts())
	q, a := m.Drafts()
	assert.Equal(t, "Q2", q)
	assert.Equal(t, "A2", a)
	assert.Equal(t, threeCards(), m.Cards())
}

func TestScenario(t *testing.T) {
	m := newManager(t, domain.Flashcard{ID: 1, Question: "A?", Answer: "1"})

	require.True(t, m.AddCard("B?", "2"))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "B?", m.View().Text)

	require.True(t, m.Previous())
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, "A?", m.View().Text)

	require.True(t, m.DeleteCurrent())
	require.Equal(t, 1, m.Len())
	card, _ := m.Current()
	assert.Equal(t, "B?", card.Question)
	assert.Equal(t, "2", card.Answer)
	assert.Equal(t, 0, m.Cursor())
}

func TestView(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		v := newManager(t).View()
		assert.True(t, v.Empty)
		assert.Equal(t, EmptyPlaceholder, v.Placeholder)
		assert.Empty(t, v.Position)
	})

	t.Run("question then answer", func(t *testing.T) {
		m := newManager(t, threeCards()...)
		m.Next()
		v := m.View()
		assert.Equal(t, "Card 2 of 3", v.Position)
		assert.Equal(t, "Q2", v.Text)
		assert.Equal(t, "Show Answer", v.ToggleLabel)

		m.ToggleAnswer()
		v = m.View()
		assert.Equal(t, "A2", v.Text)
		assert.Equal(t, "Show Question", v.ToggleLabel)
	})

	t.Run("default cards", func(t *testing.T) {
		m, err := New(DefaultCards())
		require.NoError(t, err)
		assert.Equal(t, "What is React Native?", m.View().Text)
		assert.Equal(t, "Card 1 of 3", m.View().Position)
	})
}
