// Package quote picks quotes uniformly at random from a fixed catalog.
package quote

import (
	"math/rand/v2"

	"github.com/conorfennell/flashquote/internal/domain"
)

var catalog = [...]domain.Quote{
	{Text: "The future depends on what you do today.", Author: "Mahatma Gandhi"},
	{Text: "Success is the sum of small efforts, repeated day in and day out.", Author: "Robert Collier"},
	{Text: "It always seems impossible until it is done.", Author: "Nelson Mandela"},
	{Text: "Code is like humor. When you have to explain it, it’s bad.", Author: "Cory House"},
	{Text: "The best error message is the one that never shows up.", Author: "Thomas Fuchs"},
}

// Catalog returns a copy of the quotes available for selection.
func Catalog() []domain.Quote {
	return append([]domain.Quote(nil), catalog[:]...)
}

// Picker holds the currently displayed quote. It is not safe for concurrent use.
type Picker struct {
	rng     *rand.Rand
	current domain.Quote
}

// Option configures a Picker.
type Option func(*Picker)

// WithSource sets the random source used for sampling.
func WithSource(src rand.Source) Option {
	return func(p *Picker) {
		p.rng = rand.New(src)
	}
}

// NewPicker returns a Picker whose current quote is already drawn.
func NewPicker(opts ...Option) *Picker {
	p := &Picker{}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.NewQuote()
	return p
}

// NewQuote samples the catalog with replacement, so the same quote may come
// up twice in a row.
func (p *Picker) NewQuote() domain.Quote {
	p.current = catalog[p.rng.IntN(len(catalog))]
	return p.current
}

// Current returns the quote on display.
func (p *Picker) Current() domain.Quote {
	return p.current
}
