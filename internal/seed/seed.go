// Package seed builds the deck a session starts with: the built-in cards, or
// cards read from markdown files in a local directory or a git checkout.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/flashquote/internal/deck"
	"github.com/conorfennell/flashquote/internal/domain"
	"github.com/conorfennell/flashquote/internal/fingerprint"
	"github.com/conorfennell/flashquote/internal/gitsource"
	"github.com/conorfennell/flashquote/internal/parser"
)

// Source describes where seed cards come from. An empty Source yields
// deck.DefaultCards.
type Source struct {
	Path     string // markdown file or directory; relative to the checkout when Repo is set
	Repo     string // git URL
	Checkout string // base directory for git checkouts
}

// Report summarises a seed load.
type Report struct {
	Files      int
	Parsed     int
	Skipped    int // blank question or answer
	Duplicates int
}

// Load resolves src into a list of cards with IDs 1..n.
func Load(ctx context.Context, src Source) ([]domain.Flashcard, Report, error) {
	if src.Path == "" && src.Repo == "" {
		return deck.DefaultCards(), Report{Parsed: len(deck.DefaultCards())}, nil
	}

	root := src.Path
	if src.Repo != "" {
		checkout, err := gitsource.LocalPath(src.Checkout, src.Repo)
		if err != nil {
			return nil, Report{}, err
		}
		if err := os.MkdirAll(filepath.Dir(checkout), 0o755); err != nil {
			return nil, Report{}, fmt.Errorf("failed to create checkout directory: %w", err)
		}
		if err := gitsource.Sync(ctx, src.Repo, checkout); err != nil {
			return nil, Report{}, err
		}
		root = filepath.Join(checkout, src.Path)
	}

	return loadPath(root)
}

func loadPath(root string) ([]domain.Flashcard, Report, error) {
	var (
		report Report
		cards  []domain.Flashcard
		seen   = make(map[string]bool)
	)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, err := parser.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		report.Files++

		for _, e := range entries {
			report.Parsed++
			card, err := domain.NewFlashcard(int64(len(cards)+1), e.Question, e.Answer)
			if err != nil {
				report.Skipped++
				slog.Warn("Skipping seed card", "file", path, "line", e.Line, "error", err)
				continue
			}
			hash := fingerprint.Hash(card.Question, card.Answer)
			if seen[hash] {
				report.Duplicates++
				slog.Debug("Duplicate seed card", "file", path, "line", e.Line, "hash", hash)
				continue
			}
			seen[hash] = true
			cards = append(cards, card)
		}
		return nil
	})
	if walkErr != nil {
		if errors.Is(walkErr, fs.ErrNotExist) {
			return nil, report, fmt.Errorf("seed path %s: %w", root, walkErr)
		}
		return nil, report, fmt.Errorf("error walking seed path %s: %w", root, walkErr)
	}

	slog.Info("Seed deck loaded",
		"path", root,
		"files", report.Files,
		"cards", len(cards),
		"skipped", report.Skipped,
		"duplicates", report.Duplicates,
	)
	return cards, report, nil
}
