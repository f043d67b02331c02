// Package gitsource keeps a local checkout of a git repository holding seed decks.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Sync clones a git repository if it doesn't exist at the given path,
// or pulls the latest changes if it does.
func Sync(ctx context.Context, repoURL, localPath string) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Info("Cloning seed repository", "url", repoURL, "path", localPath)
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL:   repoURL,
			Depth: 1,
		})
		if err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", repoURL, err)
		}
	case err == nil:
		slog.Info("Pulling seed repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
		}

		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
		}

		err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
		}
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}
	return nil
}

// LocalPath maps a git URL (https or scp-style) to a checkout directory
// under baseDir, e.g. https://github.com/a/b.git -> baseDir/github.com/a/b.
func LocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err == nil && (parsedURL.Scheme == "https" || parsedURL.Scheme == "http") && parsedURL.Host != "" {
		repoPath := strings.TrimSuffix(strings.Trim(parsedURL.Path, "/"), ".git")
		if repoPath == "" {
			return "", fmt.Errorf("git URL has no repository path: %s", repoURL)
		}
		return filepath.Join(baseDir, parsedURL.Host, repoPath), nil
	}

	// scp-style: git@github.com:owner/repo.git
	userHost, repoPath, ok := strings.Cut(repoURL, ":")
	if !ok {
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}
	_, host, ok := strings.Cut(userHost, "@")
	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	if !ok || host == "" || repoPath == "" {
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}
	return filepath.Join(baseDir, host, repoPath), nil
}
