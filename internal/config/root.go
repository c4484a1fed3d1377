package config

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"github.com/go-git/go-git/v5"
)

// DetectProjectRoot returns the top of the git work tree containing start,
// or start itself (made absolute) when it is not inside a repository.
func DetectProjectRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		abs = start
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("Not inside a git repository, using start directory", logfields.Dir(abs))
		return abs
	}
	wt, err := repo.Worktree()
	if err != nil {
		return abs
	}
	return wt.Filesystem.Root()
}
