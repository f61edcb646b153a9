// Package scm stamps release artifacts with source checkout metadata.
package scm

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info describes the source checkout a build was produced from.
type Info struct {
	// Commit is the full HEAD commit hash.
	Commit string
	// Dirty reports whether the worktree had uncommitted changes.
	Dirty bool
}

// Detect returns checkout information for the repository containing dir,
// walking up to find the .git directory. A missing repository or an
// unborn HEAD is not an error: callers receive nil and record nothing.
func Detect(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil //nolint:nilnil // Absence of a checkout is a valid outcome.
	}

	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil //nolint:nilnil // Repository without commits.
	}

	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := &Info{Commit: head.Hash().String()}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repository: the commit alone is still useful.
		return info, nil
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	info.Dirty = !status.IsClean()

	return info, nil
}
