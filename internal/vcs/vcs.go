// Package vcs resolves the current branch name for prompt display.
// Resolution is best-effort: any failure yields the empty string, and
// the result never affects dispatch.
package vcs

import (
	git "github.com/go-git/go-git/v6"
)

// Branch returns the short name of the branch checked out at or above
// dir, or "" when dir is not inside a repository, the repository has
// no commits, or HEAD is detached.
func Branch(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}
