package git

import (
	"fmt"
	"slices"
)

// Repo wraps one repository's object graph behind an Adapter. It owns no
// mutable state; every method materializes read-only views on demand, so a
// single Repo is safe for concurrent use.
type Repo struct {
	name    string
	path    string
	adapter Adapter
}

func NewRepo(name, path string, adapter Adapter) *Repo {
	return &Repo{name: name, path: path, adapter: adapter}
}

func (r *Repo) Name() string { return r.name }

func (r *Repo) Path() string { return r.path }

// Branches returns local branch names in adapter order. The order reflects
// underlying storage and is not guaranteed alphabetical.
func (r *Repo) Branches() ([]string, error) {
	return r.adapter.ListBranches()
}

func (r *Repo) BranchExists(name string) (bool, error) {
	branches, err := r.Branches()
	if err != nil {
		return false, err
	}
	return slices.Contains(branches, name), nil
}

func (r *Repo) Tags() ([]Tag, error) {
	return r.adapter.ListTags()
}

// Commit resolves a branch name, tag name, or raw object id to a commit.
func (r *Repo) Commit(refOrID string) (*Commit, error) {
	return r.adapter.ResolveRef(refOrID)
}

// CommitByTag resolves a tag name to its target commit. Unlike Commit, an
// unknown name fails with ErrTagNotFound rather than ErrInvalidRef so the
// caller can tell "no such tag" apart from a garbage ref.
func (r *Repo) CommitByTag(tagName string) (*Commit, error) {
	tags, err := r.Tags()
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if tag.Name == tagName {
			return r.adapter.ResolveRef(tag.Hash)
		}
	}
	return nil, fmt.Errorf("tag %q: %w", tagName, ErrTagNotFound)
}

// DefaultBranch picks the branch a bare repo name should land on: master
// when present, otherwise the first branch. Empty when there are no
// branches. This policy lives at the composition boundary, not inside Repo,
// so callers can test and override it independently.
func DefaultBranch(branches []string) string {
	if len(branches) == 0 {
		return ""
	}
	if slices.Contains(branches, "master") {
		return "master"
	}
	return branches[0]
}
