package git

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

type AuthorActivity struct {
	Author  string
	Commits int
}

// StatsReport aggregates activity reachable from one ref.
type StatsReport struct {
	Ref          string
	TotalCommits int
	// Authors is ranked by commit count descending, ties broken
	// alphabetically by "Name <email>" identity.
	Authors []AuthorActivity
}

// Stats walks the full history reachable from ref once and aggregates the
// total commit count plus per-author counts. Walk order does not matter for
// aggregation; coverage does — each reachable commit is visited exactly
// once by the adapter's log stream.
func (r *Repo) Stats(ref string) (*StatsReport, error) {
	tip, err := r.Commit(ref)
	if err != nil {
		return nil, err
	}
	iter, err := r.adapter.Log(tip.Hash)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	total := 0
	byAuthor := map[string]int{}
	for {
		commit, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
		total++
		byAuthor[commit.Author.Identity()]++
	}

	authors := make([]AuthorActivity, 0, len(byAuthor))
	for author, count := range byAuthor {
		authors = append(authors, AuthorActivity{Author: author, Commits: count})
	}
	slices.SortFunc(authors, func(a, b AuthorActivity) int {
		if a.Commits != b.Commits {
			return b.Commits - a.Commits
		}
		return strings.Compare(a.Author, b.Author)
	})
	return &StatsReport{Ref: ref, TotalCommits: total, Authors: authors}, nil
}
