package git

import (
	"fmt"
	"io"
	"log/slog"
)

// DefaultPageSize is the number of commits per log page, shared by the log
// view and its lookahead probe.
const DefaultPageSize = 10

// Commits returns a window of history reachable from ref, most recent
// first. skip commits are discarded before collecting up to limit; a limit
// <= 0 means no limit. Skipping past the end of history yields an empty
// slice, not an error, so scrolling past the last page stays ergonomic.
func (r *Repo) Commits(ref string, limit, skip int) ([]*Commit, error) {
	tip, err := r.Commit(ref)
	if err != nil {
		return nil, err
	}
	iter, err := r.adapter.Log(tip.Hash)
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	if skip < 0 {
		skip = 0
	}
	slog.Debug("history walk", slog.String("repo", r.name), slog.String("ref", ref),
		slog.Int("limit", limit), slog.Int("skip", skip))

	for range skip {
		if _, err := iter.Next(); err != nil {
			if err == io.EOF {
				return []*Commit{}, nil
			}
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
	}
	var commits []*Commit
	for limit <= 0 || len(commits) < limit {
		commit, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
		commits = append(commits, commit)
	}
	if commits == nil {
		commits = []*Commit{}
	}
	return commits, nil
}

// HasMore reports whether another page of history exists after offset. It
// probes by walking the next page and testing for emptiness, reusing the
// Commits primitive instead of a count query. The double walk is a
// deliberate trade-off: histories are expected to be shallow relative to
// request latency; a cached total-count index would be a drop-in
// replacement if that stops holding.
func (r *Repo) HasMore(ref string, pageSize, offset int) (bool, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	next, err := r.Commits(ref, pageSize, offset)
	if err != nil {
		return false, err
	}
	return len(next) > 0, nil
}
