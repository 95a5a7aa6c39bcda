package git

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// memAdapter is an in-memory object graph for tests. History walks follow
// the first-parent chain from the requested tip, most recent first.
type memAdapter struct {
	refs     map[string]string // ref name or id -> commit hash
	commits  map[string]*Commit
	trees    map[string][]Entry
	blobs    map[string]*Blob
	branches []string
	tags     []Tag
	diffs    map[string]string // "from..to" -> patch text
}

func newMemAdapter() *memAdapter {
	return &memAdapter{
		refs:    map[string]string{},
		commits: map[string]*Commit{},
		trees:   map[string][]Entry{},
		blobs:   map[string]*Blob{},
		diffs:   map[string]string{},
	}
}

func (m *memAdapter) ResolveRef(ref string) (*Commit, error) {
	hash, ok := m.refs[ref]
	if !ok {
		if _, ok := m.commits[ref]; ok {
			hash = ref
		} else {
			return nil, fmt.Errorf("resolve %q: %w", ref, ErrInvalidRef)
		}
	}
	commit, ok := m.commits[hash]
	if !ok {
		return nil, fmt.Errorf("dereference %q: %w", ref, ErrObjectNotFound)
	}
	return commit, nil
}

func (m *memAdapter) Parents(c *Commit) ([]*Commit, error) {
	parents := make([]*Commit, 0, len(c.ParentHashes))
	for _, hash := range c.ParentHashes {
		parent, ok := m.commits[hash]
		if !ok {
			return nil, fmt.Errorf("parent %s: %w", hash, ErrObjectNotFound)
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

func (m *memAdapter) RootTree(c *Commit) (*Tree, error) {
	if _, ok := m.trees[c.TreeHash]; !ok {
		return nil, fmt.Errorf("tree %s: %w", c.TreeHash, ErrObjectNotFound)
	}
	return &Tree{Hash: c.TreeHash}, nil
}

func (m *memAdapter) Entries(t *Tree) ([]Entry, error) {
	entries, ok := m.trees[t.Hash]
	if !ok {
		return nil, fmt.Errorf("tree %s: %w", t.Hash, ErrObjectNotFound)
	}
	return entries, nil
}

func (m *memAdapter) ReadBlob(oid string) (*Blob, error) {
	blob, ok := m.blobs[oid]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", oid, ErrObjectNotFound)
	}
	return blob, nil
}

func (m *memAdapter) Diff(from, to *Commit) (string, error) {
	fromKey := ""
	if from != nil {
		fromKey = from.Hash
	}
	return m.diffs[fromKey+".."+to.Hash], nil
}

func (m *memAdapter) Log(fromHash string) (CommitIter, error) {
	if _, ok := m.commits[fromHash]; !ok {
		return nil, errors.New("unknown log start " + fromHash)
	}
	return &memCommitIter{adapter: m, next: fromHash}, nil
}

func (m *memAdapter) ListBranches() ([]string, error) { return m.branches, nil }

func (m *memAdapter) ListTags() ([]Tag, error) { return m.tags, nil }

type memCommitIter struct {
	adapter *memAdapter
	next    string
}

func (i *memCommitIter) Next() (*Commit, error) {
	if i.next == "" {
		return nil, io.EOF
	}
	commit, ok := i.adapter.commits[i.next]
	if !ok {
		return nil, io.EOF
	}
	if len(commit.ParentHashes) > 0 {
		i.next = commit.ParentHashes[0]
	} else {
		i.next = ""
	}
	return commit, nil
}

func (i *memCommitIter) Close() {}

// addLinearHistory appends n commits on top of the current tip of ref,
// returning the hashes most-recent-first.
func (m *memAdapter) addLinearHistory(ref, author string, n int) []string {
	parent := m.refs[ref]
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var hashes []string
	for i := range n {
		hash := fmt.Sprintf("%s-%04d", ref, len(m.commits)+1)
		commit := &Commit{
			Hash:    hash,
			Author:  Signature{Name: author, Email: author + "@example.com", When: base.Add(time.Duration(i) * time.Hour)},
			Message: fmt.Sprintf("commit %d on %s", i+1, ref),
		}
		if parent != "" {
			commit.ParentHashes = []string{parent}
		}
		m.commits[hash] = commit
		parent = hash
		hashes = append([]string{hash}, hashes...)
	}
	m.refs[ref] = parent
	return hashes
}
