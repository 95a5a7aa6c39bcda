package git

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
)

// gogitAdapter implements Adapter on top of a go-git repository.
type gogitAdapter struct {
	repo *gitlib.Repository
	path string
}

// OpenAdapter opens the repository at repoPath (worktree or bare) and
// returns an Adapter over its object graph.
func OpenAdapter(repoPath string) (Adapter, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &gogitAdapter{repo: repo, path: abs}, nil
}

func (a *gogitAdapter) ResolveRef(ref string) (*Commit, error) {
	hash, err := a.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, ErrInvalidRef)
	}
	commit, err := a.commitByHash(*hash)
	if err != nil {
		return nil, fmt.Errorf("dereference %q: %w", ref, err)
	}
	return commit, nil
}

func (a *gogitAdapter) Parents(c *Commit) ([]*Commit, error) {
	parents := make([]*Commit, 0, len(c.ParentHashes))
	for _, hash := range c.ParentHashes {
		parent, err := a.commitByHash(plumbing.NewHash(hash))
		if err != nil {
			return nil, fmt.Errorf("parent %s: %w", hash, err)
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

func (a *gogitAdapter) RootTree(c *Commit) (*Tree, error) {
	hash := plumbing.NewHash(c.TreeHash)
	if _, err := a.repo.TreeObject(hash); err != nil {
		return nil, fmt.Errorf("tree %s: %w", c.TreeHash, ErrObjectNotFound)
	}
	return &Tree{Hash: c.TreeHash}, nil
}

func (a *gogitAdapter) Entries(t *Tree) ([]Entry, error) {
	tree, err := a.repo.TreeObject(plumbing.NewHash(t.Hash))
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", t.Hash, ErrObjectNotFound)
	}
	entries := make([]Entry, 0, len(tree.Entries))
	for _, te := range tree.Entries {
		switch te.Mode {
		case filemode.Dir:
			entries = append(entries, Entry{Name: te.Name, Kind: EntryTree, Hash: te.Hash.String()})
		case filemode.Submodule:
			// Submodule gitlinks have no backing object in this graph.
			continue
		default:
			entries = append(entries, Entry{Name: te.Name, Kind: EntryBlob, Hash: te.Hash.String()})
		}
	}
	return entries, nil
}

func (a *gogitAdapter) ReadBlob(oid string) (*Blob, error) {
	blob, err := a.repo.BlobObject(plumbing.NewHash(oid))
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", oid, ErrObjectNotFound)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", oid, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", oid, err)
	}
	isBinary, err := binary.IsBinary(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("classify blob %s: %w", oid, err)
	}
	return &Blob{Hash: oid, Data: data, Binary: isBinary}, nil
}

func (a *gogitAdapter) Diff(from, to *Commit) (string, error) {
	var fromTree *object.Tree
	if from != nil {
		var err error
		fromTree, err = a.repo.TreeObject(plumbing.NewHash(from.TreeHash))
		if err != nil {
			return "", fmt.Errorf("tree %s: %w", from.TreeHash, ErrObjectNotFound)
		}
	}
	toTree, err := a.repo.TreeObject(plumbing.NewHash(to.TreeHash))
	if err != nil {
		return "", fmt.Errorf("tree %s: %w", to.TreeHash, ErrObjectNotFound)
	}
	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return "", fmt.Errorf("diff trees: %w", err)
	}
	if len(changes) == 0 {
		return "", nil
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("render patch: %w", err)
	}
	return patch.String(), nil
}

func (a *gogitAdapter) Log(fromHash string) (CommitIter, error) {
	iter, err := a.repo.Log(&gitlib.LogOptions{
		From:  plumbing.NewHash(fromHash),
		Order: gitlib.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	return &gogitCommitIter{iter: iter}, nil
}

func (a *gogitAdapter) ListBranches() ([]string, error) {
	refs, err := a.repo.Branches()
	if err != nil {
		return nil, err
	}
	defer refs.Close()
	var branches []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (a *gogitAdapter) ListTags() ([]Tag, error) {
	refs, err := a.repo.Tags()
	if err != nil {
		return nil, err
	}
	defer refs.Close()
	var tags []Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		hash, ok := a.peelTagCommitHash(ref.Hash())
		if !ok {
			return nil
		}
		tags = append(tags, Tag{Name: ref.Name().Short(), Hash: hash.String()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// peelTagCommitHash follows annotated tag objects until it reaches a commit.
// Lightweight tags point directly at a commit.
func (a *gogitAdapter) peelTagCommitHash(hash plumbing.Hash) (plumbing.Hash, bool) {
	if hash == plumbing.ZeroHash {
		return plumbing.ZeroHash, false
	}
	if _, err := a.repo.CommitObject(hash); err == nil {
		return hash, true
	}
	cur := hash
	for range 8 {
		tag, err := a.repo.TagObject(cur)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			cur = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

func (a *gogitAdapter) commitByHash(hash plumbing.Hash) (*Commit, error) {
	commit, err := a.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, ErrObjectNotFound)
	}
	return convertCommit(commit), nil
}

func convertCommit(c *object.Commit) *Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, hash := range c.ParentHashes {
		parents = append(parents, hash.String())
	}
	return &Commit{
		Hash:         c.Hash.String(),
		ParentHashes: parents,
		Author:       convertSignature(c.Author),
		Committer:    convertSignature(c.Committer),
		Message:      c.Message,
		TreeHash:     c.TreeHash.String(),
	}
}

func convertSignature(sig object.Signature) Signature {
	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

type gogitCommitIter struct {
	iter object.CommitIter
}

func (i *gogitCommitIter) Next() (*Commit, error) {
	commit, err := i.iter.Next()
	if err != nil {
		return nil, err
	}
	return convertCommit(commit), nil
}

func (i *gogitCommitIter) Close() {
	i.iter.Close()
}
