package git

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// Resolve walks the tree rooted at root and returns the entry whose
// accumulated slash-joined path equals segments. The walk uses an explicit
// worklist carrying each pending tree's path prefix; every tree is expanded
// at most once (the graph is acyclic by construction, so no cycle check is
// needed). An empty path resolves to the root itself. A miss fails with
// ErrPathNotFound.
func (r *Repo) Resolve(root *Tree, segments []string) (Entry, error) {
	if len(segments) == 0 {
		return Entry{Name: "", Kind: EntryTree, Hash: root.Hash}, nil
	}
	want := path.Join(segments...)
	slog.Debug("tree walk", slog.String("repo", r.name), slog.String("path", want))

	type pending struct {
		tree   Tree
		prefix string
	}
	stack := []pending{{tree: *root, prefix: ""}}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries, err := r.adapter.Entries(&node.tree)
		if err != nil {
			return Entry{}, err
		}
		for _, entry := range entries {
			full := entry.Name
			if node.prefix != "" {
				full = node.prefix + "/" + entry.Name
			}
			if full == want {
				return entry, nil
			}
			if entry.Kind == EntryTree {
				stack = append(stack, pending{tree: Tree{Hash: entry.Hash}, prefix: full})
			}
		}
	}
	return Entry{}, fmt.Errorf("resolve %q: %w", want, ErrPathNotFound)
}

// SplitPath turns a slash-separated request path into segments, dropping
// leading/trailing slashes. An empty or all-slash path yields nil, which
// Resolve maps to the root entry.
func SplitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Blob reads the blob an entry points at. Tree entries are rejected; the
// caller is expected to have switched on Kind already.
func (r *Repo) Blob(entry Entry) (*Blob, error) {
	if entry.Kind != EntryBlob {
		return nil, fmt.Errorf("entry %q is a %s, not a blob", entry.Name, entry.Kind)
	}
	return r.adapter.ReadBlob(entry.Hash)
}

// Entries lists the children of a tree in adapter order.
func (r *Repo) Entries(t *Tree) ([]Entry, error) {
	return r.adapter.Entries(t)
}

// RootTree returns the tree a commit points at.
func (r *Repo) RootTree(c *Commit) (*Tree, error) {
	return r.adapter.RootTree(c)
}
