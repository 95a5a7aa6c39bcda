package git

// Adapter abstracts the primitive object-graph queries the engine needs.
//
// The default implementation is backed by go-git, but the interface allows
// alternative implementations (e.g. a git CLI shell-out) without changing
// the engine. All methods are read-only; objects are immutable once
// written, so implementations need no locking for concurrent reads.
type Adapter interface {
	// ResolveRef resolves a branch name, tag name, or raw object id to a
	// commit. Fails with ErrInvalidRef when the name does not resolve and
	// ErrObjectNotFound when resolution succeeds but the target object is
	// missing.
	ResolveRef(ref string) (*Commit, error)
	// Parents dereferences a commit's parent hashes in order. The first
	// parent is the mainline parent.
	Parents(c *Commit) ([]*Commit, error)
	// RootTree returns the tree a commit points at.
	RootTree(c *Commit) (*Tree, error)
	// Entries lists a tree's children in storage order.
	Entries(t *Tree) ([]Entry, error)
	// ReadBlob loads blob content plus a binary/text classification.
	ReadBlob(oid string) (*Blob, error)
	// Diff renders a unified patch from one commit to another. A nil from
	// commit diffs against the empty tree.
	Diff(from, to *Commit) (string, error)
	// Log streams history from the given commit hash, most recent first.
	Log(fromHash string) (CommitIter, error)

	ListBranches() ([]string, error)
	ListTags() ([]Tag, error)
}

// CommitIter streams commits from a history walk. Next returns io.EOF when
// the walk is exhausted. Close releases the walk; it is safe to call after
// EOF.
type CommitIter interface {
	Next() (*Commit, error)
	Close()
}
