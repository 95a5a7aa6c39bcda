package git

import (
	"strings"
	"testing"
)

// newFileDiffRepo wires two single-commit refs whose trees hold different
// versions of greet.txt.
func newFileDiffRepo(t *testing.T) (*Repo, *memAdapter) {
	t.Helper()
	adapter := newMemAdapter()
	adapter.commits["old"] = &Commit{Hash: "old", TreeHash: "tree-old"}
	adapter.commits["new"] = &Commit{Hash: "new", ParentHashes: []string{"old"}, TreeHash: "tree-new"}
	adapter.refs["v1"] = "old"
	adapter.refs["v2"] = "new"
	adapter.trees["tree-old"] = []Entry{{Name: "greet.txt", Kind: EntryBlob, Hash: "blob-old"}}
	adapter.trees["tree-new"] = []Entry{{Name: "greet.txt", Kind: EntryBlob, Hash: "blob-new"}}
	adapter.blobs["blob-old"] = &Blob{Hash: "blob-old", Data: []byte("hello\nworld\n")}
	adapter.blobs["blob-new"] = &Blob{Hash: "blob-new", Data: []byte("hello\nthere\nworld\n")}
	return NewRepo("proj", "/srv/git/proj", adapter), adapter
}

func TestFileDiff_ChangedFile(t *testing.T) {
	t.Parallel()
	repo, _ := newFileDiffRepo(t)

	diffText, err := repo.FileDiff("v1", "v2", "greet.txt")
	if err != nil {
		t.Fatalf("FileDiff() error = %v", err)
	}
	if !strings.Contains(diffText, "+there") {
		t.Fatalf("diff missing added line: %s", diffText)
	}
	if !strings.Contains(diffText, "a/greet.txt") || !strings.Contains(diffText, "b/greet.txt") {
		t.Fatalf("diff missing file labels: %s", diffText)
	}
}

func TestFileDiff_MissingSideTreatedAsEmpty(t *testing.T) {
	t.Parallel()
	repo, adapter := newFileDiffRepo(t)
	adapter.trees["tree-old"] = nil

	diffText, err := repo.FileDiff("v1", "v2", "greet.txt")
	if err != nil {
		t.Fatalf("FileDiff() error = %v", err)
	}
	if !strings.Contains(diffText, "+hello") {
		t.Fatalf("added file should show all lines as new: %s", diffText)
	}
}

func TestFileDiff_BinaryShortCircuits(t *testing.T) {
	t.Parallel()
	repo, adapter := newFileDiffRepo(t)
	adapter.blobs["blob-new"].Binary = true

	diffText, err := repo.FileDiff("v1", "v2", "greet.txt")
	if err != nil {
		t.Fatalf("FileDiff() error = %v", err)
	}
	if !strings.Contains(diffText, "(binary files differ)") {
		t.Fatalf("binary diff = %q", diffText)
	}
}

func TestFileDiff_IdenticalContent(t *testing.T) {
	t.Parallel()
	repo, adapter := newFileDiffRepo(t)
	adapter.blobs["blob-new"].Data = adapter.blobs["blob-old"].Data

	diffText, err := repo.FileDiff("v1", "v2", "greet.txt")
	if err != nil {
		t.Fatalf("FileDiff() error = %v", err)
	}
	if !strings.Contains(diffText, "(no textual changes)") {
		t.Fatalf("identical diff = %q", diffText)
	}
}
