package git

import (
	"fmt"
	"strings"
	"time"
)

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Identity returns the "Name <email>" form used to aggregate activity.
func (s Signature) Identity() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

type Commit struct {
	Hash         string
	ParentHashes []string
	Author       Signature
	Committer    Signature
	Message      string
	TreeHash     string
}

// Summary returns the first line of the commit message, truncated to 80
// runes. Truncation counts runes, not bytes, so a multi-byte subject is
// never cut mid-rune.
func (c *Commit) Summary() string {
	firstLine := strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0]
	runes := []rune(firstLine)
	if len(runes) > 80 {
		return string(runes[:77]) + "..."
	}
	return firstLine
}

type EntryKind uint8

const (
	EntryTree EntryKind = iota
	EntryBlob
)

func (k EntryKind) String() string {
	switch k {
	case EntryTree:
		return "tree"
	case EntryBlob:
		return "blob"
	}
	return fmt.Sprintf("EntryKind(%d)", uint8(k))
}

// Entry is one named child of a tree. Kind discriminates the closed set of
// object kinds an entry can point at; consumers switch on it exhaustively.
type Entry struct {
	Name string
	Kind EntryKind
	Hash string
}

type Tree struct {
	Hash string
}

type Blob struct {
	Hash   string
	Data   []byte
	Binary bool
}

// Tag pairs a tag name with the commit it ultimately points at. Annotated
// tags are peeled to their target commit by the adapter.
type Tag struct {
	Name string
	Hash string
}
