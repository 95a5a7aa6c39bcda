package git

import (
	"fmt"
	"strings"
)

// Patch renders the unified diff of a commit against its first parent.
// Merge commits diff against the mainline parent only; further parents are
// ignored. A root commit diffs against the empty tree, so its patch shows
// every file as added.
func (r *Repo) Patch(commit *Commit) (string, error) {
	var parent *Commit
	if len(commit.ParentHashes) > 0 {
		parents, err := r.adapter.Parents(commit)
		if err != nil {
			return "", err
		}
		parent = parents[0]
	}
	diffText, err := r.adapter.Diff(parent, commit)
	if err != nil {
		return "", err
	}
	header := FormatCommitHeader(commit)
	if strings.TrimSpace(diffText) == "" {
		return header + "\nNo file level changes.", nil
	}
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(diffText)
	if !strings.HasSuffix(diffText, "\n") {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func FormatCommitHeader(c *Commit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\n", c.Hash)
	appendSignatureLine(&b, "Author", c.Author)
	committer := c.Committer
	if committer.Name == "" && committer.Email == "" && committer.When.IsZero() {
		committer = c.Author
	}
	appendSignatureLine(&b, "Committer", committer)
	b.WriteString("\n")
	message := strings.TrimRight(c.Message, "\n")
	if message == "" {
		b.WriteString("    (no commit message)\n")
		return b.String()
	}
	for line := range strings.SplitSeq(message, "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "    %s\n", line)
	}
	return b.String()
}

func appendSignatureLine(b *strings.Builder, label string, sig Signature) {
	fmt.Fprintf(b, "%s: %s <%s>", label, sig.Name, sig.Email)
	if !sig.When.IsZero() {
		fmt.Fprintf(b, "  %s", sig.When.Format("2006-01-02 15:04:05 -0700"))
	}
	b.WriteByte('\n')
}
