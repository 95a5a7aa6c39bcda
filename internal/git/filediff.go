package git

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// FileDiff renders the unified diff of one file's content between two refs.
// Either side may be missing, in which case it is treated as empty (the file
// was added or removed between the refs). Binary content on either side
// short-circuits to a placeholder line.
func (r *Repo) FileDiff(fromRef, toRef, filePath string) (string, error) {
	fromLines, fromBinary, err := r.blobLinesAt(fromRef, filePath)
	if err != nil {
		return "", err
	}
	toLines, toBinary, err := r.blobLinesAt(toRef, filePath)
	if err != nil {
		return "", err
	}
	if fromBinary || toBinary {
		return fmt.Sprintf("diff a/%s b/%s\n(binary files differ)\n", filePath, filePath), nil
	}
	ud := difflib.UnifiedDiff{
		A:        fromLines,
		B:        toLines,
		FromFile: fmt.Sprintf("a/%s", filePath),
		ToFile:   fmt.Sprintf("b/%s", filePath),
		Context:  3,
	}
	diffText, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", err
	}
	if diffText == "" {
		return "(no textual changes)\n", nil
	}
	return diffText, nil
}

// blobLinesAt resolves filePath under a ref's root tree and splits the blob
// into difflib lines. A missing path yields empty content rather than an
// error; other failures propagate.
func (r *Repo) blobLinesAt(ref, filePath string) ([]string, bool, error) {
	commit, err := r.Commit(ref)
	if err != nil {
		return nil, false, err
	}
	root, err := r.RootTree(commit)
	if err != nil {
		return nil, false, err
	}
	entry, err := r.Resolve(root, SplitPath(filePath))
	if err != nil {
		if isNotFound(err) {
			return []string{}, false, nil
		}
		return nil, false, err
	}
	blob, err := r.Blob(entry)
	if err != nil {
		return nil, false, err
	}
	if blob.Binary {
		return nil, true, nil
	}
	return difflib.SplitLines(string(blob.Data)), false, nil
}
