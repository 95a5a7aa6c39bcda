package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/thiagokokada/gitweb-go/internal/git"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index", indexData{Repos: s.repos.List()})
}

// handleRepoRoot redirects a bare repository URL to the log of its default
// branch: master when present, otherwise the first branch.
func (s *Server) handleRepoRoot(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	branches, err := repo.Branches()
	if err != nil {
		respondError(w, r, err)
		return
	}
	branch := git.DefaultBranch(branches)
	if branch == "" {
		http.Error(w, "repository has no branches", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/%s/log/%s", repo.Name(), branch), http.StatusFound)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	ref := r.PathValue("ref")
	page := pageNumber(r)

	tip, err := repo.Commit(ref)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(tip.Hash, ref, strconv.Itoa(page))) {
		return
	}
	commits, err := repo.Commits(ref, s.pageSize, page*s.pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	hasMore, err := repo.HasMore(ref, s.pageSize, (page+1)*s.pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	branches, err := repo.Branches()
	if err != nil {
		respondError(w, r, err)
		return
	}
	tags, err := repo.Tags()
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.render(w, r, "log", logData{
		Repo:     repo.Name(),
		Ref:      ref,
		Page:     page,
		Commits:  commits,
		HasMore:  hasMore,
		Branches: branches,
		Tags:     tags,
	})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	commit, err := repo.Commit(r.PathValue("oid"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(commit.Hash, "patch")) {
		return
	}
	patch, err := repo.Patch(commit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.render(w, r, "commit", commitData{Repo: repo.Name(), Commit: commit, Patch: patch})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	repo, ref, entry, err := s.resolveEntry(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entry.Kind != git.EntryTree {
		http.Redirect(w, r, fmt.Sprintf("/%s/blob/%s/%s", repo.Name(), ref, r.PathValue("path")), http.StatusFound)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(entry.Hash, "tree")) {
		return
	}
	entries, err := repo.Entries(&git.Tree{Hash: entry.Hash})
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.render(w, r, "tree", treeData{
		Repo:    repo.Name(),
		Ref:     ref,
		Path:    r.PathValue("path"),
		Entries: entries,
	})
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	repo, ref, entry, err := s.resolveEntry(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entry.Kind != git.EntryBlob {
		http.Redirect(w, r, fmt.Sprintf("/%s/tree/%s/%s", repo.Name(), ref, r.PathValue("path")), http.StatusFound)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(entry.Hash, "blob")) {
		return
	}
	blob, err := repo.Blob(entry)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blob.Binary {
		http.Redirect(w, r, fmt.Sprintf("/%s/raw/%s/%s", repo.Name(), ref, r.PathValue("path")), http.StatusFound)
		return
	}
	s.render(w, r, "blob", blobData{
		Repo:        repo.Name(),
		Ref:         ref,
		Path:        r.PathValue("path"),
		Content:     highlightBlob(r.PathValue("path"), string(blob.Data)),
		ContentSize: len(blob.Data),
	})
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	repo, _, entry, err := s.resolveEntry(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entry.Kind != git.EntryBlob {
		http.Error(w, "not a file", http.StatusBadRequest)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(entry.Hash, "raw")) {
		return
	}
	blob, err := repo.Blob(entry)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if blob.Binary {
		w.Header().Set("Content-Type", "application/octet-stream")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write(blob.Data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	ref := r.PathValue("ref")
	tip, err := repo.Commit(ref)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if writeCacheValidator(w, r, git.CacheKey(tip.Hash, ref, "stats")) {
		return
	}
	report, err := repo.Stats(ref)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.render(w, r, "stats", statsData{Repo: repo.Name(), Report: report})
}

// handleCompare serves the unified diff of one file between two refs as
// plain text.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	from, to := r.PathValue("from"), r.PathValue("to")
	fromTip, err := repo.Commit(from)
	if err != nil {
		respondError(w, r, err)
		return
	}
	toTip, err := repo.Commit(to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	path := r.PathValue("path")
	if writeCacheValidator(w, r, git.CacheKey(fromTip.Hash, toTip.Hash, path)) {
		return
	}
	diffText, err := repo.FileDiff(from, to, path)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, diffText)
}

// resolveEntry resolves {repo}/{ref}/{path...} to a tree or blob entry.
func (s *Server) resolveEntry(r *http.Request) (*git.Repo, string, git.Entry, error) {
	repo, err := s.repos.Find(r.PathValue("repo"))
	if err != nil {
		return nil, "", git.Entry{}, err
	}
	ref := r.PathValue("ref")
	commit, err := repo.Commit(ref)
	if err != nil {
		return nil, "", git.Entry{}, err
	}
	root, err := repo.RootTree(commit)
	if err != nil {
		return nil, "", git.Entry{}, err
	}
	entry, err := repo.Resolve(root, git.SplitPath(r.PathValue("path")))
	if err != nil {
		return nil, "", git.Entry{}, err
	}
	return repo, ref, entry, nil
}

func pageNumber(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
