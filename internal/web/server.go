// Package web serves the browsing engine over HTTP. It owns routing,
// templating, and the mapping from engine failures to status codes; all
// repository semantics live in internal/git.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thiagokokada/gitweb-go/internal/git"
)

// RepoSource is the slice of the registry the server needs. Satisfied by
// *git.Registry; tests substitute a fixture.
type RepoSource interface {
	List() []git.Summary
	Find(name string) (*git.Repo, error)
}

type Server struct {
	repos    RepoSource
	pageSize int
}

func NewServer(repos RepoSource, pageSize int) *Server {
	if pageSize <= 0 {
		pageSize = git.DefaultPageSize
	}
	return &Server{repos: repos, pageSize: pageSize}
}

// Handler builds the route table. All routes are read-only GETs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /{repo}", s.handleRepoRoot)
	mux.HandleFunc("GET /{repo}/log/{ref}", s.handleLog)
	mux.HandleFunc("GET /{repo}/commit/{oid}", s.handleCommit)
	mux.HandleFunc("GET /{repo}/tree/{ref}", s.handleTree)
	mux.HandleFunc("GET /{repo}/tree/{ref}/{path...}", s.handleTree)
	mux.HandleFunc("GET /{repo}/blob/{ref}/{path...}", s.handleBlob)
	mux.HandleFunc("GET /{repo}/raw/{ref}/{path...}", s.handleRaw)
	mux.HandleFunc("GET /{repo}/stats/{ref}", s.handleStats)
	mux.HandleFunc("GET /{repo}/compare/{from}/{to}/{path...}", s.handleCompare)
	return mux
}

// respondError maps the engine's failure taxonomy to status codes. The
// not-found family stays distinguishable from an empty-but-valid result,
// which renders normally.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, git.ErrRepositoryNotFound),
		errors.Is(err, git.ErrTagNotFound),
		errors.Is(err, git.ErrPathNotFound),
		errors.Is(err, git.ErrObjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, git.ErrInvalidRef):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeCacheValidator sets the engine-derived cache key as a strong ETag
// and reports whether the client already holds the same version. Keys are
// derived from immutable object ids, so a match is always safe to serve
// from cache.
func writeCacheValidator(w http.ResponseWriter, r *http.Request, key string) (done bool) {
	etag := `"` + key + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
