package git

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Summary describes one discovered repository for listing pages.
type Summary struct {
	Name string
	Path string
}

// Registry indexes the repositories found under a scan root by their
// sanitized, URL-safe name. The index is populated by an explicit Scan call
// (no first-access side effects) and guarded by an RWMutex so request
// handlers can read it concurrently. A rescan rebuilds and swaps the whole
// index, so duplicate discoveries are last-writer-wins and never corrupt
// the map.
type Registry struct {
	root string

	mu    sync.RWMutex
	repos map[string]*Repo

	watch watchState

	// open is swapped out by tests to inject fake adapters.
	open func(path string) (Adapter, error)
}

func NewRegistry(root string) *Registry {
	return &Registry{
		root:  root,
		repos: map[string]*Repo{},
		open:  OpenAdapter,
	}
}

// Scan walks the immediate children of the scan root and indexes every
// directory that opens as a git repository (worktree or bare). Directories
// that do not open are skipped, not fatal.
func (g *Registry) Scan() error {
	dirEntries, err := os.ReadDir(g.root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", g.root, err)
	}
	repos := map[string]*Repo{}
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}
		path := filepath.Join(g.root, dirEntry.Name())
		adapter, err := g.open(path)
		if err != nil {
			slog.Debug("skipping non-repository directory",
				slog.String("path", path), slog.Any("error", err))
			continue
		}
		name := SanitizeName(dirEntry.Name())
		repos[name] = NewRepo(name, path, adapter)
	}
	g.mu.Lock()
	g.repos = repos
	g.mu.Unlock()
	slog.Debug("registry scan complete", slog.String("root", g.root), slog.Int("repos", len(repos)))
	return nil
}

// List returns summaries of every indexed repository, sorted by name.
func (g *Registry) List() []Summary {
	g.mu.RLock()
	defer g.mu.RUnlock()
	summaries := make([]Summary, 0, len(g.repos))
	for _, repo := range g.repos {
		summaries = append(summaries, Summary{Name: repo.Name(), Path: repo.Path()})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}

// Find looks up a repository by its sanitized name. Exact, case-sensitive
// match only.
func (g *Registry) Find(name string) (*Repo, error) {
	g.mu.RLock()
	repo, ok := g.repos[name]
	g.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("repository %q: %w", name, ErrRepositoryNotFound)
	}
	return repo, nil
}

// SanitizeName turns a directory name into a URL-safe repository
// identifier: a trailing ".git" is dropped and anything outside
// [A-Za-z0-9._-] becomes a dash.
func SanitizeName(dir string) string {
	name := strings.TrimSuffix(dir, ".git")
	if name == "" {
		name = dir
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
