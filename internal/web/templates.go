package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"path"

	"github.com/thiagokokada/gitweb-go/internal/git"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"short":    shortHash,
	"joinPath": path.Join,
}).ParseFS(templateFS, "templates/*.tmpl"))

type indexData struct {
	Repos []git.Summary
}

type logData struct {
	Repo     string
	Ref      string
	Page     int
	Commits  []*git.Commit
	HasMore  bool
	Branches []string
	Tags     []git.Tag
}

func (d logData) PrevPage() int { return d.Page - 1 }
func (d logData) NextPage() int { return d.Page + 1 }

type commitData struct {
	Repo   string
	Commit *git.Commit
	Patch  string
}

type treeData struct {
	Repo    string
	Ref     string
	Path    string
	Entries []git.Entry
}

type blobData struct {
	Repo        string
	Ref         string
	Path        string
	Content     template.HTML
	ContentSize int
}

type statsData struct {
	Repo   string
	Report *git.StatsReport
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("render template", slog.String("template", name), slog.Any("error", err))
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
