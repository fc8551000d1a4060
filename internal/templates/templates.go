package templates

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"strings"

	"tinyboard/internal/render"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"classes": func(v render.View) string { return strings.Join(v.Classes(), " ") },
}).ParseFS(files, "*.html"))

var commit = "dev"

// SetCommit records the build revision shown in page footers.
func SetCommit(c string) { commit = c }

// GamePage is the data for the game page.
type GamePage struct {
	GameID string
	Board  render.View
	Commit string
}

// WriteHomeHTML serves the home page template
func WriteHomeHTML(w http.ResponseWriter) {
	writeHeaders(w)
	execute(w, "home.html", struct{ Commit string }{commit})
}

// WriteGameHTML serves the game page with the board rendered server side.
func WriteGameHTML(w http.ResponseWriter, gameID string, v render.View) {
	writeHeaders(w)
	execute(w, "game.html", GamePage{GameID: gameID, Board: v, Commit: commit})
}

// WriteBoardHTML writes only the board markup.
func WriteBoardHTML(w io.Writer, v render.View) error {
	return pages.ExecuteTemplate(w, "board", v)
}

func writeHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
}

func execute(w http.ResponseWriter, name string, data any) {
	var sb strings.Builder
	if err := pages.ExecuteTemplate(&sb, name, data); err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, sb.String())
}
