package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"

	"checkdev-site/internal/profile"
	"checkdev-site/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const anonymousAuthor = "Anonymous"

var templateFuncs = template.FuncMap{
	"profileName": profileName,
	"subscribed":  subscribed,
}

func parseTemplates() (*template.Template, error) {
	return template.New("site").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func profileName(profiles map[int]utils.Optional[profile.Profile], id int) string {
	name := profiles[id].OrElse(profile.Profile{}).FirstName
	if name == "" {
		return anonymousAuthor
	}
	return name
}

func subscribed(subscriptions []int, categoryID int) bool {
	return slices.Contains(subscriptions, categoryID)
}

// render executes the named template into a buffer so a failing template
// never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
