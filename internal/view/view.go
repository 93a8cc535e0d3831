package view

import (
	"embed"
	"html/template"
	"io"

	"mcq-checker/internal/domain"
	"mcq-checker/internal/dto"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer renders the single quiz page. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.gohtml").Funcs(template.FuncMap{
		"multipleChoice": func(q domain.Question) *domain.MultipleChoice {
			mc, _ := q.MultipleChoice()
			return mc
		},
		"freeForm": func(q domain.Question) *domain.FreeForm {
			ff, _ := q.FreeForm()
			return ff
		},
		"isGraded":   func(o domain.Outcome) bool { return o.Status == domain.StatusGraded },
		"isRevealed": func(o domain.Outcome) bool { return o.Status == domain.StatusRevealed },
	}).ParseFS(templateFS, "templates/page.gohtml")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for v.
func (r *Renderer) Render(w io.Writer, v *dto.ThemeView) error {
	if v.Themes == nil {
		v.Themes = []string{}
	}
	if v.Forget == nil {
		v.Forget = []string{}
	}
	return r.tmpl.Execute(w, v)
}
