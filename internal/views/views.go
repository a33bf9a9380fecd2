// Package views tiene las páginas HTML de la clínica. Cada vista es un
// html/template embebido (layout + página) expuesto como templ.Component.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"petclinic/internal/platform/validation"
	"petclinic/internal/platform/web"
)

//go:embed templates
var templatesFS embed.FS

const (
	templatesDir = "templates"
	layoutFile   = "layout.html"
)

// Engine resuelve nombres de vista ("owners/ownerDetails") a componentes.
type Engine struct {
	pages map[string]*template.Template
}

// New parsea todas las páginas embebidas. Falla si alguna no compila.
func New() (*Engine, error) {
	e := &Engine{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(templatesFS, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" || path.Base(p) == layoutFile {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, templatesDir+"/"), ".html")
		t, err := template.New(layoutFile).
			Funcs(funcs).
			ParseFS(templatesFS, path.Join(templatesDir, layoutFile), p)
		if err != nil {
			return fmt.Errorf("parse view %s: %w", name, err)
		}
		e.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// MustNew es New para el arranque: las plantillas son embebidas, un error es un bug.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

// Names devuelve los nombres de vista disponibles.
func (e *Engine) Names() []string {
	out := make([]string, 0, len(e.pages))
	for name := range e.pages {
		out = append(out, name)
	}
	return out
}

func (e *Engine) Component(name string, model web.Model) (templ.Component, error) {
	t, ok := e.pages[name]
	if !ok {
		return nil, fmt.Errorf("view %q not found", name)
	}
	if model == nil {
		model = web.Model{}
	}
	return templ.FromGoHTML(t, model), nil
}

var funcs = template.FuncMap{
	"field":      newField,
	"fieldError": fieldError,
	"hasError":   hasError,
	"rejected":   rejected,
	"fmtDate":    fmtDate,
}

// field agrupa lo que necesita el template "field" del layout.
type field struct {
	Errors any
	Name   string
	Label  string
	Type   string
	Value  any
}

func newField(errs any, name, label, typ string, value any) field {
	return field{Errors: errs, Name: name, Label: label, Type: typ, Value: value}
}

func fieldErrors(errs any) validation.Errors {
	e, _ := errs.(validation.Errors)
	return e
}

func fieldError(errs any, name string) string {
	return fieldErrors(errs).Message(name)
}

func hasError(errs any, name string) bool {
	return fieldErrors(errs).Has(name)
}

// rejected devuelve el valor que escribió el usuario si fue rechazado por
// conversión; si no, el valor actual del campo.
func rejected(errs any, name string, value any) string {
	if fe, ok := fieldErrors(errs).Get(name); ok && fe.RejectedValue != "" {
		return fe.RejectedValue
	}
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return fmtDate(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(web.DateLayout)
}
