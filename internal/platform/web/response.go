package web

import (
	"net/http"
	"strings"
)

// RedirectPrefix marca un nombre de vista como redirección ("redirect:/owners/7").
const RedirectPrefix = "redirect:"

// Model es el mapa de atributos que recibe una vista.
type Model map[string]any

// Response describe qué devolver al cliente: una vista con modelo, una
// redirección (vista con prefijo "redirect:"), un recurso estructurado o sólo
// un status. Responder se encarga de escribirla.
type Response struct {
	status   int
	view     string
	model    Model
	resource any
}

// Render devuelve una respuesta 200 que renderiza view con model.
func Render(view string, model Model) *Response {
	if model == nil {
		model = Model{}
	}
	return &Response{status: http.StatusOK, view: view, model: model}
}

// NotFound devuelve un 404 sin cuerpo.
func NotFound() *Response {
	return &Response{status: http.StatusNotFound}
}

// Resource devuelve un 200 cuyo cuerpo es v serializado según el Accept.
func Resource(v any) *Response {
	return &Response{status: http.StatusOK, resource: v}
}

func (r *Response) StatusCode() int { return r.status }

func (r *Response) ViewName() string { return r.view }

func (r *Response) Model() Model { return r.model }

func (r *Response) Resource() any { return r.resource }

func (r *Response) IsRedirect() bool {
	return strings.HasPrefix(r.view, RedirectPrefix)
}

// RedirectLocation devuelve el destino sin el prefijo, o "" si no es redirección.
func (r *Response) RedirectLocation() string {
	if !r.IsRedirect() {
		return ""
	}
	return strings.TrimPrefix(r.view, RedirectPrefix)
}
