package web

import (
	"strconv"
	"strings"
)

// Entity es lo mínimo que Support necesita de una entidad persistible.
type Entity interface {
	GetID() int
	IsNew() bool
}

// Support arma las respuestas habituales de los handlers de formularios para
// entidades de tipo T: vista con la entidad, vista con un BindingResult y
// redirección al detalle.
type Support[T Entity] struct {
	modelKey    string
	conversions *Conversions
}

// NewSupport crea un Support cuyo View pone la entidad bajo modelKey.
func NewSupport[T Entity](modelKey string, conversions *Conversions) *Support[T] {
	return &Support[T]{modelKey: modelKey, conversions: conversions}
}

func (s *Support[T]) View(entity T, view string) *Response {
	return s.ViewAs(entity, s.modelKey, view)
}

func (s *Support[T]) ViewAs(entity T, name, view string) *Response {
	return Render(view, Model{name: entity})
}

// ViewResult renderiza view con el modelo acumulado del binding (entidad + errores).
func (s *Support[T]) ViewResult(result *BindingResult, view string) *Response {
	return Render(view, result.Model())
}

func (s *Support[T]) RedirectTo(entity T, path string) *Response {
	return RedirectToID(entity.GetID(), path)
}

// Binder crea un binder para target con "id" deshabilitado y las conversiones del Support.
func (s *Support[T]) Binder(target T, objectName string) *Binder[T] {
	b := NewBinder(target, objectName)
	b.SetDisallowedFields("id")
	b.SetConversions(s.conversions)
	return b
}

// RedirectToID devuelve una redirección a path/id.
func RedirectToID(id int, path string) *Response {
	return Render(BuildRedirectURI(id, path), nil)
}

// BuildRedirectURI normaliza path a exactamente una barra inicial y una final
// y le agrega el id: ("owners", 7) y ("/owners/", 7) dan "redirect:/owners/7".
func BuildRedirectURI(id int, path string) string {
	var sb strings.Builder
	sb.WriteString(RedirectPrefix)
	if !strings.HasPrefix(path, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(path)
	if !strings.HasSuffix(path, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(strconv.Itoa(id))
	return sb.String()
}
