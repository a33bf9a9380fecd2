// Package system tiene las páginas que no pertenecen a ninguna entidad.
package system

import (
	"errors"
	"net/http"

	"petclinic/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// ErrOups es el error que devuelve siempre /oups.
var ErrOups = errors.New("expected: handler used to showcase what happens when an error is raised")

func RegisterRoutes(r chi.Router, x *web.Responder) {
	r.Get("/", x.Handle(Welcome))
	r.Get("/oups", x.Handle(TriggerError))
	r.Get("/health", Health)
}

func Welcome(*http.Request) (*web.Response, error) {
	return web.Render("welcome", nil), nil
}

// TriggerError falla siempre; sirve para ver la página de error.
func TriggerError(*http.Request) (*web.Response, error) {
	return nil, ErrOups
}

// Health godoc
// @Summary Health check
// @Description Devuelve "ok" si el proceso está vivo.
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
