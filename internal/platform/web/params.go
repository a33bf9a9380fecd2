package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathID lee un parámetro de ruta numérico positivo. ok=false si falta o no es válido.
func PathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
