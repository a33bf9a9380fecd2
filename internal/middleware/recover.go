package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"petclinic/internal/platform/web"
)

// Recover captura panics de los handlers y responde con la página de error,
// igual que un error devuelto por el handler.
func Recover(x *web.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler corta la respuesta a propósito; se deja seguir.
				if e, ok := rec.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(rec)
				}
				x.Error(w, r, &PanicError{Value: rec})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// PanicError envuelve el valor recuperado de un panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
