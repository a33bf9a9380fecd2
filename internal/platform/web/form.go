package web

import "net/http"

// FormFlow es el ciclo bind → validar → (re)mostrar o guardar de un POST de formulario.
//
// Prepare es opcional y corre después de los validadores, con acceso al
// resultado para reglas que dependen del contexto del handler.
// Invalid arma la respuesta cuando hay errores; Valid hace la escritura y
// devuelve normalmente una redirección.
type FormFlow[T any] struct {
	Binder  *Binder[T]
	Prepare func(target T, result *BindingResult)
	Invalid func(result *BindingResult) *Response
	Valid   func(target T) (*Response, error)
}

func (f FormFlow[T]) Process(r *http.Request) (*Response, error) {
	if err := f.Binder.BindRequest(r); err != nil {
		return nil, err
	}
	f.Binder.Validate()

	target := f.Binder.Target()
	result := f.Binder.Result()
	if f.Prepare != nil {
		f.Prepare(target, result)
	}

	if result.HasErrors() {
		return f.Invalid(result), nil
	}
	return f.Valid(target)
}
