// Package validation reúne errores de campo y reglas simples para formularios.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// Códigos de error usados por las reglas y los handlers.
const (
	CodeRequired     = "required"
	CodeNotEmpty     = "NotEmpty"
	CodeDigits       = "Digits"
	CodeFuture       = "future"
	CodeTypeMismatch = "typeMismatch"
	CodeNotFound     = "notFound"
	CodeDuplicate    = "duplicate"
)

// FieldError es un error asociado a un campo del objeto bindeado.
type FieldError struct {
	Field         string
	Code          string
	Message       string
	RejectedValue string
}

// Errors acumula errores de campo en orden de aparición.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Add(fe FieldError) {
	*e = append(*e, fe)
}

func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get devuelve el primer error del campo, si existe.
func (e Errors) Get(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Message devuelve el mensaje del primer error del campo o "".
func (e Errors) Message(field string) string {
	fe, _ := e.Get(field)
	return fe.Message
}

func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Rule es una comprobación que, si falla, produce Error.
type Rule struct {
	Check func() bool
	Error FieldError
}

// Apply ejecuta las reglas y devuelve los errores de las que fallaron (nil si ninguna).
func Apply(rules ...Rule) Errors {
	var errs Errors
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.Error)
		}
	}
	return errs
}

// NotEmpty exige un string con contenido (sin contar espacios).
func NotEmpty(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: FieldError{Field: field, Code: CodeNotEmpty, Message: "must not be empty"},
	}
}

// Required es como NotEmpty pero con el código y mensaje "required".
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: FieldError{Field: field, Code: CodeRequired, Message: CodeRequired},
	}
}

// Present exige que ok sea true (p.ej. una referencia no nil o una fecha no cero).
func Present(field string, ok bool) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: FieldError{Field: field, Code: CodeRequired, Message: CodeRequired},
	}
}

// Digits exige sólo dígitos y como mucho maxInt de ellos. Un valor vacío pasa;
// combinar con NotEmpty si el campo es obligatorio.
func Digits(field, value string, maxInt int) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			if len(value) > maxInt {
				return false
			}
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Error: FieldError{
			Field:         field,
			Code:          CodeDigits,
			Message:       fmt.Sprintf("numeric value out of bounds (<%d digits>.<0 digits> expected)", maxInt),
			RejectedValue: value,
		},
	}
}

// NotAfter exige que value no sea posterior a now, comparando por día.
// Una fecha cero pasa; combinar con Present si es obligatoria.
func NotAfter(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			if value.IsZero() {
				return true
			}
			return !dateOnly(value).After(dateOnly(now))
		},
		Error: FieldError{Field: field, Code: CodeFuture, Message: "must not be in the future"},
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
