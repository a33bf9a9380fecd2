package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"petclinic/internal/platform/validation"
)

// DateLayout es el formato de fechas de los formularios.
const DateLayout = "2006-01-02"

var (
	ErrMalformedRequest = errors.New("malformed request")

	timeType = reflect.TypeOf(time.Time{})
)

// Validator inspecciona un objeto ya bindeado y devuelve sus errores de campo.
type Validator[T any] interface {
	Validate(target T) validation.Errors
}

// ValidatorFunc adapta una función a Validator.
type ValidatorFunc[T any] func(target T) validation.Errors

func (f ValidatorFunc[T]) Validate(target T) validation.Errors { return f(target) }

// Converter convierte el valor crudo de un parámetro al tipo de un campo.
type Converter func(raw string) (reflect.Value, error)

// Conversions registra conversores por tipo de campo destino.
type Conversions struct {
	byType map[reflect.Type]Converter
}

func NewConversions() *Conversions {
	return &Conversions{byType: make(map[reflect.Type]Converter)}
}

// RegisterConverter asocia fn a los campos de tipo V.
func RegisterConverter[V any](c *Conversions, fn func(raw string) (V, error)) {
	t := reflect.TypeOf((*V)(nil)).Elem()
	c.byType[t] = func(raw string) (reflect.Value, error) {
		v, err := fn(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&v).Elem(), nil
	}
}

func (c *Conversions) lookup(t reflect.Type) (Converter, bool) {
	if c == nil {
		return nil, false
	}
	fn, ok := c.byType[t]
	return fn, ok
}

// BindingResult acumula el objeto bindeado y sus errores de campo.
type BindingResult struct {
	objectName string
	target     any
	errors     validation.Errors
}

func (r *BindingResult) ObjectName() string { return r.objectName }

func (r *BindingResult) Target() any { return r.target }

func (r *BindingResult) HasErrors() bool { return len(r.errors) > 0 }

func (r *BindingResult) Errors() validation.Errors { return r.errors }

func (r *BindingResult) FieldError(field string) (validation.FieldError, bool) {
	return r.errors.Get(field)
}

// RejectValue agrega un error sobre field.
func (r *BindingResult) RejectValue(field, code, message string) {
	r.errors.Add(validation.FieldError{Field: field, Code: code, Message: message})
}

// AddErrors agrega errores ya construidos (p.ej. de un Validator).
func (r *BindingResult) AddErrors(errs validation.Errors) {
	for _, fe := range errs {
		r.errors.Add(fe)
	}
}

// Model devuelve un mapa nuevo con el objeto bajo su nombre y los errores bajo "errors".
// Se puede completar con más atributos antes de renderizar.
func (r *BindingResult) Model() Model {
	return Model{
		r.objectName: r.target,
		"errors":     r.errors,
	}
}

// Binder copia parámetros de request a los campos de target según el tag `form`.
//
//   - `form:"lastName"` bindea el parámetro lastName
//   - `form:"-"` ignora el campo
//   - sin tag se usa el nombre del campo con la inicial en minúscula
//
// Los structs embebidos se recorren. Un parámetro ausente no toca el campo.
type Binder[T any] struct {
	target      T
	result      *BindingResult
	disallowed  map[string]struct{}
	conversions *Conversions
	validators  []Validator[T]
}

// NewBinder crea un binder sobre target, que debe ser un puntero a struct.
func NewBinder[T any](target T, objectName string) *Binder[T] {
	return &Binder[T]{
		target:     target,
		result:     &BindingResult{objectName: objectName, target: target},
		disallowed: make(map[string]struct{}),
	}
}

func (b *Binder[T]) SetDisallowedFields(fields ...string) {
	for _, f := range fields {
		b.disallowed[f] = struct{}{}
	}
}

func (b *Binder[T]) SetConversions(c *Conversions) { b.conversions = c }

func (b *Binder[T]) AddValidators(vs ...Validator[T]) {
	b.validators = append(b.validators, vs...)
}

func (b *Binder[T]) Target() T { return b.target }

func (b *Binder[T]) Result() *BindingResult { return b.result }

// BindRequest parsea query y cuerpo de formulario y los bindea.
func (b *Binder[T]) BindRequest(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	b.Bind(r.Form)
	return nil
}

// Bind aplica values sobre el target. Los fallos de conversión quedan como
// errores typeMismatch en el resultado.
func (b *Binder[T]) Bind(values url.Values) {
	rv := reflect.ValueOf(b.target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("web: binder target must be a non-nil pointer to struct, got %T", b.target))
	}
	b.bindStruct(rv.Elem(), values)
}

// Validate corre los validadores registrados y agrega sus errores.
func (b *Binder[T]) Validate() {
	for _, v := range b.validators {
		b.result.AddErrors(v.Validate(b.target))
	}
}

func (b *Binder[T]) bindStruct(rv reflect.Value, values url.Values) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			b.bindStruct(fv, values)
			continue
		}
		if !fv.CanSet() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}
		if _, no := b.disallowed[name]; no {
			continue
		}

		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		raw := vals[0]

		if err := b.setField(fv, raw); err != nil {
			msg := "invalid value"
			if fv.Type() == timeType {
				msg = "invalid date"
			}
			b.result.errors.Add(validation.FieldError{
				Field:         name,
				Code:          validation.CodeTypeMismatch,
				Message:       msg,
				RejectedValue: raw,
			})
		}
	}
}

func (b *Binder[T]) setField(fv reflect.Value, raw string) error {
	if conv, ok := b.conversions.lookup(fv.Type()); ok {
		v, err := conv(raw)
		if err != nil {
			return err
		}
		fv.Set(v)
		return nil
	}

	if fv.Type() == timeType {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			fv.Set(reflect.Zero(timeType))
			return nil
		}
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			fv.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			fv.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			fv.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "on", "yes":
			fv.SetBool(true)
		case "":
			fv.SetBool(false)
		default:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			fv.SetBool(v)
		}
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("form")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	r := []rune(sf.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r), false
}
