package web

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrorView es la vista usada para errores no controlados.
const ErrorView = "error"

// Views resuelve un nombre de vista y su modelo a un componente renderizable.
type Views interface {
	Component(name string, model Model) (templ.Component, error)
}

// HandlerFunc es la forma de los handlers de la app: devuelven una Response
// o un error, que termina en la página de error.
type HandlerFunc func(r *http.Request) (*Response, error)

// Responder escribe Responses sobre http.ResponseWriter.
type Responder struct {
	views Views
	log   *slog.Logger
}

func NewResponder(views Views, log *slog.Logger) *Responder {
	if log == nil {
		log = slog.Default()
	}
	return &Responder{views: views, log: log}
}

// Handle adapta h a http.HandlerFunc.
func (x *Responder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(r)
		if err != nil {
			x.Error(w, r, err)
			return
		}
		if resp == nil {
			x.Error(w, r, errors.New("handler returned no response"))
			return
		}
		if err := x.Write(w, r, resp); err != nil {
			x.Error(w, r, err)
		}
	}
}

// Write escribe resp. Las redirecciones se traducen a 302.
func (x *Responder) Write(w http.ResponseWriter, r *http.Request, resp *Response) error {
	switch {
	case resp.IsRedirect():
		http.Redirect(w, r, resp.RedirectLocation(), http.StatusFound)
		return nil
	case resp.Resource() != nil:
		return writeResource(w, r, resp.StatusCode(), resp.Resource())
	case resp.ViewName() == "":
		w.WriteHeader(resp.StatusCode())
		return nil
	default:
		return x.renderView(w, r, resp.StatusCode(), resp.ViewName(), resp.Model())
	}
}

// Error loguea err con un id de incidente y renderiza la vista de error.
func (x *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrMalformedRequest) {
		status = http.StatusBadRequest
	}

	incident := uuid.NewString()
	x.log.ErrorContext(r.Context(), "request failed",
		slog.String("incident", incident),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("err", err),
	)

	model := Model{
		"status":   status,
		"error":    http.StatusText(status),
		"message":  err.Error(),
		"incident": incident,
	}
	if rerr := x.renderView(w, r, status, ErrorView, model); rerr != nil {
		x.log.ErrorContext(r.Context(), "error page failed", slog.String("incident", incident), slog.Any("err", rerr))
		http.Error(w, http.StatusText(status), status)
	}
}

func (x *Responder) renderView(w http.ResponseWriter, r *http.Request, status int, name string, model Model) error {
	c, err := x.views.Component(name, model)
	if err != nil {
		return err
	}

	// Se renderiza a buffer para no dejar una página a medias si el template falla.
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}

type mediaType string

const (
	mediaJSON mediaType = "application/json"
	mediaXML  mediaType = "application/xml"
	mediaYAML mediaType = "application/yaml"
)

// negotiate elige JSON salvo que Accept pida XML o YAML explícitamente.
func negotiate(accept string) mediaType {
	for _, part := range strings.Split(accept, ",") {
		mt, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.ToLower(strings.TrimSpace(mt)) {
		case "application/json", "*/*":
			return mediaJSON
		case "application/xml", "text/xml":
			return mediaXML
		case "application/yaml", "application/x-yaml", "text/yaml":
			return mediaYAML
		}
	}
	return mediaJSON
}

func writeResource(w http.ResponseWriter, r *http.Request, status int, v any) error {
	var (
		body []byte
		err  error
	)

	mt := negotiate(r.Header.Get("Accept"))
	switch mt {
	case mediaXML:
		body, err = xml.Marshal(v)
		if err == nil {
			body = append([]byte(xml.Header), body...)
		}
	case mediaYAML:
		body, err = yaml.Marshal(v)
	default:
		body, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", mt, err)
	}

	w.Header().Set("Content-Type", string(mt))
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}
