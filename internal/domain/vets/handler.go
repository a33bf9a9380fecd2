package vets

import (
	"encoding/xml"
	"net/http"

	"petclinic/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

const viewVetList = "vets/vetList"

func RegisterRoutes(r chi.Router, x *web.Responder, repo Repository) {
	h := NewHandler(repo)

	r.Get("/vets.html", x.Handle(h.ShowVetList))
	r.Get("/vets", x.Handle(h.ShowResourcesVetList))
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// vetsResponse es el sobre de la lista de veterinarios para JSON, XML y YAML.
type vetsResponse struct {
	XMLName xml.Name      `json:"-" xml:"vets" yaml:"-"`
	VetList []vetResponse `json:"vetList" xml:"vet" yaml:"vetList"`
}

// vetResponse representa un veterinario devuelto por la API.
type vetResponse struct {
	ID              int                 `json:"id" xml:"id" yaml:"id"`
	FirstName       string              `json:"firstName" xml:"firstName" yaml:"firstName"`
	LastName        string              `json:"lastName" xml:"lastName" yaml:"lastName"`
	Specialties     []specialtyResponse `json:"specialties" xml:"specialties" yaml:"specialties"`
	NrOfSpecialties int                 `json:"nrOfSpecialties" xml:"nrOfSpecialties" yaml:"nrOfSpecialties"`
}

type specialtyResponse struct {
	ID   int    `json:"id" xml:"id" yaml:"id"`
	Name string `json:"name" xml:"name" yaml:"name"`
}

func toVetsResponse(list []Vet) vetsResponse {
	out := vetsResponse{VetList: make([]vetResponse, 0, len(list))}
	for _, v := range list {
		specs := v.SortedSpecialties()
		vr := vetResponse{
			ID:              v.ID,
			FirstName:       v.FirstName,
			LastName:        v.LastName,
			Specialties:     make([]specialtyResponse, 0, len(specs)),
			NrOfSpecialties: v.NrOfSpecialties(),
		}
		for _, s := range specs {
			vr.Specialties = append(vr.Specialties, specialtyResponse{ID: s.ID, Name: s.Name})
		}
		out.VetList = append(out.VetList, vr)
	}
	return out
}

// ShowVetList renderiza la página de veterinarios.
func (h *Handler) ShowVetList(r *http.Request) (*web.Response, error) {
	list, err := h.repo.FindAll(r.Context())
	if err != nil {
		return nil, err
	}
	return web.Render(viewVetList, web.Model{"vets": list}), nil
}

// ShowResourcesVetList godoc
// @Summary Listar veterinarios
// @Description Devuelve todos los veterinarios con sus especialidades. El formato sale del header `Accept`: JSON por defecto, `application/xml` o `application/yaml`.
// @Tags vets
// @Produce json
// @Produce xml
// @Produce application/yaml
// @Success 200 {object} vetsResponse
// @Failure 500 {string} string "error interno"
// @Router /vets [get]
func (h *Handler) ShowResourcesVetList(r *http.Request) (*web.Response, error) {
	list, err := h.repo.FindAll(r.Context())
	if err != nil {
		return nil, err
	}
	return web.Resource(toVetsResponse(list)), nil
}
