package owners

import (
	"context"
	"errors"
	"net/http"

	"petclinic/internal/platform/validation"
	"petclinic/internal/platform/web"
)

const (
	viewOwnerCreateOrUpdateForm = "owners/createOrUpdateOwnerForm"
	viewFindOwners              = "owners/findOwners"
	viewOwnersList              = "owners/ownersList"
	viewOwnerDetails            = "owners/ownerDetails"
)

type OwnerHandler struct {
	owners  OwnerRepository
	visits  VisitRepository
	support *web.Support[*Owner]
}

func NewOwnerHandler(owners OwnerRepository, visits VisitRepository) *OwnerHandler {
	return &OwnerHandler{
		owners:  owners,
		visits:  visits,
		support: web.NewSupport[*Owner]("owner", nil),
	}
}

func (h *OwnerHandler) InitCreationForm(r *http.Request) (*web.Response, error) {
	return h.support.View(&Owner{}, viewOwnerCreateOrUpdateForm), nil
}

func (h *OwnerHandler) ProcessCreationForm(r *http.Request) (*web.Response, error) {
	return h.processOwnerForm(r, h.owners.Save)
}

// ProcessUpdateForm guarda el formulario sobre el dueño del path; el id nunca sale del cuerpo.
func (h *OwnerHandler) ProcessUpdateForm(r *http.Request) (*web.Response, error) {
	ownerID, ok := web.PathID(r, "ownerId")
	if !ok {
		return web.NotFound(), nil
	}
	if _, err := h.owners.FindByID(r.Context(), ownerID); err != nil {
		return notFoundOr(err)
	}

	return h.processOwnerForm(r, func(ctx context.Context, o *Owner) error {
		o.ID = ownerID
		return h.owners.Save(ctx, o)
	})
}

func (h *OwnerHandler) processOwnerForm(r *http.Request, save func(context.Context, *Owner) error) (*web.Response, error) {
	b := h.support.Binder(&Owner{}, "owner")
	b.AddValidators(OwnerValidator{})

	return web.FormFlow[*Owner]{
		Binder: b,
		Invalid: func(res *web.BindingResult) *web.Response {
			return h.support.ViewResult(res, viewOwnerCreateOrUpdateForm)
		},
		Valid: func(o *Owner) (*web.Response, error) {
			if err := save(r.Context(), o); err != nil {
				return nil, err
			}
			return h.support.RedirectTo(o, "/owners"), nil
		},
	}.Process(r)
}

func (h *OwnerHandler) InitFindForm(r *http.Request) (*web.Response, error) {
	return h.support.View(&Owner{}, viewFindOwners), nil
}

// ProcessFindForm: 0 resultados => formulario con error en lastName,
// 1 => redirect al detalle, más => listado bajo "selections".
func (h *OwnerHandler) ProcessFindForm(r *http.Request) (*web.Response, error) {
	b := h.support.Binder(&Owner{}, "owner")
	if err := b.BindRequest(r); err != nil {
		return nil, err
	}
	// Sin parámetro lastName queda "", que es la búsqueda más amplia.
	owner := b.Target()

	results, err := h.owners.FindByLastName(r.Context(), owner.LastName)
	if err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		res := b.Result()
		res.RejectValue("lastName", validation.CodeNotFound, "not found")
		return h.support.ViewResult(res, viewFindOwners), nil
	case 1:
		return h.support.RedirectTo(results[0], "/owners"), nil
	default:
		return web.Render(viewOwnersList, web.Model{"selections": results}), nil
	}
}

func (h *OwnerHandler) InitUpdateOwnerForm(r *http.Request) (*web.Response, error) {
	o, resp, err := loadOwner(r, h.owners)
	if o == nil {
		return resp, err
	}
	return h.support.View(o, viewOwnerCreateOrUpdateForm), nil
}

// ShowOwner muestra el dueño con sus mascotas y las visitas de cada una.
func (h *OwnerHandler) ShowOwner(r *http.Request) (*web.Response, error) {
	o, resp, err := loadOwner(r, h.owners)
	if o == nil {
		return resp, err
	}

	for _, p := range o.Pets {
		visits, err := h.visits.FindByPetID(r.Context(), p.ID)
		if err != nil {
			return nil, err
		}
		p.Visits = visits
		p.SortVisits()
	}

	return h.support.View(o, viewOwnerDetails), nil
}

// loadOwner devuelve el dueño del path, o (nil, respuesta/error) si no se puede.
func loadOwner(r *http.Request, owners OwnerRepository) (*Owner, *web.Response, error) {
	id, ok := web.PathID(r, "ownerId")
	if !ok {
		return nil, web.NotFound(), nil
	}
	o, err := owners.FindByID(r.Context(), id)
	if err != nil {
		resp, err := notFoundOr(err)
		return nil, resp, err
	}
	return o, nil, nil
}

// notFoundOr traduce ErrNotFound a 404; cualquier otro error se propaga.
func notFoundOr(err error) (*web.Response, error) {
	if errors.Is(err, ErrNotFound) {
		return web.NotFound(), nil
	}
	return nil, err
}
