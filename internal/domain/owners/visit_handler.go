package owners

import (
	"net/http"
	"time"

	"petclinic/internal/platform/web"
)

const viewVisitCreateOrUpdateForm = "pets/createOrUpdateVisitForm"

type VisitHandler struct {
	owners  OwnerRepository
	pets    PetRepository
	visits  VisitRepository
	now     func() time.Time
	support *web.Support[*Visit]
}

func NewVisitHandler(owners OwnerRepository, pets PetRepository, visits VisitRepository, now func() time.Time) *VisitHandler {
	if now == nil {
		now = time.Now
	}
	return &VisitHandler{
		owners:  owners,
		pets:    pets,
		visits:  visits,
		now:     now,
		support: web.NewSupport[*Visit]("visit", nil),
	}
}

func (h *VisitHandler) InitNewVisitForm(r *http.Request) (*web.Response, error) {
	owner, pet, resp, err := h.loadPetWithVisits(r)
	if pet == nil {
		return resp, err
	}

	resp = h.support.View(NewVisit(h.now()), viewVisitCreateOrUpdateForm)
	resp.Model()["pet"] = pet
	resp.Model()["owner"] = owner
	return resp, nil
}

// ProcessNewVisitForm guarda la visita para la mascota del path y vuelve al detalle del dueño.
func (h *VisitHandler) ProcessNewVisitForm(r *http.Request) (*web.Response, error) {
	owner, pet, resp, err := h.loadPetWithVisits(r)
	if pet == nil {
		return resp, err
	}

	b := h.support.Binder(NewVisit(h.now()), "visit")
	b.AddValidators(VisitValidator{})

	return web.FormFlow[*Visit]{
		Binder: b,
		Invalid: func(res *web.BindingResult) *web.Response {
			m := res.Model()
			m["pet"] = pet
			m["owner"] = owner
			return web.Render(viewVisitCreateOrUpdateForm, m)
		},
		Valid: func(v *Visit) (*web.Response, error) {
			v.PetID = pet.ID
			if err := h.visits.Save(r.Context(), v); err != nil {
				return nil, err
			}
			return web.RedirectToID(owner.ID, "/owners"), nil
		},
	}.Process(r)
}

// loadPetWithVisits trae dueño y mascota del path con las visitas previas cargadas.
func (h *VisitHandler) loadPetWithVisits(r *http.Request) (*Owner, *Pet, *web.Response, error) {
	owner, pet, resp, err := loadOwnerPet(r, h.owners, h.pets)
	if pet == nil {
		return nil, nil, resp, err
	}

	visits, err := h.visits.FindByPetID(r.Context(), pet.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	pet.Visits = visits
	pet.SortVisits()
	return owner, pet, nil, nil
}
