package owners

import (
	"net/http"
	"time"

	"petclinic/internal/platform/validation"
	"petclinic/internal/platform/web"
)

const viewPetCreateOrUpdateForm = "pets/createOrUpdatePetForm"

type PetHandler struct {
	owners  OwnerRepository
	pets    PetRepository
	now     func() time.Time
	support *web.Support[*Pet]
}

func NewPetHandler(owners OwnerRepository, pets PetRepository, now func() time.Time) *PetHandler {
	if now == nil {
		now = time.Now
	}
	return &PetHandler{
		owners:  owners,
		pets:    pets,
		now:     now,
		support: web.NewSupport[*Pet]("pet", nil),
	}
}

func (h *PetHandler) InitCreationForm(r *http.Request) (*web.Response, error) {
	owner, resp, err := loadOwner(r, h.owners)
	if owner == nil {
		return resp, err
	}

	pet := &Pet{}
	owner.AddPet(pet)
	return h.petView(r, owner, pet)
}

// ProcessCreationForm valida además que el dueño no tenga ya una mascota
// guardada con el mismo nombre.
func (h *PetHandler) ProcessCreationForm(r *http.Request) (*web.Response, error) {
	owner, resp, err := loadOwner(r, h.owners)
	if owner == nil {
		return resp, err
	}

	return h.processPetForm(r, owner, &Pet{}, func(p *Pet, res *web.BindingResult) {
		if p.Name != "" && p.IsNew() && owner.Pet(p.Name, true) != nil {
			res.RejectValue("name", validation.CodeDuplicate, "already exists")
		}
	})
}

func (h *PetHandler) InitUpdateForm(r *http.Request) (*web.Response, error) {
	owner, pet, resp, err := loadOwnerPet(r, h.owners, h.pets)
	if pet == nil {
		return resp, err
	}
	return h.petView(r, owner, pet)
}

// ProcessUpdateForm no revisa nombres duplicados: sólo corre PetValidator.
func (h *PetHandler) ProcessUpdateForm(r *http.Request) (*web.Response, error) {
	owner, pet, resp, err := loadOwnerPet(r, h.owners, h.pets)
	if pet == nil {
		return resp, err
	}

	target := &Pet{}
	target.ID = pet.ID
	return h.processPetForm(r, owner, target, nil)
}

func (h *PetHandler) processPetForm(r *http.Request, owner *Owner, target *Pet, check func(*Pet, *web.BindingResult)) (*web.Response, error) {
	types, err := h.pets.FindPetTypes(r.Context())
	if err != nil {
		return nil, err
	}

	b := h.support.Binder(target, "pet")
	b.SetConversions(PetTypeConversions(types))
	b.AddValidators(PetValidator{Now: h.now})

	return web.FormFlow[*Pet]{
		Binder:  b,
		Prepare: check,
		Invalid: func(res *web.BindingResult) *web.Response {
			m := res.Model()
			m["owner"] = owner
			m["types"] = types
			return web.Render(viewPetCreateOrUpdateForm, m)
		},
		Valid: func(p *Pet) (*web.Response, error) {
			p.OwnerID = owner.ID
			if err := h.pets.Save(r.Context(), p); err != nil {
				return nil, err
			}
			return web.RedirectToID(owner.ID, "/owners"), nil
		},
	}.Process(r)
}

func (h *PetHandler) petView(r *http.Request, owner *Owner, pet *Pet) (*web.Response, error) {
	types, err := h.pets.FindPetTypes(r.Context())
	if err != nil {
		return nil, err
	}
	resp := h.support.View(pet, viewPetCreateOrUpdateForm)
	resp.Model()["owner"] = owner
	resp.Model()["types"] = types
	return resp, nil
}

// loadOwnerPet resuelve dueño y mascota del path. Una mascota de otro dueño es 404.
func loadOwnerPet(r *http.Request, owners OwnerRepository, pets PetRepository) (*Owner, *Pet, *web.Response, error) {
	ownerID, ok := web.PathID(r, "ownerId")
	if !ok {
		return nil, nil, web.NotFound(), nil
	}
	petID, ok := web.PathID(r, "petId")
	if !ok {
		return nil, nil, web.NotFound(), nil
	}

	owner, err := owners.FindByID(r.Context(), ownerID)
	if err != nil {
		resp, err := notFoundOr(err)
		return nil, nil, resp, err
	}
	pet, err := pets.FindByID(r.Context(), petID)
	if err != nil {
		resp, err := notFoundOr(err)
		return nil, nil, resp, err
	}
	if pet.OwnerID != owner.ID {
		return nil, nil, web.NotFound(), nil
	}
	return owner, pet, nil, nil
}
