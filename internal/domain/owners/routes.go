package owners

import (
	"time"

	"petclinic/internal/platform/web"

	"github.com/go-chi/chi/v5"
)

// Deps son los colaboradores de los handlers de dueños, mascotas y visitas.
type Deps struct {
	Owners OwnerRepository
	Pets   PetRepository
	Visits VisitRepository

	// Now es opcional (tests); por defecto time.Now.
	Now func() time.Time
}

func RegisterRoutes(r chi.Router, x *web.Responder, deps Deps) {
	oh := NewOwnerHandler(deps.Owners, deps.Visits)
	ph := NewPetHandler(deps.Owners, deps.Pets, deps.Now)
	vh := NewVisitHandler(deps.Owners, deps.Pets, deps.Visits, deps.Now)

	r.Route("/owners", func(or chi.Router) {
		or.Get("/", x.Handle(oh.ProcessFindForm))
		or.Get("/find", x.Handle(oh.InitFindForm))
		or.Get("/new", x.Handle(oh.InitCreationForm))
		or.Post("/new", x.Handle(oh.ProcessCreationForm))

		or.Route("/{ownerId:[0-9]+}", func(r chi.Router) {
			r.Get("/", x.Handle(oh.ShowOwner))
			r.Get("/edit", x.Handle(oh.InitUpdateOwnerForm))
			r.Post("/edit", x.Handle(oh.ProcessUpdateForm))

			// Mascotas del dueño
			r.Get("/pets/new", x.Handle(ph.InitCreationForm))
			r.Post("/pets/new", x.Handle(ph.ProcessCreationForm))
			r.Get("/pets/{petId:[0-9]+}/edit", x.Handle(ph.InitUpdateForm))
			r.Post("/pets/{petId:[0-9]+}/edit", x.Handle(ph.ProcessUpdateForm))

			// Visitas de una mascota
			r.Get("/pets/{petId:[0-9]+}/visits/new", x.Handle(vh.InitNewVisitForm))
			r.Post("/pets/{petId:[0-9]+}/visits/new", x.Handle(vh.ProcessNewVisitForm))
		})
	})
}
