package owners

import (
	"sort"
	"time"

	"petclinic/internal/domain/model"
)

// Owner es el dueño de las mascotas. Es dueño exclusivo de sus Pets.
type Owner struct {
	model.Person

	Address   string `form:"address"`
	City      string `form:"city"`
	Telephone string `form:"telephone"`

	Pets []*Pet `form:"-"`
}

// AddPet asocia p al dueño; sólo las mascotas nuevas se agregan a la lista.
func (o *Owner) AddPet(p *Pet) {
	if p.IsNew() {
		o.Pets = append(o.Pets, p)
	}
	p.OwnerID = o.ID
}

// Pet busca una mascota por nombre exacto. Con ignoreNew se saltean las no guardadas.
func (o *Owner) Pet(name string, ignoreNew bool) *Pet {
	for _, p := range o.Pets {
		if ignoreNew && p.IsNew() {
			continue
		}
		if p.Name == name {
			return p
		}
	}
	return nil
}

// SortPets ordena las mascotas por nombre.
func (o *Owner) SortPets() {
	sort.SliceStable(o.Pets, func(i, j int) bool { return o.Pets[i].Name < o.Pets[j].Name })
}

// PetType es dato de referencia compartido (cat, dog, ...).
type PetType struct {
	model.NamedEntity
}

type Pet struct {
	model.NamedEntity

	BirthDate time.Time `form:"birthDate"`
	Type      *PetType  `form:"type"`

	// OwnerID es la referencia al dueño (no propiedad).
	OwnerID int `form:"-"`

	Visits []Visit `form:"-"`
}

// TypeName devuelve el nombre del tipo o "" si no tiene.
func (p *Pet) TypeName() string {
	if p.Type == nil {
		return ""
	}
	return p.Type.Name
}

// SortVisits deja las visitas en orden cronológico.
func (p *Pet) SortVisits() {
	sort.SliceStable(p.Visits, func(i, j int) bool { return p.Visits[i].Date.Before(p.Visits[j].Date) })
}

type Visit struct {
	model.BaseEntity

	Date        time.Time `form:"date"`
	Description string    `form:"description"`

	PetID int `form:"-"`
}

// NewVisit crea una visita con fecha de hoy.
func NewVisit(now time.Time) *Visit {
	y, m, d := now.Date()
	return &Visit{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}
