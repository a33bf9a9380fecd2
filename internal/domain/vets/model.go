package vets

import (
	"context"
	"sort"

	"petclinic/internal/domain/model"
)

type Specialty struct {
	model.NamedEntity
}

// Vet es un veterinario con cero o más especialidades.
type Vet struct {
	model.Person

	Specialties []Specialty
}

// SortedSpecialties devuelve las especialidades ordenadas por nombre.
func (v Vet) SortedSpecialties() []Specialty {
	out := make([]Specialty, len(v.Specialties))
	copy(out, v.Specialties)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (v Vet) NrOfSpecialties() int {
	return len(v.Specialties)
}

func (v *Vet) AddSpecialty(s Specialty) {
	v.Specialties = append(v.Specialties, s)
}

type Repository interface {
	// FindAll devuelve todos los veterinarios ordenados por id.
	FindAll(ctx context.Context) ([]Vet, error)
}
