package owners

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

type OwnerRepository interface {
	// FindByLastName busca por prefijo de apellido; "" devuelve todos.
	FindByLastName(ctx context.Context, lastName string) ([]*Owner, error)
	// FindByID devuelve el dueño con sus mascotas (sin visitas) o ErrNotFound.
	FindByID(ctx context.Context, id int) (*Owner, error)
	// Save inserta (y asigna ID) si o es nuevo; si no, actualiza sus datos.
	Save(ctx context.Context, o *Owner) error
}

type PetRepository interface {
	FindPetTypes(ctx context.Context) ([]*PetType, error)
	FindByID(ctx context.Context, id int) (*Pet, error)
	Save(ctx context.Context, p *Pet) error
}

type VisitRepository interface {
	FindByPetID(ctx context.Context, petID int) ([]Visit, error)
	Save(ctx context.Context, v *Visit) error
}
