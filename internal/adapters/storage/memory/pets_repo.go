package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"petclinic/internal/domain/owners"
)

type petRepo struct {
	s *Store
}

func (r petRepo) FindPetTypes(ctx context.Context) ([]*owners.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*owners.PetType, 0, len(r.s.petTypes))
	for _, t := range r.s.petTypes {
		t := t
		out = append(out, &t)
	}
	// Orden por nombre, como en el combo del formulario.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r petRepo) FindByID(ctx context.Context, id int) (*owners.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.pets[id]; !ok {
		return nil, owners.ErrNotFound
	}
	return r.s.petCopy(id), nil
}

func (r petRepo) Save(ctx context.Context, p *owners.Pet) error {
	if p == nil {
		return errors.New("pet required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	typeID := 0
	if p.Type != nil {
		if _, ok := r.s.petTypes[p.Type.ID]; !ok {
			return fmt.Errorf("pet type %d: %w", p.Type.ID, owners.ErrNotFound)
		}
		typeID = p.Type.ID
	}
	if _, ok := r.s.owners[p.OwnerID]; !ok {
		return fmt.Errorf("owner %d: %w", p.OwnerID, owners.ErrNotFound)
	}

	if p.IsNew() {
		p.ID = r.s.nextID("pets")
	} else if _, exists := r.s.pets[p.ID]; !exists {
		return owners.ErrNotFound
	}

	row := *p
	row.Type = nil
	row.Visits = nil
	r.s.pets[p.ID] = petRow{pet: row, typeID: typeID}
	return nil
}

// petCopy arma una copia de la mascota con su tipo (sin visitas).
// Requiere al menos el lock de lectura.
func (s *Store) petCopy(id int) *owners.Pet {
	row := s.pets[id]
	p := row.pet
	if t, ok := s.petTypes[row.typeID]; ok {
		p.Type = &t
	}
	return &p
}
