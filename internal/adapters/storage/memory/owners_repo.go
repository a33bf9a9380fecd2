package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"petclinic/internal/domain/owners"
)

type ownerRepo struct {
	s *Store
}

func (r ownerRepo) FindByLastName(ctx context.Context, lastName string) ([]*owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0)
	for id, o := range r.s.owners {
		if strings.HasPrefix(o.LastName, lastName) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]*owners.Owner, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.ownerWithPets(id))
	}
	return out, nil
}

func (r ownerRepo) FindByID(ctx context.Context, id int) (*owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.owners[id]; !ok {
		return nil, owners.ErrNotFound
	}
	return r.s.ownerWithPets(id), nil
}

func (r ownerRepo) Save(ctx context.Context, o *owners.Owner) error {
	if o == nil {
		return errors.New("owner required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.IsNew() {
		o.ID = r.s.nextID("owners")
	} else if _, exists := r.s.owners[o.ID]; !exists {
		return owners.ErrNotFound
	}

	row := *o
	row.Pets = nil
	r.s.owners[o.ID] = row
	return nil
}

// ownerWithPets arma una copia del dueño con sus mascotas ordenadas por nombre.
// Requiere al menos el lock de lectura.
func (s *Store) ownerWithPets(id int) *owners.Owner {
	o := s.owners[id]

	petIDs := make([]int, 0)
	for pid, row := range s.pets {
		if row.pet.OwnerID == id {
			petIDs = append(petIDs, pid)
		}
	}
	sort.Ints(petIDs)

	o.Pets = make([]*owners.Pet, 0, len(petIDs))
	for _, pid := range petIDs {
		o.Pets = append(o.Pets, s.petCopy(pid))
	}
	o.SortPets()
	return &o
}
