package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"petclinic/internal/domain/owners"
)

type visitRepo struct {
	s *Store
}

func (r visitRepo) FindByPetID(ctx context.Context, petID int) ([]owners.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]owners.Visit, 0)
	for _, v := range r.s.visits {
		if v.PetID == petID {
			out = append(out, v)
		}
	}

	// Orden cronológico; a igual fecha, por id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r visitRepo) Save(ctx context.Context, v *owners.Visit) error {
	if v == nil {
		return errors.New("visit required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[v.PetID]; !ok {
		return fmt.Errorf("pet %d: %w", v.PetID, owners.ErrNotFound)
	}

	if v.IsNew() {
		v.ID = r.s.nextID("visits")
	} else if _, exists := r.s.visits[v.ID]; !exists {
		return owners.ErrNotFound
	}

	r.s.visits[v.ID] = *v
	return nil
}
