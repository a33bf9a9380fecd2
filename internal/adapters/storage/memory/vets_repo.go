package memory

import (
	"context"
	"sort"

	"petclinic/internal/domain/vets"
)

type vetRepo struct {
	s *Store
}

func (r vetRepo) FindAll(ctx context.Context) ([]vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.s.vets))
	for _, v := range r.s.vets {
		v.Specialties = append([]vets.Specialty(nil), v.Specialties...)
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
