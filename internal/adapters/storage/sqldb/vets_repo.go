package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"petclinic/internal/domain/vets"
)

type VetsRepo struct {
	s *Store
}

func (r *VetsRepo) FindAll(ctx context.Context) ([]vets.Vet, error) {
	rows, err := r.s.query(ctx, `
		SELECT v.id, v.first_name, v.last_name, s.id, s.name
		FROM vets v
		LEFT JOIN vet_specialties vs ON vs.vet_id = v.id
		LEFT JOIN specialties s ON s.id = vs.specialty_id
		ORDER BY v.id, s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("find vets: %w", err)
	}
	defer rows.Close()

	out := make([]vets.Vet, 0)
	for rows.Next() {
		var (
			v        vets.Vet
			specID   sql.NullInt64
			specName sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &specID, &specName); err != nil {
			return nil, err
		}

		// Una fila por especialidad: se agrupan sobre el último vet.
		if n := len(out); n == 0 || out[n-1].ID != v.ID {
			out = append(out, v)
		}
		if specID.Valid {
			var s vets.Specialty
			s.ID = int(specID.Int64)
			s.Name = specName.String
			out[len(out)-1].AddSpecialty(s)
		}
	}
	return out, rows.Err()
}
