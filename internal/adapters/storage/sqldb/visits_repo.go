package sqldb

import (
	"context"
	"errors"
	"fmt"

	"petclinic/internal/domain/owners"
)

type VisitsRepo struct {
	s *Store
}

func (r *VisitsRepo) FindByPetID(ctx context.Context, petID int) ([]owners.Visit, error) {
	rows, err := r.s.query(ctx, `
		SELECT id, visit_date, description, pet_id
		FROM visits
		WHERE pet_id = ?
		ORDER BY visit_date, id
	`, petID)
	if err != nil {
		return nil, fmt.Errorf("find visits of pet %d: %w", petID, err)
	}
	defer rows.Close()

	out := make([]owners.Visit, 0)
	for rows.Next() {
		var (
			v    owners.Visit
			date nullDate
		)
		if err := rows.Scan(&v.ID, &date, &v.Description, &v.PetID); err != nil {
			return nil, err
		}
		if date.Valid {
			v.Date = date.Time
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitsRepo) Save(ctx context.Context, v *owners.Visit) error {
	if v == nil {
		return errors.New("visit required")
	}

	date := r.s.dialect.dateArg(v.Date)

	if v.IsNew() {
		err := r.s.queryRow(ctx, `
			INSERT INTO visits (pet_id, visit_date, description)
			VALUES (?, ?, ?)
			RETURNING id
		`, v.PetID, date, v.Description).Scan(&v.ID)
		if err != nil {
			return fmt.Errorf("insert visit: %w", err)
		}
		return nil
	}

	n, err := r.s.exec(ctx, `
		UPDATE visits
		SET pet_id = ?, visit_date = ?, description = ?
		WHERE id = ?
	`, v.PetID, date, v.Description, v.ID)
	if err != nil {
		return fmt.Errorf("update visit %d: %w", v.ID, err)
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}
