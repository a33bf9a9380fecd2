package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petclinic/internal/domain/owners"
)

type PetsRepo struct {
	s *Store
}

func (r *PetsRepo) FindPetTypes(ctx context.Context) ([]*owners.PetType, error) {
	rows, err := r.s.query(ctx, `SELECT id, name FROM types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("find pet types: %w", err)
	}
	defer rows.Close()

	out := make([]*owners.PetType, 0)
	for rows.Next() {
		var t owners.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *PetsRepo) FindByID(ctx context.Context, id int) (*owners.Pet, error) {
	pets, err := r.s.petsWhere(ctx, `WHERE p.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(pets) == 0 {
		return nil, owners.ErrNotFound
	}
	return pets[0], nil
}

func (r *PetsRepo) Save(ctx context.Context, p *owners.Pet) error {
	if p == nil {
		return errors.New("pet required")
	}

	var typeID sql.NullInt64
	if p.Type != nil {
		typeID = sql.NullInt64{Int64: int64(p.Type.ID), Valid: true}
	}
	birth := r.s.dialect.dateArg(p.BirthDate)

	if p.IsNew() {
		err := r.s.queryRow(ctx, `
			INSERT INTO pets (name, birth_date, type_id, owner_id)
			VALUES (?, ?, ?, ?)
			RETURNING id
		`, p.Name, birth, typeID, p.OwnerID).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert pet: %w", err)
		}
		return nil
	}

	n, err := r.s.exec(ctx, `
		UPDATE pets
		SET name = ?, birth_date = ?, type_id = ?, owner_id = ?
		WHERE id = ?
	`, p.Name, birth, typeID, p.OwnerID, p.ID)
	if err != nil {
		return fmt.Errorf("update pet %d: %w", p.ID, err)
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

// petsWhere trae mascotas con su tipo. clause va después del FROM/JOIN base
// (puede agregar JOINs propios antes del WHERE).
func (s *Store) petsWhere(ctx context.Context, clause string, args ...any) ([]*owners.Pet, error) {
	rows, err := s.query(ctx, `
		SELECT p.id, p.name, p.birth_date, p.owner_id, t.id, t.name
		FROM pets p
		LEFT JOIN types t ON t.id = p.type_id
		`+clause+`
		ORDER BY p.name, p.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("find pets: %w", err)
	}
	defer rows.Close()

	out := make([]*owners.Pet, 0)
	for rows.Next() {
		var (
			p        owners.Pet
			birth    nullDate
			typeID   sql.NullInt64
			typeName sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &birth, &p.OwnerID, &typeID, &typeName); err != nil {
			return nil, err
		}
		if birth.Valid {
			p.BirthDate = birth.Time
		}
		if typeID.Valid {
			p.Type = &owners.PetType{}
			p.Type.ID = int(typeID.Int64)
			p.Type.Name = typeName.String
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
