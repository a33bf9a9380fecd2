package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"petclinic/internal/domain/owners"
)

type OwnersRepo struct {
	s *Store
}

const ownerColumns = `o.id, o.first_name, o.last_name, o.address, o.city, o.telephone`

// byLastNamePrefix compara el prefijo exacto (sensible a mayúsculas en ambos dialectos).
const byLastNamePrefix = `substr(o.last_name, 1, ?) = ?`

func (r *OwnersRepo) FindByLastName(ctx context.Context, lastName string) ([]*owners.Owner, error) {
	n := utf8.RuneCountInString(lastName)

	rows, err := r.s.query(ctx, `
		SELECT `+ownerColumns+`
		FROM owners o
		WHERE `+byLastNamePrefix+`
		ORDER BY o.id
	`, n, lastName)
	if err != nil {
		return nil, fmt.Errorf("find owners by last name: %w", err)
	}
	defer rows.Close()

	out := make([]*owners.Owner, 0)
	byID := make(map[int]*owners.Owner)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pets, err := r.s.petsWhere(ctx, `JOIN owners o ON o.id = p.owner_id WHERE `+byLastNamePrefix, n, lastName)
	if err != nil {
		return nil, err
	}
	for _, p := range pets {
		if o, ok := byID[p.OwnerID]; ok {
			o.Pets = append(o.Pets, p)
		}
	}
	for _, o := range out {
		o.SortPets()
	}
	return out, nil
}

func (r *OwnersRepo) FindByID(ctx context.Context, id int) (*owners.Owner, error) {
	row := r.s.queryRow(ctx, `
		SELECT `+ownerColumns+`
		FROM owners o
		WHERE o.id = ?
	`, id)

	o, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, owners.ErrNotFound
		}
		return nil, fmt.Errorf("find owner %d: %w", id, err)
	}

	pets, err := r.s.petsWhere(ctx, `WHERE p.owner_id = ?`, id)
	if err != nil {
		return nil, err
	}
	o.Pets = pets
	o.SortPets()
	return o, nil
}

func (r *OwnersRepo) Save(ctx context.Context, o *owners.Owner) error {
	if o == nil {
		return errors.New("owner required")
	}

	if o.IsNew() {
		err := r.s.queryRow(ctx, `
			INSERT INTO owners (first_name, last_name, address, city, telephone)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id
		`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone).Scan(&o.ID)
		if err != nil {
			return fmt.Errorf("insert owner: %w", err)
		}
		return nil
	}

	n, err := r.s.exec(ctx, `
		UPDATE owners
		SET first_name = ?, last_name = ?, address = ?, city = ?, telephone = ?
		WHERE id = ?
	`, o.FirstName, o.LastName, o.Address, o.City, o.Telephone, o.ID)
	if err != nil {
		return fmt.Errorf("update owner %d: %w", o.ID, err)
	}
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOwner(sc scanner) (*owners.Owner, error) {
	var o owners.Owner
	if err := sc.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
		return nil, err
	}
	o.Pets = make([]*owners.Pet, 0)
	return &o, nil
}
