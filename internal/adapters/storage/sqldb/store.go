package sqldb

import (
	"context"
	"database/sql"

	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
)

// Store agrupa los repositorios SQL sobre una misma conexión.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

func (s *Store) Owners() owners.OwnerRepository { return &OwnersRepo{s} }

func (s *Store) Pets() owners.PetRepository { return &PetsRepo{s} }

func (s *Store) Visits() owners.VisitRepository { return &VisitsRepo{s} }

func (s *Store) Vets() vets.Repository { return &VetsRepo{s} }

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(q), args...)
}

// exec ejecuta q y devuelve las filas afectadas.
func (s *Store) exec(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
