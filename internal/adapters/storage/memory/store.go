// Package memory implementa los repositorios en memoria. Es el storage por
// defecto cuando no hay base configurada.
package memory

import (
	"sync"

	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
)

// Store guarda todas las entidades bajo un único lock. Lo que sale del Store
// es siempre una copia: modificar el resultado de un Find no cambia lo guardado.
type Store struct {
	mu sync.RWMutex

	owners   map[int]owners.Owner
	pets     map[int]petRow
	petTypes map[int]owners.PetType
	visits   map[int]owners.Visit
	vets     map[int]vets.Vet
	lastIDs  map[string]int
}

// petRow es la mascota sin Type ni Visits; el tipo se guarda por id.
type petRow struct {
	pet    owners.Pet
	typeID int
}

func NewStore() *Store {
	return &Store{
		owners:   make(map[int]owners.Owner),
		pets:     make(map[int]petRow),
		petTypes: make(map[int]owners.PetType),
		visits:   make(map[int]owners.Visit),
		vets:     make(map[int]vets.Vet),
		lastIDs:  make(map[string]int),
	}
}

// NewSeededStore devuelve un Store con los datos de ejemplo de la clínica.
func NewSeededStore() *Store {
	s := NewStore()
	s.seed()
	return s
}

func (s *Store) Owners() owners.OwnerRepository { return ownerRepo{s} }

func (s *Store) Pets() owners.PetRepository { return petRepo{s} }

func (s *Store) Visits() owners.VisitRepository { return visitRepo{s} }

func (s *Store) Vets() vets.Repository { return vetRepo{s} }

// nextID asigna el siguiente id de la tabla. Requiere el lock de escritura.
func (s *Store) nextID(table string) int {
	s.lastIDs[table]++
	return s.lastIDs[table]
}

// bump asegura que nextID no repita ids cargados a mano.
func (s *Store) bump(table string, id int) {
	if id > s.lastIDs[table] {
		s.lastIDs[table] = id
	}
}
