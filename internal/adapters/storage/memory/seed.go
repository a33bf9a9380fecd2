package memory

import (
	"time"

	"petclinic/internal/domain/model"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
)

// Mismos datos que migrations/*/00002_seed.sql del adapter SQL.
func (s *Store) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, name := range []string{"cat", "dog", "lizard", "snake", "bird", "hamster"} {
		id := i + 1
		s.petTypes[id] = owners.PetType{NamedEntity: named(id, name)}
		s.bump("types", id)
	}

	for _, o := range []struct {
		first, last, address, city, tel string
	}{
		{"George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023"},
		{"Betty", "Davis", "638 Cardinal Ave.", "Sun Prairie", "6085551749"},
		{"Eduardo", "Rodriquez", "2693 Commerce St.", "McFarland", "6085558763"},
		{"Harold", "Davis", "563 Friendly St.", "Windsor", "6085553198"},
		{"Peter", "McTavish", "2387 S. Fair Way", "Madison", "6085552765"},
		{"Jean", "Coleman", "105 N. Lake St.", "Monona", "6085552654"},
		{"Jeff", "Black", "1450 Oak Blvd.", "Monona", "6085555387"},
		{"Maria", "Escobito", "345 Maple St.", "Madison", "6085557683"},
		{"David", "Schroeder", "2749 Blackhawk Trail", "Madison", "6085559435"},
		{"Carlos", "Estaban", "2335 Independence La.", "Waunakee", "6085555487"},
	} {
		id := s.nextID("owners")
		s.owners[id] = owners.Owner{
			Person:    person(id, o.first, o.last),
			Address:   o.address,
			City:      o.city,
			Telephone: o.tel,
		}
	}

	for _, p := range []struct {
		name            string
		birth           string
		typeID, ownerID int
	}{
		{"Leo", "2010-09-07", 1, 1},
		{"Basil", "2012-08-06", 6, 2},
		{"Rosy", "2011-04-17", 2, 3},
		{"Jewel", "2010-03-07", 2, 3},
		{"Iggy", "2010-11-30", 3, 4},
		{"George", "2010-01-20", 4, 5},
		{"Samantha", "2012-09-04", 1, 6},
		{"Max", "2012-09-04", 1, 6},
		{"Lucky", "2011-08-06", 5, 7},
		{"Mulligan", "2007-02-24", 2, 8},
		{"Freddy", "2010-03-09", 5, 9},
		{"Lucky", "2010-06-24", 2, 10},
		{"Sly", "2012-06-08", 1, 10},
	} {
		id := s.nextID("pets")
		s.pets[id] = petRow{
			pet: owners.Pet{
				NamedEntity: named(id, p.name),
				BirthDate:   date(p.birth),
				OwnerID:     p.ownerID,
			},
			typeID: p.typeID,
		}
	}

	for _, v := range []struct {
		petID int
		date  string
		desc  string
	}{
		{7, "2013-01-01", "rabies shot"},
		{8, "2013-01-02", "rabies shot"},
		{8, "2013-01-03", "neutered"},
		{7, "2013-01-04", "spayed"},
	} {
		id := s.nextID("visits")
		s.visits[id] = owners.Visit{
			BaseEntity:  model.BaseEntity{ID: id},
			Date:        date(v.date),
			Description: v.desc,
			PetID:       v.petID,
		}
	}

	specialties := map[string]vets.Specialty{
		"radiology": {NamedEntity: named(1, "radiology")},
		"surgery":   {NamedEntity: named(2, "surgery")},
		"dentistry": {NamedEntity: named(3, "dentistry")},
	}
	for _, v := range []struct {
		first, last string
		specialties []string
	}{
		{"James", "Carter", nil},
		{"Helen", "Leary", []string{"radiology"}},
		{"Linda", "Douglas", []string{"surgery", "dentistry"}},
		{"Rafael", "Ortega", []string{"surgery"}},
		{"Henry", "Stevens", []string{"radiology"}},
		{"Sharon", "Jenkins", nil},
	} {
		id := s.nextID("vets")
		vet := vets.Vet{Person: person(id, v.first, v.last)}
		for _, name := range v.specialties {
			vet.AddSpecialty(specialties[name])
		}
		s.vets[id] = vet
	}
}

func named(id int, name string) model.NamedEntity {
	return model.NamedEntity{BaseEntity: model.BaseEntity{ID: id}, Name: name}
}

func person(id int, first, last string) model.Person {
	return model.Person{BaseEntity: model.BaseEntity{ID: id}, FirstName: first, LastName: last}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
