package owners

import (
	"fmt"
	"time"

	"petclinic/internal/platform/validation"
	"petclinic/internal/platform/web"
)

type OwnerValidator struct{}

func (OwnerValidator) Validate(o *Owner) validation.Errors {
	return validation.Apply(
		validation.NotEmpty("firstName", o.FirstName),
		validation.NotEmpty("lastName", o.LastName),
		validation.NotEmpty("address", o.Address),
		validation.NotEmpty("city", o.City),
		validation.NotEmpty("telephone", o.Telephone),
		validation.Digits("telephone", o.Telephone, 10),
	)
}

// PetValidator: nombre, tipo y fecha de nacimiento obligatorios; la fecha no puede ser futura.
// El nombre duplicado NO se valida acá (ver PetHandler).
type PetValidator struct {
	Now func() time.Time
}

func (v PetValidator) Validate(p *Pet) validation.Errors {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	return validation.Apply(
		validation.Required("name", p.Name),
		validation.Present("type", p.Type != nil),
		validation.Present("birthDate", !p.BirthDate.IsZero()),
		validation.NotAfter("birthDate", p.BirthDate, now()),
	)
}

type VisitValidator struct{}

func (VisitValidator) Validate(v *Visit) validation.Errors {
	return validation.Apply(
		validation.NotEmpty("description", v.Description),
	)
}

// PetTypeConversions resuelve el parámetro "type" por nombre contra types.
func PetTypeConversions(types []*PetType) *web.Conversions {
	c := web.NewConversions()
	web.RegisterConverter(c, func(raw string) (*PetType, error) {
		if raw == "" {
			return nil, nil
		}
		for _, t := range types {
			if t.Name == raw {
				return t, nil
			}
		}
		return nil, fmt.Errorf("type not found: %s", raw)
	})
	return c
}
