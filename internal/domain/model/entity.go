// Package model tiene las piezas comunes de las entidades del dominio.
package model

// BaseEntity aporta la identidad numérica. ID==0 significa "todavía no guardada";
// la asigna el repositorio en el primer Save.
type BaseEntity struct {
	ID int `form:"id"`
}

func (e BaseEntity) GetID() int { return e.ID }

func (e BaseEntity) IsNew() bool { return e.ID == 0 }

// NamedEntity es una entidad con nombre (tipos de mascota, especialidades, mascotas).
type NamedEntity struct {
	BaseEntity
	Name string `form:"name"`
}

func (e NamedEntity) String() string { return e.Name }

// Person agrupa los datos de nombre de dueños y veterinarios.
type Person struct {
	BaseEntity
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
}
