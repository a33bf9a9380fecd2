package owners_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic/internal/adapters/storage/memory"
	"petclinic/internal/domain/owners"
	"petclinic/internal/platform/validation"
	"petclinic/internal/platform/web"
)

func fixedNow() time.Time { return time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC) }

type fixture struct {
	store  *memory.Store
	owners *owners.OwnerHandler
	pets   *owners.PetHandler
	visits *owners.VisitHandler
}

func newFixture() fixture {
	s := memory.NewSeededStore()
	return fixture{
		store:  s,
		owners: owners.NewOwnerHandler(s.Owners(), s.Visits()),
		pets:   owners.NewPetHandler(s.Owners(), s.Pets(), fixedNow),
		visits: owners.NewVisitHandler(s.Owners(), s.Pets(), s.Visits(), fixedNow),
	}
}

// request arma un request con form (si no es nil) y parámetros de ruta chi en pares nombre/valor.
func request(method, target string, form url.Values, params ...string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func errorsOf(t *testing.T, resp *web.Response) validation.Errors {
	t.Helper()
	errs, ok := resp.Model()["errors"].(validation.Errors)
	require.True(t, ok, "model has no errors entry")
	return errs
}

func validOwnerForm() url.Values {
	return url.Values{
		"firstName": {"Ana"},
		"lastName":  {"Paz"},
		"address":   {"Av. Siempre Viva 742"},
		"city":      {"Lima"},
		"telephone": {"5551234567"},
	}
}

func TestProcessFindForm_NoMatchRedisplaysWithError(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.ProcessFindForm(request(http.MethodGet, "/owners?lastName=Nobody", nil))
	require.NoError(t, err)

	assert.Equal(t, "owners/findOwners", resp.ViewName())
	fe, ok := errorsOf(t, resp).Get("lastName")
	require.True(t, ok)
	assert.Equal(t, validation.CodeNotFound, fe.Code)
	assert.Equal(t, "not found", fe.Message)
}

func TestProcessFindForm_SingleMatchRedirects(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.ProcessFindForm(request(http.MethodGet, "/owners?lastName=Franklin", nil))
	require.NoError(t, err)

	assert.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/1", resp.RedirectLocation())
}

func TestProcessFindForm_ManyMatchesListSelections(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.ProcessFindForm(request(http.MethodGet, "/owners?lastName=Davis", nil))
	require.NoError(t, err)

	assert.Equal(t, "owners/ownersList", resp.ViewName())
	selections, ok := resp.Model()["selections"].([]*owners.Owner)
	require.True(t, ok)
	require.Len(t, selections, 2)
	assert.Equal(t, 2, selections[0].ID)
	assert.Equal(t, 4, selections[1].ID)
}

func TestProcessFindForm_MissingLastNameMatchesAll(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.ProcessFindForm(request(http.MethodGet, "/owners", nil))
	require.NoError(t, err)

	selections, ok := resp.Model()["selections"].([]*owners.Owner)
	require.True(t, ok)
	assert.Len(t, selections, 10)
}

func TestInitCreationForm_ShowsNewOwner(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.InitCreationForm(request(http.MethodGet, "/owners/new", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "owners/createOrUpdateOwnerForm", resp.ViewName())
	o, ok := resp.Model()["owner"].(*owners.Owner)
	require.True(t, ok)
	assert.True(t, o.IsNew())
}

func TestProcessCreationForm_SavesAndRedirects(t *testing.T) {
	f := newFixture()

	form := validOwnerForm()
	form.Set("id", "3")
	resp, err := f.owners.ProcessCreationForm(request(http.MethodPost, "/owners/new", form))
	require.NoError(t, err)

	require.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/11", resp.RedirectLocation())

	saved, err := f.store.Owners().FindByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "Paz", saved.LastName)

	untouched, err := f.store.Owners().FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Rodriquez", untouched.LastName)
}

func TestProcessCreationForm_InvalidRedisplays(t *testing.T) {
	f := newFixture()

	form := validOwnerForm()
	form.Set("telephone", "12ab")
	form.Set("city", "")
	resp, err := f.owners.ProcessCreationForm(request(http.MethodPost, "/owners/new", form))
	require.NoError(t, err)

	assert.False(t, resp.IsRedirect())
	assert.Equal(t, "owners/createOrUpdateOwnerForm", resp.ViewName())
	errs := errorsOf(t, resp)
	assert.True(t, errs.Has("city"))
	fe, ok := errs.Get("telephone")
	require.True(t, ok)
	assert.Equal(t, validation.CodeDigits, fe.Code)
	assert.Equal(t, "numeric value out of bounds (<10 digits>.<0 digits> expected)", fe.Message)

	o, ok := resp.Model()["owner"].(*owners.Owner)
	require.True(t, ok)
	assert.Equal(t, "12ab", o.Telephone)
}

func TestProcessUpdateForm_UsesPathID(t *testing.T) {
	f := newFixture()

	form := validOwnerForm()
	form.Set("id", "5")
	resp, err := f.owners.ProcessUpdateForm(request(http.MethodPost, "/owners/1/edit", form, "ownerId", "1"))
	require.NoError(t, err)

	require.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/1", resp.RedirectLocation())

	o, err := f.store.Owners().FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Paz", o.LastName)
	assert.Len(t, o.Pets, 1)

	other, err := f.store.Owners().FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "McTavish", other.LastName)
}

func TestOwnerPages_UnknownOwnerIs404(t *testing.T) {
	f := newFixture()
	handlers := map[string]web.HandlerFunc{
		"show":       f.owners.ShowOwner,
		"initEdit":   f.owners.InitUpdateOwnerForm,
		"processEdt": f.owners.ProcessUpdateForm,
		"petNew":     f.pets.InitCreationForm,
		"petCreate":  f.pets.ProcessCreationForm,
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			resp, err := h(request(http.MethodPost, "/owners/999", validOwnerForm(), "ownerId", "999"))
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode())
			assert.Empty(t, resp.ViewName())
		})
	}
}

func TestShowOwner_LoadsPetsWithVisits(t *testing.T) {
	f := newFixture()

	resp, err := f.owners.ShowOwner(request(http.MethodGet, "/owners/6", nil, "ownerId", "6"))
	require.NoError(t, err)

	assert.Equal(t, "owners/ownerDetails", resp.ViewName())
	o := resp.Model()["owner"].(*owners.Owner)
	require.Len(t, o.Pets, 2)
	assert.Equal(t, "Max", o.Pets[0].Name)
	assert.Equal(t, "Samantha", o.Pets[1].Name)
	require.Len(t, o.Pets[1].Visits, 2)
	assert.Equal(t, "rabies shot", o.Pets[1].Visits[0].Description)
	assert.Equal(t, "spayed", o.Pets[1].Visits[1].Description)
}

func TestPetInitCreationForm_HasOwnerPetAndTypes(t *testing.T) {
	f := newFixture()

	resp, err := f.pets.InitCreationForm(request(http.MethodGet, "/owners/1/pets/new", nil, "ownerId", "1"))
	require.NoError(t, err)

	assert.Equal(t, "pets/createOrUpdatePetForm", resp.ViewName())
	assert.Contains(t, resp.Model(), "owner")
	assert.Contains(t, resp.Model(), "types")
	pet := resp.Model()["pet"].(*owners.Pet)
	assert.True(t, pet.IsNew())
	assert.Equal(t, 1, pet.OwnerID)
}

func TestPetProcessCreationForm_RejectsDuplicateName(t *testing.T) {
	f := newFixture()

	form := url.Values{"name": {"Leo"}, "type": {"cat"}, "birthDate": {"2020-01-01"}}
	resp, err := f.pets.ProcessCreationForm(request(http.MethodPost, "/owners/1/pets/new", form, "ownerId", "1"))
	require.NoError(t, err)

	assert.Equal(t, "pets/createOrUpdatePetForm", resp.ViewName())
	fe, ok := errorsOf(t, resp).Get("name")
	require.True(t, ok)
	assert.Equal(t, validation.CodeDuplicate, fe.Code)
	assert.Equal(t, "already exists", fe.Message)
	assert.Contains(t, resp.Model(), "owner")
	assert.Contains(t, resp.Model(), "types")
}

func TestPetProcessCreationForm_DuplicateCheckIsCaseSensitive(t *testing.T) {
	f := newFixture()

	form := url.Values{"name": {"leo"}, "type": {"cat"}, "birthDate": {"2020-01-01"}}
	resp, err := f.pets.ProcessCreationForm(request(http.MethodPost, "/owners/1/pets/new", form, "ownerId", "1"))
	require.NoError(t, err)

	assert.True(t, resp.IsRedirect())
}

func TestPetProcessCreationForm_SavesAndRedirects(t *testing.T) {
	f := newFixture()

	form := url.Values{"name": {"Toby"}, "type": {"hamster"}, "birthDate": {"2024-06-01"}}
	resp, err := f.pets.ProcessCreationForm(request(http.MethodPost, "/owners/1/pets/new", form, "ownerId", "1"))
	require.NoError(t, err)

	require.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/1", resp.RedirectLocation())

	o, err := f.store.Owners().FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, o.Pets, 2)
	assert.Equal(t, "Leo", o.Pets[0].Name)
	assert.Equal(t, "Toby", o.Pets[1].Name)
	assert.Equal(t, "hamster", o.Pets[1].TypeName())
}

func TestPetProcessCreationForm_ValidationErrors(t *testing.T) {
	f := newFixture()

	form := url.Values{"name": {""}, "type": {"dragon"}, "birthDate": {"2024-06-02"}}
	resp, err := f.pets.ProcessCreationForm(request(http.MethodPost, "/owners/1/pets/new", form, "ownerId", "1"))
	require.NoError(t, err)

	errs := errorsOf(t, resp)
	name, _ := errs.Get("name")
	assert.Equal(t, validation.CodeRequired, name.Code)

	typ, _ := errs.Get("type")
	assert.Equal(t, validation.CodeTypeMismatch, typ.Code)
	assert.Equal(t, "dragon", typ.RejectedValue)

	birth, _ := errs.Get("birthDate")
	assert.Equal(t, validation.CodeFuture, birth.Code)
}

func TestPetProcessUpdateForm_AllowsSiblingName(t *testing.T) {
	f := newFixture()

	// El dueño 3 tiene a Rosy (3) y Jewel (4); en update no se revisan duplicados.
	form := url.Values{"name": {"Jewel"}, "type": {"dog"}, "birthDate": {"2011-04-17"}}
	resp, err := f.pets.ProcessUpdateForm(request(http.MethodPost, "/owners/3/pets/3/edit", form, "ownerId", "3", "petId", "3"))
	require.NoError(t, err)

	require.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/3", resp.RedirectLocation())

	p, err := f.store.Pets().FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Jewel", p.Name)
	assert.Equal(t, 3, p.OwnerID)
}

func TestPetInitUpdateForm(t *testing.T) {
	f := newFixture()

	resp, err := f.pets.InitUpdateForm(request(http.MethodGet, "/owners/3/pets/4/edit", nil, "ownerId", "3", "petId", "4"))
	require.NoError(t, err)
	assert.Equal(t, "Jewel", resp.Model()["pet"].(*owners.Pet).Name)

	resp, err = f.pets.InitUpdateForm(request(http.MethodGet, "/owners/1/pets/4/edit", nil, "ownerId", "1", "petId", "4"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = f.pets.InitUpdateForm(request(http.MethodGet, "/owners/3/pets/99/edit", nil, "ownerId", "3", "petId", "99"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestVisitInitForm_DefaultsToToday(t *testing.T) {
	f := newFixture()

	resp, err := f.visits.InitNewVisitForm(request(http.MethodGet, "/owners/6/pets/8/visits/new", nil, "ownerId", "6", "petId", "8"))
	require.NoError(t, err)

	assert.Equal(t, "pets/createOrUpdateVisitForm", resp.ViewName())
	v := resp.Model()["visit"].(*owners.Visit)
	assert.True(t, v.IsNew())
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), v.Date)

	pet := resp.Model()["pet"].(*owners.Pet)
	assert.Len(t, pet.Visits, 2)
}

func TestVisitProcessForm(t *testing.T) {
	f := newFixture()

	resp, err := f.visits.ProcessNewVisitForm(request(http.MethodPost, "/owners/6/pets/8/visits/new",
		url.Values{"description": {" "}}, "ownerId", "6", "petId", "8"))
	require.NoError(t, err)
	assert.True(t, errorsOf(t, resp).Has("description"))
	assert.Contains(t, resp.Model(), "pet")

	resp, err = f.visits.ProcessNewVisitForm(request(http.MethodPost, "/owners/6/pets/8/visits/new",
		url.Values{"description": {"vaccine"}, "date": {"2024-05-30"}}, "ownerId", "6", "petId", "8"))
	require.NoError(t, err)
	require.True(t, resp.IsRedirect())
	assert.Equal(t, "/owners/6", resp.RedirectLocation())

	visits, err := f.store.Visits().FindByPetID(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, "vaccine", visits[2].Description)
}

func TestVisitProcessForm_PetOfOtherOwnerIs404(t *testing.T) {
	f := newFixture()

	resp, err := f.visits.ProcessNewVisitForm(request(http.MethodPost, "/owners/1/pets/8/visits/new",
		url.Values{"description": {"x"}}, "ownerId", "1", "petId", "8"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}
