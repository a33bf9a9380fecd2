package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic/internal/adapters/storage/sqldb"
	"petclinic/internal/platform/logger"
	"petclinic/internal/router"
)

func fixedNow() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	opts.Logger = logger.Discard()
	opts.Now = fixedNow
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_OwnerPetVisit(t *testing.T) {
	ts := newServer(t, router.Options{})

	// 1) Alta de dueño
	st, hdr, _ := doReq(t, ts.URL, "POST", "/owners/new", url.Values{
		"firstName": {"Ana"},
		"lastName":  {"Paz"},
		"address":   {"Av. Siempre Viva 742"},
		"city":      {"Lima"},
		"telephone": {"5551234567"},
	}, "")
	require.Equal(t, http.StatusFound, st)
	ownerURL := hdr.Get("Location")
	require.Equal(t, "/owners/11", ownerURL)

	// 2) Detalle del dueño
	{
		st, _, body := doReq(t, ts.URL, "GET", ownerURL, nil, "")
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, body, "Ana Paz")
	}

	// 3) Alta de mascota
	{
		st, hdr, _ := doReq(t, ts.URL, "POST", ownerURL+"/pets/new", url.Values{
			"name": {"Milo"}, "type": {"dog"}, "birthDate": {"2020-01-01"},
		}, "")
		require.Equal(t, http.StatusFound, st)
		assert.Equal(t, ownerURL, hdr.Get("Location"))
	}

	// 4) Mismo nombre en alta => se re-muestra el formulario
	{
		st, _, body := doReq(t, ts.URL, "POST", ownerURL+"/pets/new", url.Values{
			"name": {"Milo"}, "type": {"cat"}, "birthDate": {"2021-01-01"},
		}, "")
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, body, "already exists")
	}

	// 5) Visita para la mascota nueva (id 14)
	{
		st, _, body := doReq(t, ts.URL, "GET", ownerURL+"/pets/14/visits/new", nil, "")
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, body, `value="2024-06-01"`)

		st, hdr, _ := doReq(t, ts.URL, "POST", ownerURL+"/pets/14/visits/new", url.Values{
			"date": {"2024-05-20"}, "description": {"first checkup"},
		}, "")
		require.Equal(t, http.StatusFound, st)
		assert.Equal(t, ownerURL, hdr.Get("Location"))
	}

	// 6) El detalle muestra mascota y visita
	{
		st, _, body := doReq(t, ts.URL, "GET", ownerURL, nil, "")
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, body, "Milo")
		assert.Contains(t, body, "first checkup")
	}

	// 7) Edición del dueño con error de validación
	{
		st, _, body := doReq(t, ts.URL, "POST", ownerURL+"/edit", url.Values{
			"firstName": {"Ana"}, "lastName": {"Paz"}, "address": {"x"}, "city": {"y"}, "telephone": {"phone"},
		}, "")
		require.Equal(t, http.StatusOK, st)
		assert.Contains(t, body, "numeric value out of bounds")
	}
}

func TestHTTP_FindOwners(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, _, body := doReq(t, ts.URL, "GET", "/owners?lastName=Davis", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Betty Davis")
	assert.Contains(t, body, "Harold Davis")

	st, hdr, _ := doReq(t, ts.URL, "GET", "/owners?lastName=Franklin", nil, "")
	require.Equal(t, http.StatusFound, st)
	assert.Equal(t, "/owners/1", hdr.Get("Location"))

	st, _, body = doReq(t, ts.URL, "GET", "/owners?lastName=Nobody", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "not found")

	st, _, body = doReq(t, ts.URL, "GET", "/owners", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Carlos Estaban")
}

func TestHTTP_NotFound(t *testing.T) {
	ts := newServer(t, router.Options{})

	for _, path := range []string{
		"/owners/abc",
		"/owners/999",
		"/owners/999/edit",
		"/owners/1/pets/4/edit",
		"/owners/1/pets/x/visits/new",
		"/nope",
	} {
		st, _, body := doReq(t, ts.URL, "GET", path, nil, "")
		assert.Equal(t, http.StatusNotFound, st, path)
		assert.Empty(t, body, path)
	}
}

func TestHTTP_Oups(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, _, body := doReq(t, ts.URL, "GET", "/oups", nil, "")
	assert.Equal(t, http.StatusInternalServerError, st)
	assert.Contains(t, body, "Something happened")
	assert.Contains(t, body, "Incident:")
}

func TestHTTP_Vets(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, hdr, body := doReq(t, ts.URL, "GET", "/vets", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))

	var resp struct {
		VetList []struct {
			ID              int    `json:"id"`
			LastName        string `json:"lastName"`
			NrOfSpecialties int    `json:"nrOfSpecialties"`
			Specialties     []struct {
				Name string `json:"name"`
			} `json:"specialties"`
		} `json:"vetList"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.VetList, 6)
	assert.Equal(t, "Douglas", resp.VetList[2].LastName)
	assert.Equal(t, 2, resp.VetList[2].NrOfSpecialties)
	assert.Equal(t, "dentistry", resp.VetList[2].Specialties[0].Name)

	st, hdr, body = doReq(t, ts.URL, "GET", "/vets", nil, "application/xml")
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "application/xml", hdr.Get("Content-Type"))
	assert.Contains(t, body, "<vets><vet><id>1</id>")

	st, _, body = doReq(t, ts.URL, "GET", "/vets", nil, "application/yaml")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "vetList:")

	st, _, body = doReq(t, ts.URL, "GET", "/vets.html", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Linda Douglas")
}

func TestHTTP_HealthAndRequestID(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, hdr, body := doReq(t, ts.URL, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", body)
	assert.NotEmpty(t, hdr.Get("X-Request-Id"))

	st, _, body = doReq(t, ts.URL, "GET", "/", nil, "")
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Welcome")
}

func TestHTTP_SwaggerOnlyInDevMode(t *testing.T) {
	prod := newServer(t, router.Options{})
	st, _, _ := doReq(t, prod.URL, "GET", "/swagger/index.html", nil, "")
	assert.Equal(t, http.StatusNotFound, st)

	dev := newServer(t, router.Options{DevMode: true})
	st, _, _ = doReq(t, dev.URL, "GET", "/swagger/index.html", nil, "")
	assert.Equal(t, http.StatusOK, st)

	st, _, body := doReq(t, dev.URL, "GET", "/swagger/doc.json", nil, "")
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "/vets")
}

func TestHTTP_SQLiteStorage(t *testing.T) {
	ctx := context.Background()
	db, err := sqldb.Open(ctx, sqldb.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.SQLite, logger.Discard()))

	ts := newServer(t, router.Options{DB: db, Dialect: sqldb.SQLite})

	st, hdr, _ := doReq(t, ts.URL, "GET", "/owners?lastName=Franklin", nil, "")
	require.Equal(t, http.StatusFound, st)
	assert.Equal(t, "/owners/1", hdr.Get("Location"))

	st, hdr, _ = doReq(t, ts.URL, "POST", "/owners/1/pets/new", url.Values{
		"name": {"Nala"}, "type": {"cat"}, "birthDate": {"2019-07-15"},
	}, "")
	require.Equal(t, http.StatusFound, st)
	assert.Equal(t, "/owners/1", hdr.Get("Location"))

	st, _, body := doReq(t, ts.URL, "GET", "/owners/1", nil, "")
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, body, "Nala")
	assert.Contains(t, body, "2019-07-15")
}

// doReq hace el request sin seguir redirecciones. form va como
// application/x-www-form-urlencoded; accept es opcional.
func doReq(t *testing.T, baseURL, method, path string, form url.Values, accept string) (int, http.Header, string) {
	t.Helper()

	var rdr io.Reader
	if form != nil {
		rdr = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	client := &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, string(b)
}
