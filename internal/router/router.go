package router

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petclinic/docs" // Swagger docs

	mem "petclinic/internal/adapters/storage/memory"
	"petclinic/internal/adapters/storage/sqldb"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/system"
	"petclinic/internal/domain/vets"
	"petclinic/internal/middleware"
	"petclinic/internal/platform/web"
	"petclinic/internal/views"
)

type Options struct {
	Logger *slog.Logger // puede ser nil (slog.Default)

	// Opcional: si viene, usa SQL con Dialect (default Postgres). Si no, in-memory con datos de ejemplo.
	DB      *sql.DB
	Dialect sqldb.Dialect

	// DevMode publica la UI de swagger en /swagger/.
	DevMode bool

	// Views es opcional; por defecto las plantillas embebidas.
	Views web.Views

	// Now es opcional (tests); por defecto time.Now.
	Now func() time.Time
}

// repositories agrupa los repos de un storage (memoria o SQL).
type repositories interface {
	Owners() owners.OwnerRepository
	Pets() owners.PetRepository
	Visits() owners.VisitRepository
	Vets() vets.Repository
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	v := opts.Views
	if v == nil {
		v = views.MustNew()
	}
	x := web.NewResponder(v, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDHeader)
	r.Use(httplog.RequestLogger(log, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS.Concise(true),
	}))
	r.Use(middleware.Recover(x))

	// 404 de chi (incluye ids no numéricos): sin cuerpo, como web.NotFound.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if opts.DevMode {
		r.Handle("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
		r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
		})
	}

	var store repositories
	if opts.DB != nil {
		dialect := opts.Dialect
		if dialect == "" {
			dialect = sqldb.Postgres
		}
		store = sqldb.NewStore(opts.DB, dialect)
	} else {
		store = mem.NewSeededStore()
	}

	// Rutas por módulo
	system.RegisterRoutes(r, x)
	owners.RegisterRoutes(r, x, owners.Deps{
		Owners: store.Owners(),
		Pets:   store.Pets(),
		Visits: store.Visits(),
		Now:    opts.Now,
	})
	vets.RegisterRoutes(r, x, store.Vets())

	return r
}
