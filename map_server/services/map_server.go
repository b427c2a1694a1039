package services

import (
	"log"
	"net/http"
	"os"

	"hocr_map/map_server/auth"
	"hocr_map/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type MapServer struct {
	user      UserService
	catalog   CatalogService
	placement PlacementService

	db *gorm.DB
}

func NewMapServer(db *gorm.DB, userAuth auth.IdentityProvider) MapServer {
	return MapServer{
		user:      UserService{db: db, userAuth: userAuth},
		catalog:   CatalogService{db: db, userAuth: userAuth},
		placement: PlacementService{db: db, userAuth: userAuth},
		db:        db,
	}
}

func (m *MapServer) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger: log.New(os.Stderr, "", log.LstdFlags), NoColor: false,
	}))

	r.Mount("/user", m.user.Routes())
	r.Mount("/boats", m.catalog.Routes())
	r.Mount("/boats_view", m.placement.Routes())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteSuccess(w)
	})

	return r
}
