package tests

import (
	"bytes"
	"testing"

	"hocr_map/map_server/auth"
	"hocr_map/map_server/schema"
	"hocr_map/map_server/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	mapServer services.MapServer
	api       chi.Router
	db        *gorm.DB
}

const (
	editorEmail    = "editor@mail.com"
	editorPassword = "editor_password123"
)

func setupTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	// Every connection to an in-memory sqlite db gets its own database, so
	// the pool must be pinned to a single connection. This also serializes
	// concurrent transactions the way the postgres isolation level does.
	sqlDb, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDb.SetMaxOpenConns(1)

	err = db.AutoMigrate(&schema.Boat{}, &schema.Placement{}, &schema.User{})
	if err != nil {
		t.Fatal(err)
	}

	userAuth, err := auth.NewBasicIdentityProvider(
		db,
		auth.NewAuditLogger(new(bytes.Buffer)),
		auth.BasicProviderArgs{
			Secret:         []byte("290zcv02ai249"),
			EditorEmail:    editorEmail,
			EditorPassword: editorPassword,
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	mapServer := services.NewMapServer(db, userAuth)

	return &testEnv{mapServer: mapServer, api: mapServer.Routes(), db: db}
}

// seedBoats inserts catalog entries directly, since boats are created
// out-of-band in production (seed data or admin edits).
func (e *testEnv) seedBoats(t *testing.T, boats ...schema.Boat) {
	result := e.db.Create(&boats)
	if result.Error != nil {
		t.Fatal(result.Error)
	}
}

func (e *testEnv) placementCount(t *testing.T, boatId int, view string) int64 {
	var count int64
	result := e.db.Model(&schema.Placement{}).Where("boat_id = ? AND view_name = ?", boatId, view).Count(&count)
	if result.Error != nil {
		t.Fatal(result.Error)
	}
	return count
}

func (e *testEnv) newClient() client {
	return client{api: e.api}
}

func (e *testEnv) editorClient() (client, error) {
	c := e.newClient()
	err := c.login(loginInfo{Email: editorEmail, Password: editorPassword})
	return c, err
}

func (e *testEnv) newViewer(email string) (client, error) {
	c := e.newClient()
	login, err := c.register(email, email+"_password")
	if err != nil {
		return client{}, err
	}

	err = c.login(login)
	if err != nil {
		return client{}, err
	}

	return c, nil
}
