package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"hocr_map/cmd/migration/versions"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func postgresDsn(databaseUri string) string {
	parts, err := url.Parse(databaseUri)
	if err != nil {
		log.Fatalf("error parsing db uri: %v", err)
	}
	pwd, _ := parts.User.Password()
	dbname := strings.TrimPrefix(parts.Path, "/")
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v", parts.Hostname(), parts.User.Username(), pwd, dbname, parts.Port())
}

func main() {
	envFile := flag.String("env", "", "File to load env variables from. If not specified will just load them from the environment variables already defined.")

	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("error loading .env file '%v': %v", *envFile, err)
		}
	}

	databaseUri := os.Getenv("DATABASE_URI")
	if databaseUri == "" {
		log.Fatal("DATABASE_URI env var must be specified")
	}

	db, err := gorm.Open(postgres.Open(postgresDsn(databaseUri)), &gorm.Config{})
	if err != nil {
		log.Fatalf("error opening database connection: %v", err)
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240907012138_create_boats_view",
			Migrate: func(txn *gorm.DB) error {
				return versions.Migration_0_create_boats_view(txn)
			},
			Rollback: func(txn *gorm.DB) error {
				return txn.Migrator().DropTable("placements", "boats")
			},
		},
		{
			ID: "20240920151544_authentication",
			Migrate: func(txn *gorm.DB) error {
				return versions.Migration_1_authentication(txn)
			},
			Rollback: func(txn *gorm.DB) error {
				return txn.Migrator().DropTable("users")
			},
		},
		{
			ID: "20241010052243_add_fields_to_boats",
			Migrate: func(txn *gorm.DB) error {
				return versions.Migration_2_add_fields_to_boats(txn)
			},
		},
		{
			ID: "20241010083501_placement_uuid_ids",
			Migrate: func(txn *gorm.DB) error {
				return versions.Migration_3_placement_uuid_ids(txn)
			},
		},
	})

	if err := m.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("migrations applied successfully")
}
