package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"hocr_map/map_server/auth"
	"hocr_map/map_server/schema"
	"hocr_map/map_server/services"

	"github.com/caarlos0/env/v10"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mapServerEnv struct {
	DatabaseUri string `env:"DATABASE_URI,required"`
	JwtSecret   string `env:"JWT_SECRET,required"`

	EditorEmail    string `env:"EDITOR_EMAIL,required"`
	EditorPassword string `env:"EDITOR_PASSWORD,required"`

	LogDir     string `env:"LOG_DIR" envDefault:"logs"`
	CorsOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
}

/**
 * ==========================================================================
 * ==== All variables used by the map server must be loaded here. This   ====
 * ==== is to make the data flow clear so that a user can see what       ====
 * ==== variables are exposed, and how the values are propagated through ====
 * ==== the system.                                                      ====
 * ==========================================================================
 */
func loadEnv() (*mapServerEnv, error) {
	cfg := &mapServerEnv{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(envFile string) error {
	slog.Info(fmt.Sprintf("loading env from file %v", envFile))
	return godotenv.Load(envFile)
}

func (e *mapServerEnv) postgresDsn() (string, error) {
	parts, err := url.Parse(e.DatabaseUri)
	if err != nil {
		return "", fmt.Errorf("error parsing db uri: %w", err)
	}
	pwd, _ := parts.User.Password()
	dbname := strings.TrimPrefix(parts.Path, "/")
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v", parts.Hostname(), parts.User.Username(), pwd, dbname, parts.Port()), nil
}

func initLogging(logFile *os.File) {
	log.SetFlags(log.Lshortfile | log.Ltime | log.Ldate)
	log.SetOutput(io.MultiWriter(logFile, os.Stderr))
	slog.Info("logging initialized", "log_file", logFile.Name())
}

func initDb(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	err = db.AutoMigrate(&schema.Boat{}, &schema.Placement{}, &schema.User{})
	if err != nil {
		return nil, fmt.Errorf("error migrating db schema: %w", err)
	}

	return db, nil
}

func runApp() error {
	envFile := flag.String("env", "", "File to load env variables from. If not specified will just load them from the environment variables already defined.")
	port := flag.Int("port", 8080, "Port to run server on")

	flag.Parse()

	if *envFile != "" {
		if err := loadEnvFile(*envFile); err != nil {
			return fmt.Errorf("error loading .env file '%v': %w", *envFile, err)
		}
	}

	env, err := loadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := os.MkdirAll(env.LogDir, 0777); err != nil {
		return fmt.Errorf("error creating log dir: %w", err)
	}

	logFile, err := os.OpenFile(filepath.Join(env.LogDir, "map_server.log"), os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer logFile.Close()

	auditLog, err := os.OpenFile(filepath.Join(env.LogDir, "audit.log"), os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return fmt.Errorf("error opening audit log file: %w", err)
	}
	defer auditLog.Close()

	initLogging(logFile)

	dsn, err := env.postgresDsn()
	if err != nil {
		return err
	}

	db, err := initDb(dsn)
	if err != nil {
		return err
	}

	identityProvider, err := auth.NewBasicIdentityProvider(
		db,
		auth.NewAuditLogger(auditLog),
		auth.BasicProviderArgs{
			Secret:         []byte(env.JwtSecret),
			EditorEmail:    env.EditorEmail,
			EditorPassword: env.EditorPassword,
		},
	)
	if err != nil {
		return fmt.Errorf("error creating identity provider: %w", err)
	}

	mapServer := services.NewMapServer(db, identityProvider)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{env.CorsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Mount("/api", mapServer.Routes())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: r,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutdown signal received")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("HTTP server Shutdown", "err", err)
		}
		close(idleConnsClosed)
	}()

	slog.Info("starting server", "port", *port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve returned error: %w", err)
	}

	<-idleConnsClosed
	return nil
}

func main() {
	if err := runApp(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}
