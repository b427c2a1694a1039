package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hocr_map/map_server/schema"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFoundWithEmail = errors.New("no user found for given email")
	ErrInvalidCredentials    = errors.New("invalid login credentials")
	ErrGeneratingJwt         = errors.New("error generating jwt")
	ErrEmailAlreadyInUse     = errors.New("email is already in use")
)

type LoginResult struct {
	UserId      uuid.UUID
	AccessToken string
	IsEditor    bool
}

type IdentityProvider interface {
	AuthMiddleware() chi.Middlewares

	LoginWithEmail(email, password string) (LoginResult, error)

	CreateUser(email, password string) (uuid.UUID, error)

	GetTokenExpiration(r *http.Request) (time.Time, error)
}

func addInitialEditorToDb(db *gorm.DB, userId uuid.UUID, email string, password []byte) error {
	user := schema.User{
		Id:       userId,
		Email:    email,
		Password: password,
		IsEditor: true,
	}

	err := db.Transaction(func(txn *gorm.DB) error {
		var existingUser schema.User
		result := txn.Limit(1).Find(&existingUser, "id = ? or email = ?", userId, email)
		if result.Error != nil {
			slog.Error("sql error checking if initial editor has already been added", "error", result.Error)
			return schema.ErrDbAccessFailed
		}
		if result.RowsAffected == 0 {
			result := txn.Create(&user)
			if result.Error != nil {
				slog.Error("sql error creating initial editor user", "error", result.Error)
				return schema.ErrDbAccessFailed
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding initial editor to db: %w", err)
	}

	return nil
}

type requestContextKey string

const UserRequestContextKey requestContextKey = "user"
