package services

import (
	"errors"
	"fmt"
	"net/http"

	"hocr_map/map_server/auth"
	"hocr_map/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	userAuth auth.IdentityProvider
}

func (s *UserService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Get("/login", s.Login)
		r.Post("/logout", s.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.userAuth.AuthMiddleware()...)

		r.Get("/check-auth", s.CheckAuth)
	})

	return r
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserId uuid.UUID `json:"user_id"`
}

func (s *UserService) Register(w http.ResponseWriter, r *http.Request) {
	var params registerRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	userId, err := s.userAuth.CreateUser(params.Email, params.Password)
	if err != nil {
		responseCode := http.StatusInternalServerError
		if errors.Is(err, auth.ErrEmailAlreadyInUse) {
			responseCode = http.StatusConflict
		}
		http.Error(w, fmt.Sprintf("error registering user: %v", err), responseCode)
		return
	}

	utils.WriteJsonResponse(w, registerResponse{UserId: userId})
}

type loginResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
	Editor      bool      `json:"editor"`
}

func (s *UserService) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
		return
	}

	login, err := s.userAuth.LoginWithEmail(email, password)
	if err != nil {
		responseCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, auth.ErrUserNotFoundWithEmail):
			responseCode = http.StatusNotFound
		case errors.Is(err, auth.ErrInvalidCredentials):
			responseCode = http.StatusUnauthorized
		}
		http.Error(w, fmt.Sprintf("login failed: %v", err), responseCode)
		return
	}

	utils.WriteJsonResponse(w, loginResponse{UserId: login.UserId, AccessToken: login.AccessToken, Editor: login.IsEditor})
}

// Logout exists for the client contract. Sessions are stateless jwts with a
// short expiry, so there is nothing to invalidate server side; the client
// discards its token.
func (s *UserService) Logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w)
}

type checkAuthResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
	IsEditor        bool `json:"isEditor"`
}

func (s *UserService) CheckAuth(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.WriteJsonResponse(w, checkAuthResponse{IsAuthenticated: true, IsEditor: user.IsEditor})
}
