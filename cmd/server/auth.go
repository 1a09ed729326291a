package main

import (
	"errors"
	"net/http"
	"time"
	configsqlite "vitibrasil-backend/lib/configutil/sqlite"
	"vitibrasil-backend/services/auth"
	"vitibrasil-backend/services/auth/db"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type AuthConfig struct {
	Database   configsqlite.Struct `json:"database"`
	SigningKey string              `json:"signing_key"`
	// defaults to 60
	TokenTTLMinutes int `json:"token_ttl_minutes"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func InitAuth(router chi.Router, cfg AuthConfig) (auth.Service, error) {
	sqlite, err := cfg.Database.OpenDB(db.Schema)
	if err != nil {
		return auth.Service{}, err
	}

	service := auth.NewService(sqlite, auth.Options{
		SigningKey: cfg.SigningKey,
		TokenTTL:   time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	})

	router.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		var body credentials
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil || body.Username == "" || body.Password == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"error":   "a username and password are required",
			})
			return
		}

		err = service.SignUp(r.Context(), body.Username, body.Password)
		if errors.Is(err, auth.ErrUserExists) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "could not create user",
			})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	})

	router.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"error":   "malformed form body",
			})
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		token, err := service.LogIn(r.Context(), username, password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "could not log in",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	return service, nil
}
