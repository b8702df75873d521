package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/logging"
	"go-shop/middleware"
	"go-shop/services"
	"go-shop/store"
	"go-shop/utils"
)

// AuthController handles registration, login and the profile endpoint.
type AuthController struct {
	Svc       *services.AuthService
	Users     store.UserStore
	JWTSecret []byte
}

// Register handles user registration
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := ac.Svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and returns a bearer token.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := ac.Svc.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		// Unknown email and wrong password answer alike; no account
		// enumeration over the wire.
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		writeError(r.Context(), w, err)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.IsAdmin, ac.JWTSecret)
	if err != nil {
		logging.FromContext(r.Context()).Error("token generation failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile retrieves the authenticated user's profile
func (ac *AuthController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, err := ac.Users.FindByID(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
