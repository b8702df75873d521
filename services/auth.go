package services

import (
	"context"
	"fmt"

	"go-shop/logging"
	"go-shop/models"
	"go-shop/store"
	"go-shop/utils"
)

// AuthService owns user credentials: registration with password hashing and
// login verification.
type AuthService struct {
	Users store.UserStore
	Email *utils.EmailService
}

// Register creates a new account. The password is stored only as a bcrypt
// hash, computed exactly once here. Returns store.ErrDuplicateEmail when the
// email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		l.Error("hash_error", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.Email != nil {
		// Best effort. A mail outage must not fail registration.
		if err := s.Email.SendWelcomeEmail(user.Email, user.Name); err != nil {
			l.Warn("welcome_email_failed", "error", err)
		}
	}

	l.Info("user registered", "user_id", user.ID.Hex())
	return user, nil
}

// Authenticate verifies email and password. Returns store.ErrNotFound for an
// unknown email and ErrInvalidCredentials for a bad password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
