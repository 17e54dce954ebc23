package services

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/dto"
)

// AuthSvc defines user registration and credential exchange.
type AuthSvc interface {
	// Register creates a STANDARD user.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// SeedAdmin makes sure an ADMIN user with the given credentials exists.
	SeedAdmin(ctx context.Context, username, password string) error
}
