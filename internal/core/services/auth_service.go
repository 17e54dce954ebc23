package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/platform/config"
	"github.com/SscSPs/mini_bank_api/internal/utils"
)

// authService registers users and exchanges credentials for access tokens.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config, eventLogger ports.EventLogger) portssvc.AuthSvc {
	return &authService{
		BaseService: BaseService{EventLogger: eventLogger},
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Register creates a STANDARD user. The role is never taken from the request.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	start := time.Now()
	payload := domain.UserPayload{Username: req.Username}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		s.RecordEvent(ctx, domain.EventUserRegistrationFailed, start, domain.Caller{}, apperrors.CodeInternalServerError, payload)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.SaveUser(ctx, domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleStandard,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			conflict := apperrors.Conflict(apperrors.CodeUsernameAlreadyExists, "Username already exists", nil)
			conflict.Err = err
			s.RecordEvent(ctx, domain.EventUserRegistrationFailed, start, domain.Caller{}, conflict.Code, payload)
			return nil, conflict
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		s.RecordEvent(ctx, domain.EventUserRegistrationFailed, start, domain.Caller{}, errorCodePersistenceFailure, payload)
		return nil, err
	}

	userID := strconv.FormatInt(user.UserID, 10)
	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	s.RecordEvent(ctx, domain.EventUserRegistered, start, domain.Caller{ActorID: userID, Role: user.Role}, "",
		domain.UserPayload{UserID: userID, Username: user.Username, UserRole: user.Role})

	return &dto.RegisterResponse{ID: userID}, nil
}

// Login verifies the credentials and issues a signed access token. Unknown
// users and wrong passwords fail the same way.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	start := time.Now()
	payload := domain.UserPayload{Username: req.Username}
	invalid := apperrors.Unauthorized(apperrors.CodeInvalidCredentials, "Invalid credentials", nil)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.RecordEvent(ctx, domain.EventLoginFailed, start, domain.Caller{}, invalid.Code, payload)
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to find user", slog.String("username", req.Username))
		s.RecordEvent(ctx, domain.EventLoginFailed, start, domain.Caller{}, errorCodePersistenceFailure, payload)
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.RecordEvent(ctx, domain.EventLoginFailed, start, domain.Caller{}, invalid.Code, payload)
		return nil, invalid
	}

	userID := strconv.FormatInt(user.UserID, 10)
	token, err := utils.GenerateJWT(userID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", userID))
		s.RecordEvent(ctx, domain.EventLoginFailed, start, domain.Caller{}, apperrors.CodeInternalServerError, payload)
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	actor := domain.Caller{ActorID: userID, Role: user.Role}
	s.RecordEvent(ctx, domain.EventLoginSucceeded, start, actor, "",
		domain.UserPayload{UserID: userID, Username: user.Username, UserRole: user.Role})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: s.cfg.JWTExpiryDuration.Milliseconds(),
	}, nil
}

// SeedAdmin creates the ADMIN user unless the username already exists. An
// existing user is never modified.
func (s *authService) SeedAdmin(ctx context.Context, username, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := s.userRepo.EnsureUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("seed admin %q: %w", username, err)
	}

	if created {
		s.LogInfo(ctx, "Admin seeded", slog.String("username", username))
	} else {
		s.LogDebug(ctx, "Admin already present", slog.String("username", username))
	}
	return nil
}
