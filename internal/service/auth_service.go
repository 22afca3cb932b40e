package service

import (
	"EnvWatchAPI/internal/config"
	"EnvWatchAPI/internal/helper"
	"EnvWatchAPI/internal/model"
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// CredentialVerifier checks a username/password pair against some backing
// store and returns the matching admin identity.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*model.AdminDTO, error)
}

var errInvalidCredentials = errors.New("invalid credentials")

// StaticCredentialVerifier holds a single admin account seeded from the
// environment. The password is bcrypt-hashed at construction; the plaintext is
// not retained.
type StaticCredentialVerifier struct {
	username     string
	passwordHash string
}

func NewStaticCredentialVerifier(username, password string) (*StaticCredentialVerifier, error) {
	hash, err := helper.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &StaticCredentialVerifier{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (v *StaticCredentialVerifier) Verify(ctx context.Context, username, password string) (*model.AdminDTO, error) {
	if username != v.username || !helper.CheckPasswordHash(password, v.passwordHash) {
		return nil, errInvalidCredentials
	}
	return &model.AdminDTO{
		Username: v.username,
		Role:     "admin",
	}, nil
}

type AuthService struct {
	verifier  CredentialVerifier
	cfg       *config.AppConfig
	validator *validator.Validate
}

func NewAuthService(verifier CredentialVerifier, cfg *config.AppConfig, validator *validator.Validate) *AuthService {
	return &AuthService{
		verifier:  verifier,
		cfg:       cfg,
		validator: validator,
	}
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("Username and password are required")
	}

	user, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		slog.Warn("Admin login rejected", "username", req.Username)
		return nil, helper.NewUnauthorizedError("Invalid credentials")
	}

	token, err := helper.GenerateJWT(s.cfg.JWTSecret, s.cfg.JWTExp, user.Username, user.Role)
	if err != nil {
		slog.Error("Failed to generate JWT token", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return &model.LoginResponse{
		Success: true,
		Token:   token,
		User:    *user,
	}, nil
}

// VerifyToken parses and validates a bearer token, returning the admin
// identity encoded in it.
func (s *AuthService) VerifyToken(tokenString string) (*model.AdminDTO, error) {
	claims, err := helper.ParseJWT(s.cfg.JWTSecret, tokenString)
	if err != nil {
		return nil, helper.NewUnauthorizedError("")
	}

	return &model.AdminDTO{
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
