package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aslanbek/stayhub/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenLength = 48
	maxPasswordLength  = 72 // bcrypt limit
)

// staffStore abstracts the persistence layer.
type staffStore interface {
	CreateStaff(ctx context.Context, email, passwordHash string, displayName *string, isAdmin bool) (Staff, error)
	FindStaffByEmail(ctx context.Context, email string) (Staff, error)
	FindStaffByID(ctx context.Context, id uuid.UUID) (Staff, error)
	StoreRefreshToken(ctx context.Context, staffID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
}

// Service encapsulates staff authentication use cases.
type Service struct {
	store   staffStore
	cfg     config.AuthConfig
	nowFunc func() time.Time
	issuer  string
	parser  *jwt.Parser
}

// NewService creates a Service with dependencies.
func NewService(store staffStore, cfg config.AuthConfig) *Service {
	return &Service{
		store:   store,
		cfg:     cfg,
		nowFunc: time.Now,
		issuer:  "stayhub",
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// CreateStaffInput carries data for an admin-created staff account.
type CreateStaffInput struct {
	Email       string
	Password    string
	DisplayName *string
	IsAdmin     bool
}

// AuthResult contains staff and token information.
type AuthResult struct {
	Staff  Staff
	Tokens TokenPair
}

// StaffClaims describes the validated identity extracted from an access token.
type StaffClaims struct {
	StaffID   uuid.UUID
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Login authenticates credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	staff, err := s.store.FindStaffByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(input.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, staff)
}

// Refresh rotates a refresh token into a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrUnauthorized
	}

	staffID, err := s.store.ConsumeRefreshToken(ctx, hashRefreshToken(refreshToken, s.cfg.RefreshTokenSecret))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("consume refresh token: %w", err)
	}

	staff, err := s.store.FindStaffByID(ctx, staffID)
	if err != nil {
		return AuthResult{}, ErrUnauthorized
	}

	return s.issueTokens(ctx, staff)
}

// CreateStaff registers a new operator account on behalf of an admin.
func (s *Service) CreateStaff(ctx context.Context, input CreateStaffInput) (Staff, error) {
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return Staff{}, err
	}

	hashed, err := hashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return Staff{}, fmt.Errorf("hash password: %w", err)
	}

	staff, err := s.store.CreateStaff(ctx, strings.ToLower(input.Email), hashed, input.DisplayName, input.IsAdmin)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return Staff{}, ErrEmailAlreadyExists
		}
		return Staff{}, fmt.Errorf("create staff: %w", err)
	}

	return staff.Safe(), nil
}

// ValidateAccessToken verifies the token signature and extracts claims.
func (s *Service) ValidateAccessToken(tokenString string) (StaffClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return StaffClaims{}, ErrUnauthorized
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.AccessTokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return StaffClaims{}, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return StaffClaims{}, ErrUnauthorized
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return StaffClaims{}, ErrUnauthorized
	}

	staffID, err := uuid.Parse(sub)
	if err != nil {
		return StaffClaims{}, ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	expFloat, okExp := claims["exp"].(float64)
	if !okExp {
		return StaffClaims{}, ErrUnauthorized
	}
	exp := time.Unix(int64(expFloat), 0)

	iat := time.Time{}
	if iatFloat, ok := claims["iat"].(float64); ok {
		iat = time.Unix(int64(iatFloat), 0)
	}

	if exp.Before(s.nowFunc()) {
		return StaffClaims{}, ErrUnauthorized
	}

	return StaffClaims{
		StaffID:   staffID,
		Email:     email,
		IsAdmin:   isAdmin,
		ExpiresAt: exp,
		IssuedAt:  iat,
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, staff Staff) (AuthResult, error) {
	now := s.nowFunc()

	accessToken, accessExpiry, err := s.generateAccessToken(staff, now)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, refreshExpiry, err := s.generateRefreshToken(now)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshHash := hashRefreshToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err := s.store.StoreRefreshToken(ctx, staff.ID, refreshHash, refreshExpiry); err != nil {
		return AuthResult{}, fmt.Errorf("store refresh token: %w", err)
	}

	return AuthResult{
		Staff: staff.Safe(),
		Tokens: TokenPair{
			AccessToken:        accessToken,
			AccessTokenExpiry:  accessExpiry,
			RefreshToken:       refreshToken,
			RefreshTokenExpiry: refreshExpiry,
		},
	}, nil
}

func (s *Service) generateAccessToken(staff Staff, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := jwt.MapClaims{
		"sub":      staff.ID.String(),
		"iss":      s.issuer,
		"aud":      "stayhub-admin",
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"email":    staff.Email,
		"is_admin": staff.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *Service) generateRefreshToken(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.cfg.RefreshTokenTTL)

	raw := make([]byte, refreshTokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, err
	}

	token := base64.RawURLEncoding.EncodeToString(raw)
	return token, expiresAt, nil
}

func hashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordLength {
		return "", fmt.Errorf("password exceeds maximum length of %d characters", maxPasswordLength)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func hashRefreshToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func validateCredentials(email, password string) error {
	if len(strings.TrimSpace(email)) == 0 || len(strings.TrimSpace(password)) == 0 {
		return ErrInvalidCredentials
	}

	if len(password) < 8 || len(password) > maxPasswordLength {
		return ErrInvalidCredentials
	}
	return nil
}
