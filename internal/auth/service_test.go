package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aslanbek/stayhub/internal/config"
	"github.com/google/uuid"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		BcryptCost:         4,
	}
}

func seedStaff(t *testing.T, store *memoryStore, service *Service, email, password string, isAdmin bool) Staff {
	t.Helper()
	staff, err := service.CreateStaff(context.Background(), CreateStaffInput{
		Email:    email,
		Password: password,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		t.Fatalf("create staff returned error: %v", err)
	}
	return staff
}

func TestCreateStaffStripsPasswordHash(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())

	staff := seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", false)

	if staff.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from response")
	}
	if len(store.staff) != 1 {
		t.Fatalf("expected staff stored, got %d", len(store.staff))
	}
	stored := store.staff["ops@stayhub.kz"]
	if stored.PasswordHash == "" || stored.PasswordHash == "StrongPass1!" {
		t.Fatalf("stored password must be hashed")
	}
}

func TestCreateStaffDuplicateEmail(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())
	seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", false)

	_, err := service.CreateStaff(context.Background(), CreateStaffInput{
		Email:    "ops@stayhub.kz",
		Password: "AnotherPass2!",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())
	seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", true)

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "OPS@stayhub.kz",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected both tokens issued")
	}
	if result.Staff.PasswordHash != "" {
		t.Fatalf("expected password hash stripped from login result")
	}

	claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.Email != "ops@stayhub.kz" || !claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())
	seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", false)

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "ops@stayhub.kz",
		Password: "WrongPass1!",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := NewService(newMemoryStore(), testConfig())

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "ghost@stayhub.kz",
		Password: "StrongPass1!",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())
	seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", false)

	login, err := service.Login(context.Background(), LoginInput{
		Email:    "ops@stayhub.kz",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	refreshed, err := service.Refresh(context.Background(), login.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	if refreshed.Tokens.RefreshToken == login.Tokens.RefreshToken {
		t.Fatalf("refresh must rotate the token")
	}

	// the consumed token must be dead
	if _, err := service.Refresh(context.Background(), login.Tokens.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for reused token, got %v", err)
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	store := newMemoryStore()
	service := NewService(store, testConfig())
	seedStaff(t, store, service, "ops@stayhub.kz", "StrongPass1!", false)

	login, err := service.Login(context.Background(), LoginInput{
		Email:    "ops@stayhub.kz",
		Password: "StrongPass1!",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	service.nowFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := service.ValidateAccessToken(login.Tokens.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	service := NewService(newMemoryStore(), testConfig())

	for _, token := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := service.ValidateAccessToken(token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", token, err)
		}
	}
}

// memoryStore implements staffStore for tests.
type memoryStore struct {
	staff         map[string]Staff
	refreshTokens map[string]uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		staff:         make(map[string]Staff),
		refreshTokens: make(map[string]uuid.UUID),
	}
}

func (m *memoryStore) CreateStaff(ctx context.Context, email, passwordHash string, displayName *string, isAdmin bool) (Staff, error) {
	if _, ok := m.staff[email]; ok {
		return Staff{}, ErrEmailAlreadyExists
	}
	staff := Staff{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.staff[email] = staff
	return staff, nil
}

func (m *memoryStore) FindStaffByEmail(ctx context.Context, email string) (Staff, error) {
	staff, ok := m.staff[email]
	if !ok {
		return Staff{}, ErrStaffNotFound
	}
	return staff, nil
}

func (m *memoryStore) FindStaffByID(ctx context.Context, id uuid.UUID) (Staff, error) {
	for _, staff := range m.staff {
		if staff.ID == id {
			return staff, nil
		}
	}
	return Staff{}, ErrStaffNotFound
}

func (m *memoryStore) StoreRefreshToken(ctx context.Context, staffID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	m.refreshTokens[tokenHash] = staffID
	return nil
}

func (m *memoryStore) ConsumeRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	staffID, ok := m.refreshTokens[tokenHash]
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	delete(m.refreshTokens, tokenHash)
	return staffID, nil
}
