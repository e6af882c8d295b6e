package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"anoa.com/storyassistant/internal/entity"
	"anoa.com/storyassistant/internal/modules/user/dto"
	"anoa.com/storyassistant/internal/modules/user/repository"
	"anoa.com/storyassistant/pkg/apperror"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type stubSearch struct {
	token string
	err   error
}

func (s *stubSearch) IndexStory(*entity.Story) error { return nil }
func (s *stubSearch) DeleteStory(string) error       { return nil }
func (s *stubSearch) GenerateSearchToken(string) (string, error) {
	return s.token, s.err
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&entity.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func registerRequest(username, email, password string) dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:  "Alice",
		LastName:   "Liddell",
		Email:      email,
		Profession: entity.ProfessionStudent,
		Username:   username,
		Phone:      "555-0100",
		Password:   password,
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, nil)
	ctx := context.Background()

	created, err := svc.Register(ctx, registerRequest("alice", "Alice@Example.com", "pw1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.PasswordHash != "" {
		t.Fatalf("password hash must not be returned")
	}

	var stored entity.User
	if err := db.First(&stored, "username = ?", "alice").Error; err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "pw1" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", stored.Email)
	}

	user, err := svc.Authenticate(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("authenticated wrong user: %s", user.ID)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", "pw1")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Authenticate(ctx, "alice", "nope")
	_, unknownUser := svc.Authenticate(ctx, "bob", "pw1")

	if !errors.Is(wrongPassword, apperror.ErrInvalidCredential) || !errors.Is(unknownUser, apperror.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential for both, got %v and %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, nil)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", "pw1")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Register(ctx, registerRequest("alice", "other@example.com", "pw2")); !errors.Is(err, apperror.ErrDuplicateCredential) {
		t.Fatalf("expected duplicate username error, got %v", err)
	}
	if _, err := svc.Register(ctx, registerRequest("alice2", "alice@example.com", "pw2")); !errors.Is(err, apperror.ErrDuplicateCredential) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	var count int64
	db.Model(&entity.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, nil)
	ctx := context.Background()

	// 40 characters but 80 bytes.
	_, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", strings.Repeat("é", 40)))
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apperror.MapErrorToStatus(err))
	}

	if _, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", strings.Repeat("é", 36))); err != nil {
		t.Fatalf("72-byte password should be accepted: %v", err)
	}
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, &stubSearch{token: "tenant"})
	ctx := context.Background()

	created, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", "pw1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.TokenType != "Bearer" || res.SearchToken != "tenant" {
		t.Fatalf("unexpected response: %+v", res)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != created.ID.String() {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestLoginSurvivesSearchTokenFailure(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, &stubSearch{err: errors.New("meili down")})
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("alice", "alice@example.com", "pw1")); err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.SearchToken != "" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestMeUnknownUser(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, nil)

	if _, err := svc.Me(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
