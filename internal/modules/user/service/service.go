package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/storyassistant/internal/entity"
	search "anoa.com/storyassistant/internal/modules/search/service"
	"anoa.com/storyassistant/internal/modules/user/dto"
	"anoa.com/storyassistant/internal/modules/user/repository"
	"anoa.com/storyassistant/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*entity.User, error)
	// Authenticate returns ErrInvalidCredential for an unknown username and
	// for a wrong password alike.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*entity.User, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   string
	tokenTTL time.Duration
	search   search.StorySearchService
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration, search search.StorySearchService) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		search:   search,
	}
}

// bcrypt only looks at the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

var errPasswordTooLong = apperror.New(http.StatusBadRequest, "password must be at most 72 bytes", apperror.ErrInvalidInput)

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (*entity.User, error) {
	if len(input.Password) > maxPasswordBytes {
		return nil, errPasswordTooLong
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if err := s.ensureUserUnique(ctx, email, username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		log.Printf("Failed to hash password for %s: %v", username, err)
		return nil, apperror.ErrInternal
	}

	user := &entity.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		Profession:   input.Profession,
		Username:     username,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.ErrDuplicateCredential
		}
		log.Printf("Database error while creating user %s: %v", username, err)
		return nil, fmt.Errorf("error creating account: %w", apperror.ErrDatabase)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredential
		}
		log.Printf("Database error while loading user %s: %v", username, err)
		return nil, fmt.Errorf("error loading account: %w", apperror.ErrDatabase)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredential
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("error loading account: %w", apperror.ErrDatabase)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	var searchToken string
	if s.search != nil {
		st, err := s.search.GenerateSearchToken(user.ID.String())
		if err != nil {
			log.Printf("Failed to generate search token for user %s: %v", user.Username, err)
		} else {
			searchToken = st
		}
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
		SearchToken: searchToken,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func (s *authService) ensureUserUnique(ctx context.Context, email, username string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperror.ErrDuplicateCredential
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking account: %w", apperror.ErrDatabase)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return apperror.ErrDuplicateCredential
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error checking account: %w", apperror.ErrDatabase)
	}

	return nil
}

// isUniqueViolation covers drivers that do not translate their constraint
// errors into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
