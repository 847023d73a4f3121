package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/taxitalk/server/internal/auth"
	"github.com/taxitalk/server/internal/domain"
	"github.com/taxitalk/server/internal/repository"
	"github.com/taxitalk/server/lib/logger/sl"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

const (
	minPasswordLength = 6
	maxUsernameLength = 64
)

// IdentityService is the identity provider: registration, login and token
// verification. The hub consumes it only through auth.TokenVerifier.
type IdentityService struct {
	users    repository.UserRepository
	tokens   *tokenStore
	tokenTTL time.Duration
	log      *slog.Logger
}

func NewIdentityService(users repository.UserRepository, tokenTTL time.Duration, log *slog.Logger) *IdentityService {
	if log == nil {
		log = slog.Default()
	}
	return &IdentityService{
		users:    users,
		tokens:   newTokenStore(),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (s *IdentityService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	const op = "service.identity.register"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, errors.New("username is too long")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, errors.New("password is too short")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return nil, err
	}

	user := domain.NewUser(username, passHash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		log.Error("failed to create user", sl.Err(err))
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

func (s *IdentityService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	const op = "service.identity.login"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", sl.Err(err))
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("wrong password")
		return "", nil, ErrInvalidCredentials
	}

	token := s.tokens.issue(user.ID, s.tokenTTL)
	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return token, user, nil
}

// VerifyToken resolves a session token to its user. Implements
// auth.TokenVerifier for the signaling hub.
func (s *IdentityService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, auth.ErrTokenMissing
	}

	userID, err := s.tokens.lookup(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *IdentityService) Profile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
