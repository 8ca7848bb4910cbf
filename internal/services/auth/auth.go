// Package auth содержит логику регистрации пользователей, выдачи и проверки токенов.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/jwt"
	"github.com/magabrotheeeer/foodgram/internal/lib/password"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/lib/validate"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

const (
	msgBadCredentials = "unable to log in with provided credentials"
	revokedPrefix     = "token:revoked:"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail возвращает пользователя по адресу почты.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// SetPasswordHash заменяет хэш пароля.
	SetPasswordHash(ctx context.Context, id int64, hash string) error
}

// Cache хранит отозванные токены до истечения их срока.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отвечает за регистрацию, вход и проверку токенов.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	revoked  Cache
	validate *validator.Validate
	log      *slog.Logger
}

// New создает новый экземпляр Service. revoked хранит токены, отозванные при выходе.
func New(users UserRepository, jwtMaker jwt.Maker, revoked Cache, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		revoked:  revoked,
		validate: validate.New(),
		log:      log,
	}
}

// Register проверяет данные и создает пользователя с хэшированным паролем.
func (s *Service) Register(ctx context.Context, in models.Registration) (*models.RegisteredUser, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(s.validate, in); err != nil {
		return nil, err
	}
	if strings.EqualFold(in.Username, "me") {
		return nil, apperr.Validation("username", "username: this name is reserved")
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hashed,
	}
	user.ID, err = s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", slog.Int64("id", user.ID))

	registered := user.Registered()
	return &registered, nil
}

// Login проверяет почту и пароль и выдаёт токен.
// Неизвестная почта и неверный пароль дают одну и ту же ошибку.
func (s *Service) Login(ctx context.Context, in models.Credentials) (string, error) {
	if err := validate.Struct(s.validate, in); err != nil {
		return "", err
	}
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.Validation("", msgBadCredentials)
	}
	if err != nil {
		return "", err
	}
	if err := password.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", apperr.Validation("", msgBadCredentials)
		}
		return "", err
	}
	return s.jwtMaker.GenerateToken(user.ID, user.Username)
}

// ValidateToken проверяет токен и возвращает его владельца.
// Токен удалённого пользователя недействителен.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthenticated("invalid token")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, apperr.Unauthenticated("invalid token")
	}
	if s.isRevoked(ctx, claims.ID) {
		return nil, apperr.Unauthenticated("token has been revoked")
	}
	user, err := s.users.GetUser(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthenticated("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout отзывает токен до истечения его срока действия.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return apperr.Unauthenticated("invalid token")
	}
	if claims.ExpiresAt == nil {
		return apperr.Unauthenticated("token has no expiry")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, revokedPrefix+claims.ID, true, ttl)
}

// SetPassword меняет пароль пользователя после проверки текущего.
func (s *Service) SetPassword(ctx context.Context, userID int64, in models.PasswordChange) error {
	if err := validate.Struct(s.validate, in); err != nil {
		return err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, in.CurrentPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return apperr.Validation("current_password", "current_password: invalid password")
		}
		return err
	}
	hashed, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPasswordHash(ctx, userID, hashed); err != nil {
		return err
	}
	s.log.Info("password changed", slog.Int64("user_id", userID))
	return nil
}

// isRevoked проверяет список отозванных токенов. Ошибки кэша только логируются.
func (s *Service) isRevoked(ctx context.Context, jti string) bool {
	var revoked bool
	found, err := s.revoked.Get(ctx, revokedPrefix+jti, &revoked)
	if err != nil {
		s.log.Warn("failed to check revoked token", sl.Err(err))
		return false
	}
	return found && revoked
}
