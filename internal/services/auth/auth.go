// Package auth содержит логику бизнес-уровня для регистрации
// и аутентификации пользователей маркетплейса.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/service-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/service-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateProviderProfile сохраняет профиль исполнителя.
	CreateProviderProfile(ctx context.Context, profile models.ProviderProfile) error

	// GetProviderProfile возвращает профиль исполнителя по UID пользователя.
	GetProviderProfile(ctx context.Context, userUID string) (*models.ProviderProfile, error)
}

// AuthService отвечает за регистрацию и авторизацию пользователей.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и стартовым
// балансом кредитов. Для роли provider дополнительно создаётся профиль
// исполнителя в статусе pending.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return "", models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Role:         req.Role,
		Credits:      models.DefaultCredits,
		IsActive:     true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	if req.Role == models.RoleProvider {
		profile := models.ProviderProfile{
			UserUID:         uid,
			ServiceCategory: req.ServiceCategory,
			ExperienceYears: req.ExperienceYears,
			Description:     req.Description,
			Status:          models.ProviderPending,
		}
		if err := s.users.CreateProviderProfile(ctx, profile); err != nil {
			return "", fmt.Errorf("failed to create provider profile: %w", err)
		}
	}

	s.log.Info("registered new user", slog.String("uid", uid), slog.String("role", req.Role))
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Деактивированные аккаунты не проходят авторизацию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", models.ErrInvalidCredentials
		}
		return "", "", err
	}
	if !user.IsActive {
		return "", "", models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Me возвращает профиль текущего пользователя без хэша пароля.
// Для исполнителей дополняется профилем исполнителя.
func (s *AuthService) Me(ctx context.Context, userUID string) (*models.User, *models.ProviderProfile, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, nil, err
	}
	user.PasswordHash = ""

	if user.Role != models.RoleProvider {
		return user, nil, nil
	}
	profile, err := s.users.GetProviderProfile(ctx, userUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}
