package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
	"github.com/terraincognita07/healthtrack/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBcryptCost       = 10
	temporaryPasswordLength = 12
)

type AuthService struct {
	users UserRepository
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService hashes with cost, falling back to DefaultBcryptCost when cost
// is outside the range bcrypt accepts.
func NewAuthService(users UserRepository, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &AuthService{users: users, cost: cost}
}

// Register creates an account and returns its id.
func (service *AuthService) Register(ctx context.Context, handleRaw string, secret string, displayNameRaw string) (uint, error) {
	handle := NormalizeHandle(handleRaw)
	if err := ValidateHandle(handle); err != nil {
		return 0, err
	}
	if err := ValidateSecret(secret); err != nil {
		return 0, err
	}
	displayName, err := NormalizeDisplayName(displayNameRaw)
	if err != nil {
		return 0, err
	}

	if _, err := service.users.FindByHandle(ctx, handle); err == nil {
		return 0, errs.ErrDuplicateHandle
	} else if !errors.Is(err, errs.ErrNotFound) {
		return 0, storageFault("look up handle", err)
	}

	passwordHash, err := service.hash(secret)
	if err != nil {
		return 0, err
	}

	user := models.User{
		Handle:       handle,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	}
	if err := service.users.Create(ctx, &user); err != nil {
		return 0, storageFault("create user", err)
	}
	return user.ID, nil
}

// Authenticate verifies a handle and secret pair. An unknown handle and a wrong
// secret produce the same error.
func (service *AuthService) Authenticate(ctx context.Context, handleRaw string, secret string) (models.User, error) {
	handle := NormalizeHandle(handleRaw)
	if handle == "" || secret == "" {
		return models.User{}, errs.ErrInvalidCredentials
	}

	user, err := service.users.FindByHandle(ctx, handle)
	if errors.Is(err, errs.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(service.dummy(), []byte(secret))
		return models.User{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, storageFault("look up handle", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return models.User{}, errs.ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storageFault("load user", err)
	}
	return user, nil
}

// ChangeSecret replaces the secret after checking the current one and clears
// any pending forced change.
func (service *AuthService) ChangeSecret(ctx context.Context, userID uint, current string, next string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return storageFault("load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return errs.ErrInvalidCredentials
	}
	if err := ValidateSecret(next); err != nil {
		return err
	}
	if next == current {
		return validationError("new secret must differ from the current one")
	}

	passwordHash, err := service.hash(next)
	if err != nil {
		return err
	}
	if err := service.users.UpdatePassword(ctx, userID, passwordHash, false); err != nil {
		return storageFault("update password", err)
	}
	return nil
}

// ResetSecret assigns a temporary password that must be changed after login
// and returns it in clear text.
func (service *AuthService) ResetSecret(ctx context.Context, handleRaw string) (string, error) {
	handle := NormalizeHandle(handleRaw)
	if err := ValidateHandle(handle); err != nil {
		return "", err
	}

	user, err := service.users.FindByHandle(ctx, handle)
	if err != nil {
		return "", storageFault("look up handle", err)
	}

	temporary, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := service.hash(temporary)
	if err != nil {
		return "", err
	}
	if err := service.users.UpdatePassword(ctx, user.ID, passwordHash, true); err != nil {
		return "", storageFault("update password", err)
	}
	return temporary, nil
}

func (service *AuthService) hash(secret string) (string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(secret), service.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(passwordHash), nil
}

func (service *AuthService) dummy() []byte {
	service.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("healthtrack-unknown-handle"), service.cost)
		if err == nil {
			service.dummyHash = hash
		}
	})
	return service.dummyHash
}
