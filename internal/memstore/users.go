package memstore

import (
	"context"
	"time"

	"github.com/terraincognita07/healthtrack/internal/errs"
	"github.com/terraincognita07/healthtrack/internal/models"
)

type userRow = models.User

type UserRepository struct {
	store *Store
}

func (repo *UserRepository) Create(_ context.Context, user *models.User) error {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.userHandles[user.Handle]; exists {
		return errs.ErrDuplicateHandle
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.ID = store.nextUserID
	store.nextUserID++

	store.users[user.ID] = *user
	store.userHandles[user.Handle] = user.ID
	return nil
}

func (repo *UserRepository) FindByHandle(_ context.Context, handle string) (models.User, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	userID, ok := store.userHandles[handle]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	return store.users[userID], nil
}

func (repo *UserRepository) FindByID(_ context.Context, userID uint) (models.User, error) {
	store := repo.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, ok := store.users[userID]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	return user, nil
}

func (repo *UserRepository) UpdatePassword(_ context.Context, userID uint, passwordHash string, mustChangePassword bool) error {
	store := repo.store
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[userID]
	if !ok {
		return errs.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	store.users[userID] = user
	return nil
}
