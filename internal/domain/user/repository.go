// internal/domain/user/repository.go
package user

import (
	"context"
	"errors"
)

// Sentinel errors returned by repository implementations.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the persistence port for users.
type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, u *User) error
	// Delete removes the user record only. Orders keep their user
	// reference for analytics even when it dangles.
	Delete(ctx context.Context, id string) (*User, error)
}
