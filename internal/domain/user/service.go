// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// Service handles user business logic
type Service struct {
	repo   Repository
	config *config.Config
}

// NewService creates a new user service
func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
	}
}

// CreateRequest represents user creation data
type CreateRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// List retrieves all users
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve users")
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Get retrieves a user by id
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid user id: %s", id)
	}

	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no user with id: %s", id)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to retrieve user")
	}
	return u, nil
}

// Create stores a new user. Emails are unique.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	now := time.Now().UTC()

	u := &User{
		ID:        primitive.NewObjectID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Insert(ctx, u)
	if errors.Is(err, ErrDuplicateEmail) {
		return nil, apperrors.BusinessRule("a user with email %s already exists", req.Email)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to create user")
	}

	return u, nil
}

// Delete removes a user. Historical orders are left untouched.
func (s *Service) Delete(ctx context.Context, id string) (*User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, apperrors.Validation("invalid user id: %s", id)
	}

	u, err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFound("no user with id: %s", id)
	}
	if err != nil {
		return nil, apperrors.Unexpected(err, "failed to delete user")
	}
	return u, nil
}
