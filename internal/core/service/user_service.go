package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

// UserService implements borrower registration and lookup.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register adds a new borrower. The id is the identity key and must be unused.
func (s *UserService) Register(ctx context.Context, id, name string) (*domain.User, error) {
	user, err := domain.NewUser(id, name)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateUser, id)
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().Str("user_id", saved.ID).Msg("user registered")
	return saved, nil
}

// FindByID retrieves one borrower.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

// Update renames a borrower. The id itself is immutable.
func (s *UserService) Update(ctx context.Context, id, newName string) (*domain.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Rename(newName); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return saved, nil
}

// ListAll returns all borrowers in repository order.
func (s *UserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}
