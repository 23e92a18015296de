package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/user"
	"github.com/banking-transfer-api/internal/platform/auth"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userRepo user.Repository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	logger   *slog.Logger
}

func NewUserService(logger *slog.Logger, userRepo user.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string, profile user.Profile) (*user.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(name, email, hash, profile)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", u.ID)
	return u, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*Token, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound{}) {
			s.hasher.Verify("", password)
			s.logger.Warn("Login failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		s.logger.Warn("Login failed", "reason", "wrong password", "user_id", u.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", u.ID)
	return &Token{AccessToken: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, perPage int) ([]*user.User, int64, error) {
	users, err := s.userRepo.List(ctx, perPage, pageOffset(page, perPage))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
