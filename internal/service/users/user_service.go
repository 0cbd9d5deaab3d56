package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *Session, error)
	Login(ctx context.Context, username, password string) (*domain.User, *Session, error)
	Validate(ctx context.Context, token string) (*domain.User, error)
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

func NewService(users repository.UserRepository, tokens *auth.Manager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a client account. Admin accounts are provisioned out of
// band, never through self-registration.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, *Session, error) {
	if input.FirstName == "" || input.LastName == "" || input.Username == "" ||
		input.Email == "" || input.Password == "" {
		return nil, nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		if existing.Username == input.Username {
			return nil, nil, fmt.Errorf("%w: username already taken", domain.ErrConflict)
		}
		return nil, nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, *Session, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthorized)
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *Service) Validate(ctx context.Context, token string) (*domain.User, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, identity.UserID)
}

func (s *Service) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

var _ UserUseCase = (*Service)(nil)
