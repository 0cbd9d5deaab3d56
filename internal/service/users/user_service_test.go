package users

import (
	"context"
	"testing"
	"time"

	"github.com/skydesk/reservations/internal/auth"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService(users *MockUserRepository) *Service {
	return NewService(users, auth.NewManager("test-secret", time.Hour))
}

func registerInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "s3cret-pass",
	}
}

func TestService_Register_Success(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("FindByUsernameOrEmail", ctx, "ada", "ada@example.com").Return(nil, domain.ErrNotFound).Once()
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, session, err := service.Register(ctx, registerInput())

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	users.AssertExpectations(t)
}

func TestService_Register_MissingFields(t *testing.T) {
	service := newTestService(&MockUserRepository{})

	input := registerInput()
	input.Email = ""

	user, session, err := service.Register(context.Background(), input)

	assert.Nil(t, user)
	assert.Nil(t, session)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("FindByUsernameOrEmail", ctx, "ada", "ada@example.com").
		Return(&domain.User{ID: 7, Username: "ada", Email: "other@example.com"}, nil).Once()

	_, _, err := service.Register(ctx, registerInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "username")
	users.AssertNotCalled(t, "Create")
}

func TestService_Register_EmailInUse(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("FindByUsernameOrEmail", ctx, "ada", "ada@example.com").
		Return(&domain.User{ID: 7, Username: "someone-else", Email: "ada@example.com"}, nil).Once()

	_, _, err := service.Register(ctx, registerInput())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "email")
}

func TestService_Login_Success(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	hash, err := auth.HashPassword("s3cret-pass")
	assert.NoError(t, err)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "ada").
		Return(&domain.User{ID: 42, Username: "ada", PasswordHash: hash, Role: domain.RoleClient}, nil).Once()

	user, session, err := service.Login(ctx, "ada", "s3cret-pass")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.NotEmpty(t, session.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	hash, err := auth.HashPassword("s3cret-pass")
	assert.NoError(t, err)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "ada").
		Return(&domain.User{ID: 42, Username: "ada", PasswordHash: hash}, nil).Once()

	_, _, err = service.Login(ctx, "ada", "wrong-pass")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_UnknownUser_SameError(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

	_, _, err := service.Login(ctx, "ghost", "whatever")

	// A missing account is indistinguishable from a bad password.
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Validate_RoundTrip(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	account := &domain.User{ID: 42, Username: "ada", Role: domain.RoleClient}
	users.On("FindByUsernameOrEmail", ctx, "ada", "ada@example.com").Return(nil, domain.ErrNotFound).Once()
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
	users.On("GetByID", ctx, int64(42)).Return(account, nil).Once()

	_, session, err := service.Register(ctx, registerInput())
	assert.NoError(t, err)

	user, err := service.Validate(ctx, session.Token)

	assert.NoError(t, err)
	assert.Equal(t, account, user)
}

func TestService_Validate_BadToken(t *testing.T) {
	service := newTestService(&MockUserRepository{})

	user, err := service.Validate(context.Background(), "bogus")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
