package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"toyshop/internal/models"
	"toyshop/internal/repositories"
	"toyshop/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAccessFailedCount(ctx context.Context, id string, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

func (m *MockUserRepository) AddClaim(ctx context.Context, claim *models.UserClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func testAuthService(repo repositories.UserRepository, admins ...string) *services.AuthService {
	return services.NewAuthService(repo, services.AuthConfig{
		JWTSecret:        "test_jwt_secret",
		Issuer:           "toyshop-test",
		LockoutThreshold: 3,
		AdminEmails:      admins,
	})
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func registerCommand() models.RegisterCommand {
	return models.RegisterCommand{
		Email:           "test@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	var created *models.User
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, notFoundErr("test@example.com")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
	}).Return(nil).Once()

	token, err := authService.Register(ctx, registerCommand())
	assert.NoError(t, err)
	assert.NotNil(t, token)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "test@example.com", token.UserToken.Email)

	// The stored user is confirmed unconditionally and never keeps the
	// plain password.
	assert.True(t, created.EmailConfirmed)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	assert.Empty(t, created.Claims)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()

	token, err := authService.Register(ctx, registerCommand())
	assert.Nil(t, token)

	var ierr *services.IdentityError
	assert.ErrorAs(t, err, &ierr)
	assert.Contains(t, ierr.Messages[0], "already registered")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_ValidationFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	cmd := registerCommand()
	cmd.ConfirmPassword = "different"

	token, err := authService.Register(ctx, cmd)
	assert.Nil(t, token)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "confirmPassword")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_AdminGetsDeleteClaim(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo, "admin@example.com")
	ctx := context.Background()

	cmd := registerCommand()
	cmd.Email = "admin@example.com"

	mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(nil, notFoundErr("admin@example.com")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, err := authService.Register(ctx, cmd)
	assert.NoError(t, err)
	assert.Len(t, token.UserToken.Claims, 1)
	assert.Equal(t, "DeleteToy", token.UserToken.Claims[0].Type)

	// The claim also travels inside the signed token.
	claims, err := authService.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Contains(t, claims, "DeleteToy")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hash)}

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()

	token, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	claims, err := authService.ValidateToken(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "test@example.com", claims["email"])
	assert.Equal(t, "toyshop-test", claims["iss"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hash)}

	// Wrong password: rejected and the lockout counter moves up.
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
	mockRepo.On("UpdateAccessFailedCount", ctx, "user-123", 1).Return(nil).Once()
	_, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email: same generic rejection, no counter involved.
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, notFoundErr("nobody@example.com")).Once()
	_, err = authService.Login(ctx, models.LoginCommand{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

// A store failure during the email lookup is not a credential problem and
// must not masquerade as one.
func TestAuthService_Login_StoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	storeErr := fmt.Errorf("failed to get user by email test@example.com: connection refused")
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, storeErr).Once()

	_, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "password123"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	assert.ErrorIs(t, err, storeErr)
	mockRepo.AssertExpectations(t)
}

// Three consecutive failures reach the threshold; from then on the account
// is blocked even when the correct password is supplied.
func TestAuthService_Login_Lockout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	for i := 0; i < 3; i++ {
		user := &models.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hash), AccessFailedCount: i}
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
		mockRepo.On("UpdateAccessFailedCount", ctx, "user-123", i+1).Return(nil).Once()

		_, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "wrongpassword"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	}

	blocked := &models.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hash), AccessFailedCount: 3}
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(blocked, nil).Once()

	_, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrUserBlocked)
	mockRepo.AssertExpectations(t)
}

// A successful login below the threshold resets the counter.
func TestAuthService_Login_ResetsCounter(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", PasswordHash: string(hash), AccessFailedCount: 2}

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
	mockRepo.On("UpdateAccessFailedCount", ctx, "user-123", 0).Return(nil).Once()

	token, err := authService.Login(ctx, models.LoginCommand{Email: "test@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := testAuthService(mockRepo)

	// Test invalid token
	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	// Test token signed with the wrong key
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.Error(t, err)
}
