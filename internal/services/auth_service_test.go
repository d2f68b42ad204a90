package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/apperrors"
	"tienda/internal/authz"
	"tienda/internal/models"
	"tienda/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User, person *models.Person) error {
	args := m.Called(user, person)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetPerson(userID string) (*models.Person, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Person), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	mockRepo.On("GetByUsername", "maria").Return(nil, apperrors.NotFound("not found")).Once()
	mockRepo.On("GetByEmail", "maria@example.com").Return(nil, apperrors.NotFound("not found")).Once()
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	user := &models.User{
		ID:       "user-1",
		Username: "maria",
		Email:    "maria@example.com",
		Password: "secreto123",
	}
	person := &models.Person{Name: "Maria", LastName: "Gomez", DNI: "30123456"}

	token, err := service.Register(user, person)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, authz.RoleVisitor, user.Role, "registration always yields a visitor")
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secreto123", user.Password, "password is stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secreto123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	mockRepo.On("GetByUsername", "maria").
		Return(&models.User{ID: "existing", Username: "maria"}, nil).Once()

	_, err := service.Register(&models.User{Username: "maria", Email: "new@example.com", Password: "x"}, nil)

	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindIntegrity))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{
		ID:       "user-1",
		Username: "maria",
		Password: string(hashed),
		Role:     authz.RoleVisitor,
		IsActive: true,
	}
	mockRepo.On("GetByUsername", "maria").Return(stored, nil)

	token, user, err := service.Login("maria", "secreto123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)

	// Wrong password reads the same as an unknown user.
	_, _, err = service.Login("maria", "wrong")
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	mockRepo.On("GetByUsername", "ghost").Return(nil, apperrors.NotFound("not found")).Once()

	_, _, err := service.Login("ghost", "whatever")
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	assert.Contains(t, strings.ToLower(err.Error()), "invalid credentials")
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	stored := &models.User{
		ID:       "user-1",
		Username: "maria",
		Password: string(hashed),
		Role:     authz.RoleVisitor,
		IsActive: false,
	}
	mockRepo.On("GetByUsername", "maria").Return(stored, nil).Once()

	_, _, err := service.Login("maria", "secreto123")
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	stored := &models.User{
		ID:       "user-1",
		Username: "maria",
		Password: string(hashed),
		Role:     authz.RoleAdmin,
		IsActive: true,
	}
	mockRepo.On("GetByUsername", "maria").Return(stored, nil).Once()

	token, _, err := service.Login("maria", "secreto123")
	assert.NoError(t, err)

	principal, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "maria", principal.Username)
	assert.Equal(t, authz.RoleAdmin, principal.Role)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	service := services.NewAuthService(new(MockUserRepository), "test-secret")

	principal, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	assert.Equal(t, authz.Anonymous, principal)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := services.NewAuthService(mockRepo, "secret-a")
	verifier := services.NewAuthService(new(MockUserRepository), "secret-b")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	stored := &models.User{ID: "u1", Username: "maria", Password: string(hashed), Role: authz.RoleVisitor, IsActive: true}
	mockRepo.On("GetByUsername", "maria").Return(stored, nil).Once()

	token, _, err := issuer.Login("maria", "pw")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}

func TestAuthService_Profile_WithoutPerson(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test-secret")

	stored := &models.User{ID: "user-1", Username: "admin", Role: authz.RoleAdmin, IsActive: true}
	mockRepo.On("GetByID", "user-1").Return(stored, nil).Once()
	mockRepo.On("GetPerson", "user-1").Return(nil, apperrors.NotFound("no profile")).Once()

	user, person, err := service.Profile(authz.Principal{UserID: "user-1", Role: authz.RoleAdmin})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Nil(t, person, "accounts without a profile are still valid")
	mockRepo.AssertExpectations(t)
}
