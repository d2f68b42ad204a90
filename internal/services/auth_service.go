package services

import (
	"fmt"
	"log"
	"time"

	"tienda/internal/apperrors"
	"tienda/internal/authz"
	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register creates a new account with the visitor role and its person
// profile, and returns a fresh token for it.
func (s *AuthService) Register(user *models.User, person *models.Person) (string, error) {
	user.Role = authz.RoleVisitor
	user.IsActive = true
	if err := s.createUser(user, person); err != nil {
		return "", err
	}
	return s.issueToken(user)
}

// CreateAdmin creates an account with the admin role. Used by seeding, not
// exposed over HTTP.
func (s *AuthService) CreateAdmin(user *models.User) error {
	user.Role = authz.RoleAdmin
	user.IsActive = true
	return s.createUser(user, nil)
}

func (s *AuthService) createUser(user *models.User, person *models.Person) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return apperrors.Integrity("username '%s' already taken", user.Username)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperrors.Integrity("email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user, person); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user and returns a token plus the account. Invalid
// credentials and disabled accounts both come back as authentication errors
// without revealing which check failed.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, apperrors.Authentication("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.Authentication("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, apperrors.Authentication("account is disabled")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the account and its person profile (nil when the account
// has none, e.g. seeded admins).
func (s *AuthService) Profile(principal authz.Principal) (*models.User, *models.Person, error) {
	user, err := s.userRepo.GetByID(principal.UserID)
	if err != nil {
		return nil, nil, err
	}
	person, err := s.userRepo.GetPerson(principal.UserID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, person, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses a token and resolves it into the request principal.
func (s *AuthService) ValidateToken(tokenString string) (authz.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return authz.Anonymous, apperrors.Wrap(apperrors.KindAuthentication, err, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return authz.Anonymous, apperrors.Authentication("invalid token")
	}

	principal := authz.Principal{
		Role: authz.RoleVisitor,
	}
	if v, ok := claims["user_id"].(string); ok {
		principal.UserID = v
	}
	if v, ok := claims["username"].(string); ok {
		principal.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		principal.Role = authz.Role(v)
	}
	if principal.UserID == "" {
		return authz.Anonymous, apperrors.Authentication("token is missing the subject")
	}
	return principal, nil
}
