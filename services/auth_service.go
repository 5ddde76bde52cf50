package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crmplanner/api/config"
	"github.com/crmplanner/api/dto"
	"github.com/crmplanner/api/models"
	"github.com/crmplanner/api/repositories"
)

var (
	// ErrEmailTaken is returned when registering an already-known email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned on unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when the account is deactivated.
	ErrAccountDisabled = errors.New("account is disabled")
)

// AuthService issues and verifies credentials and tokens.
type AuthService struct {
	users *repositories.UserRepository
	jwt   config.JWTConfig
}

// NewAuthService creates an auth service around the user repository.
func NewAuthService(users *repositories.UserRepository, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{users: users, jwt: jwtConfig}
}

// Register creates a new user account with a hashed password.
func (s *AuthService) Register(req dto.RegisterRequest) (models.User, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	role := models.Role(req.Role)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials, stamps last_login and returns the user with
// a signed token.
func (s *AuthService) Login(req dto.LoginRequest) (models.User, string, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, "", ErrAccountDisabled
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return models.User{}, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return models.User{}, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// GenerateToken creates a signed, expiring JWT for the user.
func (s *AuthService) GenerateToken(user models.User) (string, error) {
	now := time.Now()
	claims := dto.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwt.Secret))
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
