package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/models"
	"github.com/bancohq/banco-api/internal/repository"
	"github.com/bancohq/banco-api/internal/utils"
)

// Claims is the JWT payload.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService handles registration and login. New users start with the
// configured signup balance.
type AuthService struct {
	users          *repository.UserRepository
	jwtSecret      []byte
	tokenTTL       time.Duration
	initialBalance decimal.Decimal
}

func NewAuthService(users *repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration, initialBalance decimal.Decimal) *AuthService {
	return &AuthService{
		users:          users,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		initialBalance: initialBalance,
	}
}

// Register creates a new user. The password is bcrypt-hashed before storage;
// username and email uniqueness is enforced by the store inside Create, so
// concurrent registrations of the same handle cannot both succeed.
func (s *AuthService) Register(username, password, email string) (*models.UserView, error) {
	if username == "" || password == "" || email == "" {
		return nil, apperr.Invalid("Username, password and email are required")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(username, passwordHash, email, s.initialBalance)
	if err != nil {
		return nil, err
	}
	return userToView(user), nil
}

// Login verifies the credentials and returns a signed token plus the user
// view. The same error covers unknown-user and wrong-password so callers
// cannot probe for registered usernames.
func (s *AuthService) Login(username, password string) (string, *models.UserView, error) {
	if username == "" || password == "" {
		return "", nil, apperr.Invalid("Username and password are required")
	}

	user := s.users.FindByUsername(username)
	if user == nil {
		return "", nil, apperr.Invalid("Invalid credentials")
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return "", nil, apperr.Invalid("Invalid credentials")
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, userToView(user), nil
}

func (s *AuthService) generateToken(userID, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
