package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkfeed/internal/models"
	"linkfeed/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies identity tokens and handles the
// signup/login write path. Tokens are stateless HS256 JWTs carrying
// the user id, signed with the injected key. They carry no expiry:
// revocation is out of scope, a token stays valid until the key
// rotates.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

// SignUp hashes the password, creates the user, and returns a token
// bound to the new user id. A taken email fails with ErrDuplicateEmail
// and creates nothing.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (models.AuthPayload, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("invalid password: %w", err)
	}

	user, err := s.users.Create(ctx, email, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return models.AuthPayload{}, ErrDuplicateEmail
		}
		return models.AuthPayload{}, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.AuthPayload{}, err
	}
	return models.AuthPayload{Token: token, User: user}, nil
}

// Login verifies credentials and returns a token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.AuthPayload, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.AuthPayload{}, ErrUserNotFound
		}
		return models.AuthPayload{}, err
	}

	if err := verifyPassword(user.PasswordHash, password); err != nil {
		return models.AuthPayload{}, ErrInvalidPassword
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.AuthPayload{}, err
	}
	return models.AuthPayload{Token: token, User: user}, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// ParseToken verifies the token signature and returns the embedded
// user id. Any decode or signature failure yields ErrInvalidToken.
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// issueToken signs a JWT embedding userID. No ExpiresAt claim: the
// token is valid indefinitely.
func (s *AuthService) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
