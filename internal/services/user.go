package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/The-Charles-Factor/pos22/internal/config"
	"github.com/The-Charles-Factor/pos22/internal/errors"
	"github.com/The-Charles-Factor/pos22/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// LoginRateLimiter gates repeated login attempts per username.
type LoginRateLimiter interface {
	CheckLoginRateLimit(ctx context.Context, username string) (allowed bool, remaining int, retryAfter int, err error)
}

// UserService authenticates against a fixed in-memory user list. This is a
// demo system: there is no user store and no registration.
type UserService struct {
	users   map[string]*models.User
	limiter LoginRateLimiter
	cfg     *config.Security
}

func NewUserService(limiter LoginRateLimiter, cfg *config.Security) *UserService {
	return &UserService{
		users:   seedUsers(),
		limiter: limiter,
		cfg:     cfg,
	}
}

func seedUsers() map[string]*models.User {
	seed := []struct {
		user     models.User
		password string
	}{
		{models.User{ID: "1", Username: "admin", Role: "admin", FullName: "System Administrator", Email: "admin@store.com", IsActive: true}, "admin123"},
		{models.User{ID: "2", Username: "cashier", Role: "cashier", FullName: "John Cashier", Email: "cashier@store.com", IsActive: true}, "cashier123"},
		{models.User{ID: "3", Username: "manager", Role: "manager", FullName: "Sarah Manager", Email: "manager@store.com", IsActive: true}, "manager123"},
	}

	users := make(map[string]*models.User, len(seed))

	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		u := s.user
		u.PasswordHash = string(hash)
		users[u.Username] = &u
	}

	return users
}

// Login verifies credentials and issues a signed token. Attempts count against
// the rate limit whether or not the password is correct.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	remaining := -1

	if s.limiter != nil {
		allowed, left, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, req.Username)
		if err != nil {
			slog.Warn("login rate limit check failed", slog.String("error", err.Error()))
		} else if !allowed {
			return &models.LoginResponse{
				Success:    false,
				Message:    "Too many login attempts. Please try again later.",
				RetryAfter: retryAfter,
			}, errors.TooManyRequestsError("Too many login attempts")
		} else {
			remaining = left
		}
	}

	user, ok := s.users[req.Username]
	if !ok || !user.IsActive {
		return s.failedLogin(remaining)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return s.failedLogin(remaining)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to issue token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(s.cfg.TokenTTL.Seconds()),
		User:      user,
	}, nil
}

func (s *UserService) failedLogin(remaining int) (*models.LoginResponse, error) {
	resp := &models.LoginResponse{
		Success: false,
		Message: "Invalid username or password",
	}
	if remaining >= 0 {
		resp.RemainingTries = remaining
	}

	return resp, errors.UnauthorizedError("Invalid username or password")
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	now := time.Now()

	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.cfg.JWTKey))
}

// VerifyToken parses and validates a token issued by Login.
func (s *UserService) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.UnauthorizedError("Unexpected signing method")
		}

		return []byte(s.cfg.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(err)
	}

	return claims, nil
}

// GetUser returns the profile for an authenticated user id.
func (s *UserService) GetUser(id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, errors.NotFoundError("User not found")
}

var roleRank = map[string]int{
	"cashier": 1,
	"manager": 2,
	"admin":   3,
}

// HasRole reports whether the given role meets or exceeds the required one.
func HasRole(role, required string) bool {
	return roleRank[role] >= roleRank[required] && roleRank[role] > 0
}
