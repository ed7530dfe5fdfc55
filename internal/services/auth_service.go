package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

const sessionTTL = 24 * time.Hour

// AuthService handles account signup, login, and revocable sessions
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Logout(ctx context.Context, sessionID string) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type SignupRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      string  `json:"role"`
}

// SessionClaims are the JWT claims carried by an access token. The session
// ID lets a logout revoke the token before it expires.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	jwtSecret []byte
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return nil, common.NewValidationError("username", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, common.NewValidationError("email", err.Error())
	}
	if len(req.Password) < 8 {
		return nil, common.NewValidationError("password", "password must be at least 8 characters")
	}
	if req.Role == "" {
		req.Role = "staff"
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, common.StorageError("get user", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q already taken: %w", req.Username, common.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, common.StorageError("create user", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, common.StorageError("get user", err)
	}
	if user == nil || !user.IsActive {
		return "", nil, fmt.Errorf("invalid credentials: %w", common.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", common.ErrNotFound)
	}

	now := time.Now()
	sessionID := uuid.NewString()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tableside",
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	if err := s.cacheSvc.SetSession(ctx, sessionID, strconv.FormatInt(user.ID, 10), sessionTTL); err != nil {
		return "", nil, common.StorageError("store session", err)
	}
	return signed, user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.cacheSvc.DeleteSession(ctx, sessionID); err != nil {
		return common.StorageError("delete session", err)
	}
	return nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	return user, nil
}
