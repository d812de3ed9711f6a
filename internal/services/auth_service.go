package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"toyshop/internal/models"
	"toyshop/internal/repositories"
	"toyshop/internal/validation"
)

// AuthConfig carries the externally supplied identity settings.
type AuthConfig struct {
	JWTSecret        string
	Issuer           string
	TokenTTL         time.Duration
	LockoutThreshold int
	DeleteClaim      string
	AdminEmails      []string
}

// AuthService handles registration, login, token issuance and validation.
type AuthService struct {
	userRepo         repositories.UserRepository
	jwtSecret        []byte
	issuer           string
	tokenTTL         time.Duration
	lockoutThreshold int
	deleteClaim      string
	adminEmails      map[string]struct{}
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.LockoutThreshold == 0 {
		cfg.LockoutThreshold = 3
	}
	if cfg.DeleteClaim == "" {
		cfg.DeleteClaim = "DeleteToy"
	}
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		if email = strings.TrimSpace(email); email != "" {
			admins[strings.ToLower(email)] = struct{}{}
		}
	}
	return &AuthService{
		userRepo:         userRepo,
		jwtSecret:        []byte(cfg.JWTSecret),
		issuer:           cfg.Issuer,
		tokenTTL:         cfg.TokenTTL,
		lockoutThreshold: cfg.LockoutThreshold,
		deleteClaim:      cfg.DeleteClaim,
		adminEmails:      admins,
	}
}

// TokenResponse is the payload returned by /register and /login.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
	UserToken   UserToken `json:"userToken"`
}

// UserToken mirrors the authenticated user inside a TokenResponse.
type UserToken struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Claims []ClaimPayload `json:"claims"`
}

// ClaimPayload is one claim as rendered in a TokenResponse.
type ClaimPayload struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Register creates a new user and immediately issues a token, as if logged
// in. The email is confirmed unconditionally; no verification flow exists.
// Emails listed in AdminEmails receive the delete claim at registration.
func (s *AuthService) Register(ctx context.Context, cmd models.RegisterCommand) (*TokenResponse, error) {
	if errs := validation.Struct(cmd); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	if existing, err := s.userRepo.GetByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, &IdentityError{Messages: []string{
			fmt.Sprintf("email '%s' already registered", cmd.Email),
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Email:          cmd.Email,
		PasswordHash:   string(hash),
		EmailConfirmed: true,
	}
	if _, ok := s.adminEmails[strings.ToLower(cmd.Email)]; ok {
		user.Claims = append(user.Claims, models.UserClaim{
			UserID: user.ID,
			Type:   s.deleteClaim,
			Value:  "true",
		})
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueToken(user)
}

// Login authenticates a user and issues a token. Outcomes, in order: a
// locked-out user is rejected before the password is checked, a wrong
// password increments the lockout counter, and success resets it.
func (s *AuthService) Login(ctx context.Context, cmd models.LoginCommand) (*TokenResponse, error) {
	if errs := validation.Struct(cmd); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// Only an unknown email is a credential failure; anything else is
		// an infrastructure problem the caller must see as such.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.AccessFailedCount >= s.lockoutThreshold {
		return nil, ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		if uerr := s.userRepo.UpdateAccessFailedCount(ctx, user.ID, user.AccessFailedCount+1); uerr != nil {
			log.Printf("Failed to record failed login for %s: %v", user.Email, uerr)
		}
		return nil, ErrInvalidCredentials
	}

	if user.AccessFailedCount > 0 {
		if uerr := s.userRepo.UpdateAccessFailedCount(ctx, user.ID, 0); uerr != nil {
			log.Printf("Failed to reset lockout counter for %s: %v", user.Email, uerr)
		}
	}

	return s.issueToken(user)
}

// GrantClaim attaches a claim to an existing user, for out-of-band grants.
func (s *AuthService) GrantClaim(ctx context.Context, email, claimType, value string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.userRepo.AddClaim(ctx, &models.UserClaim{
		UserID: user.ID,
		Type:   claimType,
		Value:  value,
	})
}

// issueToken builds the signed token and its response payload. Standard
// claims plus one claim per UserClaim row, so policies can gate on them.
func (s *AuthService) issueToken(user *models.User) (*TokenResponse, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	payload := make([]ClaimPayload, 0, len(user.Claims))
	for _, c := range user.Claims {
		claims[c.Type] = c.Value
		payload = append(payload, ClaimPayload{Type: c.Type, Value: c.Value})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		UserToken: UserToken{
			ID:     user.ID,
			Email:  user.Email,
			Claims: payload,
		},
	}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
