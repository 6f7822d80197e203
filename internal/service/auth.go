package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidToken       = errors.New("invalid token")
	ErrOAuthOnlyAccount   = errors.New("this account uses Google sign-in")
)

const (
	tokenPurposeSession     = "session"
	tokenPurposeVerifyEmail = "verify_email"
)

type AuthService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	emailService      *EmailService
	jwtSecret         string
	secureCookies     bool
	jwtExpiry         time.Duration
	emailTokenExpiry  time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	emailService *EmailService,
	jwtSecret string,
	secureCookies bool,
	jwtExpiry time.Duration,
	emailTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		emailService:      emailService,
		jwtSecret:         jwtSecret,
		secureCookies:     secureCookies,
		jwtExpiry:         jwtExpiry,
		emailTokenExpiry:  emailTokenExpiry,
	}
}

// Signup registers a user, bootstraps the profile row and mails the
// verification link. The account stays unverified until the link is used.
func (s *AuthService) Signup(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepository.ByEmail(email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
	}
	err = s.userRepository.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.profileRepository.Create(&model.Profile{
		UserID:      user.ID,
		DisplayName: displayNameFromEmail(email),
		Role:        model.RoleUser,
		Status:      model.StatusActive,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.generateToken(user.ID, tokenPurposeVerifyEmail, s.emailTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	err = s.emailService.SendVerificationEmail(email, token)
	if err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return user, nil
}

// Login authenticates with email and password. Unverified accounts are
// rejected with ErrEmailNotVerified, surfaced verbatim to the client.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrOAuthOnlyAccount
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified() {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

// VerifyEmail consumes the emailed token and marks the account verified.
func (s *AuthService) VerifyEmail(token string) (*model.User, error) {
	userID, err := s.parseToken(token, tokenPurposeVerifyEmail)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsVerified() {
		now := time.Now()
		err = s.userRepository.SetEmailVerified(user.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to mark email verified: %w", err)
		}
		user.EmailVerifiedAt = &now
	}

	return user, nil
}

// OAuthLogin finds or creates the account for an external identity.
// OAuth emails arrive verified by the provider.
func (s *AuthService) OAuthLogin(email, name string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := time.Now()
	user = &model.User{
		ID:              uuid.New().String(),
		Email:           email,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
	}
	err = s.userRepository.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if name == "" {
		name = displayNameFromEmail(email)
	}
	err = s.profileRepository.Create(&model.Profile{
		UserID:      user.ID,
		DisplayName: name,
		Role:        model.RoleUser,
		Status:      model.StatusActive,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// GenerateSession issues the JWT used as the auth cookie / bearer token.
func (s *AuthService) GenerateSession(user *model.User) (string, error) {
	return s.generateToken(user.ID, tokenPurposeSession, s.jwtExpiry)
}

// VerifySession returns the user id carried by a session token.
func (s *AuthService) VerifySession(token string) (string, error) {
	return s.parseToken(token, tokenPurposeSession)
}

func (s *AuthService) generateToken(userID, purpose string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": purpose,
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString, purpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) SessionExpiry() time.Duration {
	return s.jwtExpiry
}

func displayNameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "User"
	}
	return email[:at]
}
