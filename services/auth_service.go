package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizzy/models"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db             *gorm.DB
	sessionSecret  string
	googleClientID string
	adminEmail     string
}

func NewAuthService(db *gorm.DB, sessionSecret, googleClientID, adminEmail string) *AuthService {
	return &AuthService{
		db:             db,
		sessionSecret:  sessionSecret,
		googleClientID: googleClientID,
		adminEmail:     adminEmail,
	}
}

type RegisterRequest struct {
	FName           string `json:"fname" binding:"required"`
	LName           string `json:"lname"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// SessionClaims is the session cookie payload: the durable identity plus
// the admin flag derived from it at login time.
type SessionClaims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

const sessionLifetime = 24 * time.Hour

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidArgument)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	password := string(hashed)

	user := models.User{
		FName:    req.FName,
		LName:    req.LName,
		Email:    req.Email,
		Password: &password,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: user does not exist", ErrUnauthorized)
		}
		return nil, "", err
	}

	// OAuth-only accounts carry no password hash and cannot log in locally.
	if user.Password == nil {
		return nil, "", fmt.Errorf("%w: account uses Google sign-in", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: incorrect password", ErrUnauthorized)
	}

	token, err := s.IssueSession(user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// LoginWithGoogle verifies the client-supplied Google ID token, trusts the
// email claim verbatim, and creates the account on first sight with no
// password hash.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req *GoogleLoginRequest) (*models.User, string, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{s.googleClientID}); err != nil {
		return nil, "", fmt.Errorf("%w: invalid Google ID token", ErrUnauthorized)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode ID token: %w", err)
	}
	if claimSet.Email == "" {
		return nil, "", fmt.Errorf("%w: no email from Google", ErrUnauthorized)
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", claimSet.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			FName: claimSet.GivenName,
			LName: claimSet.FamilyName,
			Email: claimSet.Email,
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := s.IssueSession(user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) IssueSession(email string) (string, error) {
	claims := SessionClaims{
		Email:   email,
		IsAdmin: email == s.adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.sessionSecret))
}
