package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/honeilabs/hap-intel/api/internal/auth"
	"github.com/honeilabs/hap-intel/api/internal/repository"
)

// ErrInvalidCredentials is returned for any authentication failure; the
// caller cannot distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService validates analyst credentials and issues session tokens.
type AuthService struct {
	analysts repository.AnalystsRepository
	jwt      *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(analysts repository.AnalystsRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{analysts: analysts, jwt: jwtManager}
}

// Login validates credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	analyst, err := s.analysts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAnalystNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(analyst.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(analyst.ID.String(), analyst.Email)
}

// EnsureSeedAnalyst creates the bootstrap analyst account when credentials
// are configured. An already existing account is fine; restarts race the
// unique index, not each other.
func EnsureSeedAnalyst(ctx context.Context, analysts repository.AnalystsRepository, email, password string, logger *zap.Logger) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = analysts.Create(ctx, email, string(hash))
	if errors.Is(err, repository.ErrEmailDuplicate) {
		logger.Debug("seed analyst already present", zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("seed analyst created", zap.String("email", email))
	return nil
}
