package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/marivelle/catalog-backend/pkg/auth"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/security"
)

// TokenDTO is the OAuth2-password-flow shaped login response.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserStore is the subset of the user repository the auth flow needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Service issues and renews access tokens.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenDTO, error)
	Refresh(ctx context.Context, tokenString string) (*TokenDTO, error)
}

type service struct {
	users UserStore
	jwt   config.JWTConfig
	now   func() time.Time
}

func NewService(users UserStore, jwtCfg config.JWTConfig) (Service, error) {
	if users == nil {
		return nil, errors.New("user store required")
	}
	if jwtCfg.Secret == "" {
		return nil, errors.New("jwt secret required")
	}
	return &service{users: users, jwt: jwtCfg, now: time.Now}, nil
}

// Login verifies credentials and mints a fresh access token. Unknown email
// and wrong password produce the same response so the endpoint does not leak
// which accounts exist.
func (s *service) Login(ctx context.Context, email, password string) (*TokenDTO, error) {
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user by email")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect email or password")
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "inactive user")
	}

	return s.mint(user.ID)
}

// Refresh accepts an expired-but-signature-valid token and issues a new one,
// re-checking that the account still exists and is active.
func (s *service) Refresh(ctx context.Context, tokenString string) (*TokenDTO, error) {
	if tokenString == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, tokenString)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "inactive user")
	}

	return s.mint(user.ID)
}

func (s *service) mint(userID int64) (*TokenDTO, error) {
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenDTO{AccessToken: token, TokenType: "bearer"}, nil
}
