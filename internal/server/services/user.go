// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and issuing access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voiceviz/voiceviz-server/internal/common"
	"github.com/voiceviz/voiceviz-server/internal/dbx"
	"github.com/voiceviz/voiceviz-server/internal/server/auth"
	"github.com/voiceviz/voiceviz-server/internal/server/config"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
	"github.com/voiceviz/voiceviz-server/internal/server/repositories/repomanager"
)

// MailChecker is the domain sanity check applied before registration.
type MailChecker interface {
	HasMailExchange(ctx context.Context, email string) (bool, error)
}

// TokenIssue is the result of a successful login.
type TokenIssue struct {
	AccessToken string
	TokenType   string
	UserName    string
}

// UserService provides authentication-related operations:
// - Register: create users (with the optional mail-domain gate)
// - Login: verify credentials and mint access tokens
// - GetByEmail: resolve a token subject back to a user record
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	mailChecker                 MailChecker
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	disableMXCheck              bool
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mc MailChecker, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		mailChecker:                 mc,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		disableMXCheck:              cfg.DisableMXCheck,
	}
}

// Register creates a new user from the given credentials.
//
// The email must contain "@"; a malformed address returns
// common.ErrorValidation before any DNS work. When the MX gate is enabled,
// a domain with no mail exchanger returns common.ErrorDomainRejected.
// A duplicate email or username returns common.ErrorConflict; callers must
// not reveal which of the two fields collided.
func (s *UserService) Register(ctx context.Context, email, userName, password string) (*models.User, error) {

	if !strings.Contains(email, "@") {
		return nil, common.ErrorValidation
	}

	if !s.disableMXCheck {
		ok, err := s.mailChecker.HasMailExchange(ctx, email)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, common.ErrorDomainRejected
		}
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		UserName:     userName,
		PasswordHash: passwordHash,
	}

	// The pre-checks give callers a clean Conflict before paying for the
	// insert; the unique indexes close the race against a concurrent
	// duplicate registration.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, email); !errors.Is(err, common.ErrorNotFound) {
			if err == nil {
				return common.ErrorConflict
			}
			return err
		}

		if _, err := repo.GetByUserName(ctx, userName); !errors.Is(err, common.ErrorNotFound) {
			if err == nil {
				return common.ErrorConflict
			}
			return err
		}

		user, err = repo.Create(ctx, user)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and mints an access token bound to the
// user's email. A missing user and a wrong password are indistinguishable
// to the caller: both return common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenIssue, error) {

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenIssue{AccessToken: accessToken, TokenType: "bearer", UserName: user.UserName}, nil
}

// GetByEmail resolves a token subject back to its user record.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
